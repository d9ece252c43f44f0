package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/agrosilo/silosys/internal/config"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	"github.com/agrosilo/silosys/pkg/middleware/redis"
	"github.com/agrosilo/silosys/pkg/middleware/trace"
	"github.com/agrosilo/silosys/pkg/web"
)

func NewWeb() *cobra.Command {
	return &cobra.Command{
		Use:  "apiserver",
		Long: `api server start`,

		SilenceUsage: true,
		PreRunE:      initWeb,
		RunE:         newRouter,
		PostRunE:     cleanWebResource,
	}
}

func initWeb(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	conf := config.Global()

	trace.InitTrace(ctx, &trace.InitConfig{
		ServiceName:    conf.Server.Service,
		Version:        conf.Trace.Version,
		TraceEndpoint:  conf.Trace.TraceEndpoint,
		MetricEndpoint: conf.Trace.MetricEndpoint,
	})

	db.InitPostgres(ctx, &db.Config{
		Host:   conf.Database.Host,
		Port:   conf.Database.Port,
		User:   conf.Database.User,
		PW:     conf.Database.Password,
		DBName: conf.Database.Name,
		LogConf: db.LogConf{
			Level: conf.Log.LogLevel,
		},
	})

	redis.InitRedis(ctx, &redis.Config{
		Host:     conf.Redis.Host,
		Port:     conf.Redis.Port,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	return nil
}

func newRouter(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	conf := config.Global()

	if conf.Server.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	g := gin.New()
	web.NewRouter(ctx, g)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", conf.Server.Port),
		Handler: g,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "api server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "server shutdown err: %+v", err)
		return err
	}
	logger.Infof(ctx, "api server stopped")
	return nil
}

func cleanWebResource(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	redis.CloseRedis(ctx)
	db.ClosePostgres(ctx)
	trace.CloseTrace(ctx)
	return nil
}
