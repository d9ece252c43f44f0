package web

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/agrosilo/silosys/internal/config"
	"github.com/agrosilo/silosys/pkg/middleware/auth"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	userRepo "github.com/agrosilo/silosys/pkg/repo/user"
	additionViews "github.com/agrosilo/silosys/pkg/web/views/addition"
	authViews "github.com/agrosilo/silosys/pkg/web/views/auth"
	contractViews "github.com/agrosilo/silosys/pkg/web/views/contract"
	grainViews "github.com/agrosilo/silosys/pkg/web/views/grain"
	healthViews "github.com/agrosilo/silosys/pkg/web/views/health"
	warehouseViews "github.com/agrosilo/silosys/pkg/web/views/warehouse"
	withdrawalViews "github.com/agrosilo/silosys/pkg/web/views/withdrawal"
)

func NewRouter(ctx context.Context, g *gin.Engine) {
	installMiddleware(g)
	InstallURL(ctx, g)
}

func installMiddleware(g *gin.Engine) {
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(config.Global().Server.Service))
	g.Use(logger.LogWithWriter())
	g.Use(gin.Recovery())
}

func InstallURL(_ context.Context, g *gin.Engine) {
	api := g.Group("/api")

	healthHandle := healthViews.NewHandle()
	api.GET("/health", healthHandle.Health)
	api.GET("/health/ready", healthHandle.Ready)

	authHandle := authViews.NewHandle()
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", authHandle.Register)
		authGroup.POST("/login", authHandle.Login)
		authGroup.POST("/refresh", authHandle.Refresh)
		authGroup.POST("/verify_refresh", authHandle.VerifyRefresh)
	}

	v1 := api.Group("/v1", auth.AuthWeb(userRepo.New()))
	v1.GET("/auth/verify", authHandle.Verify)

	{
		handle := warehouseViews.NewHandle()
		group := v1.Group("/warehouses")
		group.GET("", handle.List)
		group.GET("/:id", handle.Get)
		group.POST("", handle.Create)
		group.PATCH("/:id", handle.Update)
		group.DELETE("/:id", handle.Delete)
	}

	{
		handle := additionViews.NewHandle()
		group := v1.Group("/additions")
		group.GET("", handle.List)
		group.GET("/:id", handle.Get)
		group.POST("", handle.Create)
		group.PATCH("/:id", handle.Update)
		group.DELETE("/:id", handle.Delete)
	}

	{
		handle := withdrawalViews.NewHandle()
		group := v1.Group("/withdrawals")
		group.GET("", handle.List)
		group.GET("/:id", handle.Get)
		group.POST("", handle.Create)
		group.PATCH("/:id", handle.Update)
		group.DELETE("/:id", handle.Delete)
	}

	{
		handle := contractViews.NewHandle()
		group := v1.Group("/contracts")
		group.GET("", handle.List)
		group.GET("/:id", handle.Get)
		group.POST("", handle.Create)
		group.PATCH("/:id", handle.Update)
		group.DELETE("/:id", handle.Delete)
	}

	{
		handle := grainViews.NewHandle()
		v1.GET("/grains", handle.ListGrains)
		v1.GET("/plots", handle.ListPlots)
	}
}
