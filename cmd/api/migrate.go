package api

import (
	"github.com/spf13/cobra"

	"github.com/agrosilo/silosys/internal/config"
	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo/migrate"
)

func NewMigrate() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Long:         `api server db migrate`,
		SilenceUsage: true,
		PreRunE:      initMigrate,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate.Table(cmd.Root().Context())
		},
		PostRunE: func(cmd *cobra.Command, _ []string) error {
			db.ClosePostgres(cmd.Context())
			return nil
		},
	}
}

func initMigrate(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	db.InitPostgres(cmd.Context(), &db.Config{
		Host:   conf.Database.Host,
		Port:   conf.Database.Port,
		User:   conf.Database.User,
		PW:     conf.Database.Password,
		DBName: conf.Database.Name,
		LogConf: db.LogConf{
			Level: conf.Log.LogLevel,
		},
	})
	return nil
}
