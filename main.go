package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agrosilo/silosys/cmd/api"
	"github.com/agrosilo/silosys/internal/config"
	"github.com/agrosilo/silosys/pkg/middleware/logger"
	"github.com/agrosilo/silosys/pkg/utils"
)

func main() {
	rootCtx := utils.SetupSignalContext()
	root := &cobra.Command{
		SilenceUsage:       true,
		Short:              "silosys",
		Long:               "SiloSys - grain silo inventory backend",
		PersistentPreRunE:  initGlobalResource,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPostRunE: cleanGlobalResource,
	}
	root.SetContext(rootCtx)
	root.AddCommand(api.NewWeb())
	root.AddCommand(api.NewMigrate())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initGlobalResource(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.AutomaticEnv()

	conf := config.Global()
	if err := v.Unmarshal(conf); err != nil {
		log.Fatal(err)
	}

	logger.Init(&logger.Config{
		Path:  conf.Log.LogPath,
		Level: conf.Log.LogLevel,
		Env:   conf.Server.Env,
	})
	return nil
}

func cleanGlobalResource(cmd *cobra.Command, _ []string) error {
	logger.Close(cmd.Context())
	return nil
}
