package main

import (
	"fmt"
	"os"

	"github.com/de-tools/csr-atlas/pkg/config"
	"github.com/de-tools/csr-atlas/pkg/runtime/app"
	"github.com/de-tools/csr-atlas/pkg/server"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for CSR Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (settings may also come from CSR_* environment variables)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(settings.Log, os.Stdout)
	ctx := logger.WithContext(cmd.Context())

	services, err := app.New(ctx, *settings)
	if err != nil {
		return fmt.Errorf("failed to initialise services: %w", err)
	}

	// A failed initial load stays visible through the slice status.
	if err := services.Load(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial load failed")
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Server.Addr(),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports:  services.Reports,
			Wizard:   services.Wizard,
			Partners: services.Partners,
			Logger:   logger,
		},
		OnShutdown: services.Close,
	})

	return webAPI.Start(ctx)
}
