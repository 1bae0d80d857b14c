package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/csr-atlas/pkg/config"
	"github.com/de-tools/csr-atlas/pkg/runtime/app"
	"github.com/de-tools/csr-atlas/pkg/runtime/terminal"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	settings, err := config.Load(os.Getenv("CSR_CONFIG"))
	if err != nil {
		return err
	}

	logger := config.NewLogger(settings.Log, os.Stderr)
	ctx = logger.WithContext(ctx)

	services, err := app.New(ctx, *settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	cli := terminal.NewCLI(terminal.Options{
		Reports:  services.Reports,
		Partners: services.Partners,
		Output:   os.Stdout,
	})
	return cli.Run(ctx, os.Args[1:])
}
