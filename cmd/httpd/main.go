// Command httpd runs the GEO audit HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gymbeam/geoaudit/internal/bootstrap"
	"github.com/gymbeam/geoaudit/internal/config"
	"github.com/gymbeam/geoaudit/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	components, err := bootstrap.NewHTTPComponents(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer func() { _ = components.Close() }()

	logger := components.Logger
	logger.Info("starting http service",
		logging.String("service", cfg.Service.Name),
		logging.String("version", cfg.Service.Version),
		logging.Int("port", cfg.Service.Port),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- components.Server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
		defer cancel()

		if err := components.Server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info("server stopped gracefully")
	}
	return nil
}
