// Package bootstrap assembles the service components from configuration.
package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gymbeam/geoaudit/internal/api"
	"github.com/gymbeam/geoaudit/internal/audit"
	"github.com/gymbeam/geoaudit/internal/config"
	"github.com/gymbeam/geoaudit/internal/logging"
	"github.com/gymbeam/geoaudit/internal/processor"
	"github.com/gymbeam/geoaudit/internal/storage"
	"github.com/gymbeam/geoaudit/internal/telemetry"
)

// HTTPComponents holds all components needed for the HTTP server.
type HTTPComponents struct {
	DB      *sqlx.DB
	Handler *api.Handler
	Server  *api.Server
	Logger  logging.Logger
}

// NewHTTPComponents creates all components for the HTTP server.
func NewHTTPComponents(cfg *config.Config) (*HTTPComponents, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open report storage: %w", err)
	}
	logger.Info("report storage opened", logging.String("path", cfg.Storage.Path))

	reports := storage.NewReportRepository(db)
	runner := audit.NewRunner(logger, cfg.Audit)
	batchAuditor := processor.NewBatchAuditor(runner, cfg.Service.Concurrency, logger)
	provider := telemetry.NewProvider()

	handler := api.NewHandler(runner, batchAuditor, reports, provider, logger)

	server := api.NewServer(handler, api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, provider, logger)

	return &HTTPComponents{
		DB:      db,
		Handler: handler,
		Server:  server,
		Logger:  logger,
	}, nil
}

// Close releases resources held by the components.
func (c *HTTPComponents) Close() error {
	_ = c.Logger.Sync()
	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("close report storage: %w", err)
	}
	return nil
}
