package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/aminekebichi/MyDay/internal/config"
	"github.com/aminekebichi/MyDay/internal/repository"
	"github.com/aminekebichi/MyDay/shared/logger"
)

type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	store  repository.Store
}

// bootstrap loads config, builds the logger, opens the store and applies
// the schema.
func bootstrap(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New("myday", cfg.LogLevel, nil)

	store, err := repository.Open(cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	log.WithField("driver", cfg.DB.Driver).Info("database ready")
	return &app{cfg: cfg, logger: log, store: store}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
