package commands

import (
	"context"
	"fmt"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/data"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/version"

	// database drivers
	_ "github.com/ncobase/taskapi/data/mysql"
	_ "github.com/ncobase/taskapi/data/postgres"
	_ "github.com/ncobase/taskapi/data/sqlite"
)

// app is what every command needs: configuration, a logger and the store.
type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	data    *data.Data
	cleanup []func()
}

func (r *app) close() {
	for i := len(r.cleanup) - 1; i >= 0; i-- {
		r.cleanup[i]()
	}
}

// bootstrap loads configuration, initializes logging and connects the store.
func bootstrap(ctx context.Context, confPath string) (*app, error) {
	cfg, err := config.Init(confPath)
	if err != nil {
		return nil, err
	}

	log, cleanupLog, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.SetVersion(version.GetVersionInfo().Version)
	r := &app{cfg: cfg, logger: log, cleanup: []func(){cleanupLog}}

	d, cleanupData, err := data.New(ctx, cfg.Data, log)
	if err != nil {
		r.close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	r.data = d
	r.cleanup = append(r.cleanup, cleanupData)

	return r, nil
}
