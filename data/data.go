// Package data owns the process wide connection pool to the relational store
// and the ent dialect driver built on top of it.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/data/schema"
	"github.com/ncobase/taskapi/logging/logger"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	entschema "entgo.io/ent/dialect/sql/schema"
)

// DefaultAcquireTimeout bounds a single store operation when none is configured.
const DefaultAcquireTimeout = 30 * time.Second

// Data holds the shared store handle.
type Data struct {
	DB      *sql.DB
	Driver  dialect.Driver
	Dialect string

	acquireTimeout time.Duration
}

type txKey struct{}

// New connects to the master node described by cfg. The returned cleanup
// closes the pool.
func New(ctx context.Context, cfg *config.Data, log *logger.Logger) (*Data, func(), error) {
	if cfg == nil || cfg.Database == nil || cfg.Database.Master == nil {
		return nil, nil, errors.New("data: database master node is not configured")
	}
	node := cfg.Database.Master

	drv, err := GetDatabaseDriver(node.Driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := drv.Connect(ctx, node)
	if err != nil {
		return nil, nil, err
	}

	d := NewWithDB(db, drv.Dialect(), node.AcquireTimeout)
	if node.Logging && log != nil {
		d.Driver = dialect.DebugWithContext(d.Driver, func(ctx context.Context, v ...any) {
			log.Debug(ctx, "sql", "query", fmt.Sprint(v...))
		})
	}

	cleanup := func() {
		if err := d.Close(); err != nil && log != nil {
			log.Error(context.Background(), "failed to close database", "error", err)
		}
	}
	return d, cleanup, nil
}

// NewWithDB wraps an already opened pool.
func NewWithDB(db *sql.DB, dialectName string, acquireTimeout time.Duration) *Data {
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}
	return &Data{
		DB:             db,
		Driver:         entsql.OpenDB(dialectName, db),
		Dialect:        dialectName,
		acquireTimeout: acquireTimeout,
	}
}

// WithTimeout bounds ctx by the acquisition timeout.
func (d *Data) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.acquireTimeout)
}

// Conn returns the transaction bound to ctx, or the pooled driver.
func (d *Data) Conn(ctx context.Context) dialect.ExecQuerier {
	if tx, ok := ctx.Value(txKey{}).(dialect.Tx); ok {
		return tx
	}
	return d.Driver
}

// WithTx runs fn inside a transaction. Repository calls made with the ctx
// passed to fn join the transaction.
func (d *Data) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(dialect.Tx); ok {
		return fn(ctx)
	}

	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w, rollback err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Migrate creates or upgrades the schema.
func (d *Data) Migrate(ctx context.Context) error {
	m, err := entschema.NewMigrate(d.Driver)
	if err != nil {
		return fmt.Errorf("data: create migrate: %w", err)
	}
	if err := m.Create(ctx, schema.Tables...); err != nil {
		return fmt.Errorf("data: migrate schema: %w", err)
	}
	return nil
}

// Ping verifies the store is reachable.
func (d *Data) Ping(ctx context.Context) error {
	ctx, cancel := d.WithTimeout(ctx)
	defer cancel()
	return d.DB.PingContext(ctx)
}

// Close closes the pool.
func (d *Data) Close() error {
	return d.Driver.Close()
}
