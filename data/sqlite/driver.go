// Package sqlite registers the SQLite driver (mattn/go-sqlite3, CGO) with the
// data package:
//
//	import _ "github.com/ncobase/taskapi/data/sqlite"
//
// Foreign keys must be enabled in the source for cascading deletes, e.g.
// "file:tasks.db?_fk=1" or "file:test?mode=memory&cache=shared&_fk=1".
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/data"

	"entgo.io/ent/dialect"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// driver implements data.DatabaseDriver for SQLite.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "sqlite3"
}

// Dialect returns the ent dialect.
func (d *driver) Dialect() string {
	return dialect.SQLite
}

// Connect establishes a SQLite connection using the provided configuration.
func (d *driver) Connect(ctx context.Context, cfg *config.DBNode) (*sql.DB, error) {
	dsn, err := data.BuildDSN(d.Name(), cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open connection: %w", err)
	}

	data.ApplyPool(db, cfg)
	if cfg.MaxOpenConn <= 0 {
		db.SetMaxOpenConns(1) // SQLite recommended for write safety
	}

	// Verify the connection works
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}

	return db, nil
}

// init registers the SQLite driver with the data package.
func init() {
	data.RegisterDatabaseDriver(&driver{})
}
