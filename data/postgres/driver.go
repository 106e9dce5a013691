// Package postgres registers the PostgreSQL driver (jackc/pgx stdlib) with
// the data package:
//
//	import _ "github.com/ncobase/taskapi/data/postgres"
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/data"

	"entgo.io/ent/dialect"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

type driver struct{}

func (d *driver) Name() string {
	return "postgres"
}

func (d *driver) Dialect() string {
	return dialect.Postgres
}

func (d *driver) Connect(ctx context.Context, cfg *config.DBNode) (*sql.DB, error) {
	dsn, err := data.BuildDSN(d.Name(), cfg)
	if err != nil {
		return nil, err
	}

	// Open connection using pgx driver
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open connection: %w", err)
	}
	data.ApplyPool(db, cfg)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	return db, nil
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
