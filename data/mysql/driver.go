// Package mysql registers the MySQL driver (go-sql-driver/mysql) with the
// data package:
//
//	import _ "github.com/ncobase/taskapi/data/mysql"
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/data"

	"entgo.io/ent/dialect"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// driver implements data.DatabaseDriver for MySQL.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "mysql"
}

// Dialect returns the ent dialect.
func (d *driver) Dialect() string {
	return dialect.MySQL
}

// Connect establishes a MySQL connection. When Source is empty the DSN is
// composed from host, port, user, password and name with parseTime enabled.
func (d *driver) Connect(ctx context.Context, cfg *config.DBNode) (*sql.DB, error) {
	dsn, err := data.BuildDSN(d.Name(), cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: failed to open connection: %w", err)
	}
	data.ApplyPool(db, cfg)

	// Verify the connection works
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql: failed to ping database: %w", err)
	}

	return db, nil
}

// init registers the MySQL driver with the data package.
func init() {
	data.RegisterDatabaseDriver(&driver{})
}
