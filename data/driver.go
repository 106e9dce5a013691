package data

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ncobase/taskapi/config"
)

// Drivers register themselves from init(), following database/sql, and are
// looked up at runtime by the configured driver name.

// DatabaseDriver defines the interface for relational database drivers.
type DatabaseDriver interface {
	// Name returns the driver identifier used in configuration files.
	Name() string

	// Dialect returns the ent dialect name used to build queries.
	Dialect() string

	// Connect opens a pooled connection for the node and verifies it with a ping.
	Connect(ctx context.Context, cfg *config.DBNode) (*sql.DB, error)
}

var (
	databaseDrivers   = make(map[string]DatabaseDriver)
	databaseDriversMu sync.RWMutex
)

// driverAliases maps alternative spellings onto registered driver names.
var driverAliases = map[string]string{
	"sqlite":     "sqlite3",
	"postgresql": "postgres",
	"pgx":        "postgres",
}

// RegisterDatabaseDriver makes a database driver available by the provided name.
// It is intended to be called from the init function in driver packages.
//
// If RegisterDatabaseDriver is called twice with the same name or if driver is nil,
// it panics.
func RegisterDatabaseDriver(driver DatabaseDriver) {
	databaseDriversMu.Lock()
	defer databaseDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterDatabaseDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterDatabaseDriver driver name is empty")
	}

	if _, exists := databaseDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterDatabaseDriver called twice for driver %s", name))
	}

	databaseDrivers[name] = driver
}

// GetDatabaseDriver retrieves a registered database driver by name.
func GetDatabaseDriver(name string) (DatabaseDriver, error) {
	name = strings.ToLower(name)
	if alias, ok := driverAliases[name]; ok {
		name = alias
	}

	databaseDriversMu.RLock()
	defer databaseDriversMu.RUnlock()

	driver, ok := databaseDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: database driver %q not registered (forgot to import github.com/ncobase/taskapi/data/%s?), available drivers: %v",
			name, name, listDatabaseDriversLocked(),
		)
	}
	return driver, nil
}

// ListDatabaseDrivers returns the sorted names of registered drivers.
func ListDatabaseDrivers() []string {
	databaseDriversMu.RLock()
	defer databaseDriversMu.RUnlock()
	return listDatabaseDriversLocked()
}

func listDatabaseDriversLocked() []string {
	names := make([]string, 0, len(databaseDrivers))
	for name := range databaseDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPool applies the node's pool settings to db.
func ApplyPool(db *sql.DB, cfg *config.DBNode) {
	if cfg.MaxIdleConn > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConn)
	}
	if cfg.MaxOpenConn > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConn)
	}
	if cfg.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifeTime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}
