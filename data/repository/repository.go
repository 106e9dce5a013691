// Package repository implements store access for users and tasks on top of
// ent's dialect SQL builder.
package repository

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"github.com/ncobase/taskapi/data"
	"github.com/ncobase/taskapi/logging/logger"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// timeNow is the clock used for created_at/updated_at.
var timeNow = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Repository groups the repositories sharing one store handle.
type Repository struct {
	Task TaskRepository
	User UserRepository
}

// New creates the repositories.
func New(d *data.Data, log *logger.Logger) *Repository {
	return &Repository{
		Task: NewTaskRepository(d, log),
		User: NewUserRepository(d, log),
	}
}

// base carries what every repository needs.
type base struct {
	d      *data.Data
	logger *logger.Logger
}

func (b *base) builder() *sql.DialectBuilder {
	return sql.Dialect(b.d.Dialect)
}

// query runs q and hands each row to scan.
func (b *base) query(ctx context.Context, q sql.Querier, scan func(*sql.Rows) error) error {
	query, args := q.Query()
	rows := &sql.Rows{}
	if err := b.d.Conn(ctx).Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// exec runs q and returns the number of affected rows.
func (b *base) exec(ctx context.Context, q sql.Querier) (int64, error) {
	query, args := q.Query()
	var res stdsql.Result
	if err := b.d.Conn(ctx).Exec(ctx, query, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// count runs a COUNT(*) selector.
func (b *base) count(ctx context.Context, q *sql.Selector) (int, error) {
	var n int
	err := b.query(ctx, q, func(rows *sql.Rows) error {
		return rows.Scan(&n)
	})
	return n, err
}

// mapWriteError translates constraint violations.
func mapWriteError(err error) error {
	if sqlgraph.IsUniqueConstraintError(err) {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}
