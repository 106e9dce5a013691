package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ncobase/taskapi/data"
	"github.com/ncobase/taskapi/data/schema"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/logging/observes"
	"github.com/ncobase/taskapi/structs"
	"github.com/ncobase/taskapi/utils/nanoid"

	"entgo.io/ent/dialect/sql"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, u *structs.User) (*structs.User, error)
	GetByID(ctx context.Context, id string) (*structs.User, error)
	GetByEmail(ctx context.Context, email string) (*structs.User, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	base
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(d *data.Data, logger *logger.Logger) UserRepository {
	return &userRepository{base{d: d, logger: logger}}
}

var userColumns = []string{
	schema.FieldID,
	schema.UserFieldName,
	schema.UserFieldEmail,
	schema.UserFieldPasswordHash,
	schema.FieldCreatedAt,
	schema.FieldUpdatedAt,
}

func scanUser(rows *sql.Rows) (*structs.User, error) {
	var u structs.User
	if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt, u.UpdatedAt = u.CreatedAt.UTC(), u.UpdatedAt.UTC()
	return &u, nil
}

// Create creates a new user. Emails are stored lower-cased; a taken email
// yields ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, u *structs.User) (_ *structs.User, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerRepo, "User.Create")
	defer func() { span.End(ignoreDuplicate(err)) }()
	ctx, cancel := r.d.WithTimeout(ctx)
	defer cancel()

	created := *u
	created.ID = nanoid.PrimaryKey()
	created.Email = strings.ToLower(strings.TrimSpace(created.Email))
	created.CreatedAt = timeNow()
	created.UpdatedAt = created.CreatedAt

	q := r.builder().Insert(schema.UsersTableName).
		Columns(userColumns...).
		Values(created.ID, created.Name, created.Email, created.PasswordHash, created.CreatedAt, created.UpdatedAt)
	if _, err = r.exec(ctx, q); err != nil {
		err = mapWriteError(err)
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		r.logger.Error(ctx, "failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info(ctx, "user created", "id", created.ID)
	return &created, nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id string) (*structs.User, error) {
	return r.getBy(ctx, "User.GetByID", schema.FieldID, id)
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*structs.User, error) {
	return r.getBy(ctx, "User.GetByEmail", schema.UserFieldEmail, strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) getBy(ctx context.Context, op, column string, value any) (_ *structs.User, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerRepo, op)
	defer func() { span.End(ignoreNotFound(err)) }()
	ctx, cancel := r.d.WithTimeout(ctx)
	defer cancel()

	b := r.builder()
	q := b.Select(userColumns...).
		From(b.Table(schema.UsersTableName)).
		Where(sql.EQ(column, value)).
		Limit(1)

	var found *structs.User
	err = r.query(ctx, q, func(rows *sql.Rows) error {
		u, err := scanUser(rows)
		found = u
		return err
	})
	if err != nil {
		r.logger.Error(ctx, "failed to get user", column, value, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Delete removes a user; their tasks go with them through the foreign key.
func (r *userRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerRepo, "User.Delete")
	defer func() { span.End(ignoreNotFound(err)) }()
	ctx, cancel := r.d.WithTimeout(ctx)
	defer cancel()

	n, err := r.exec(ctx, r.builder().Delete(schema.UsersTableName).Where(sql.EQ(schema.FieldID, id)))
	if err != nil {
		r.logger.Error(ctx, "failed to delete user", "id", id, "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func ignoreDuplicate(err error) error {
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}
