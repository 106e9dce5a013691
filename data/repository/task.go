package repository

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"

	"github.com/ncobase/taskapi/data"
	"github.com/ncobase/taskapi/data/schema"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/logging/observes"
	"github.com/ncobase/taskapi/structs"
	"github.com/ncobase/taskapi/utils/nanoid"

	"entgo.io/ent/dialect/sql"
)

// TaskRepository defines the interface for task data operations. Every
// operation on a single task is scoped to its owner.
type TaskRepository interface {
	Create(ctx context.Context, t *structs.Task) (*structs.Task, error)
	FindOwned(ctx context.Context, userID, id string) (*structs.Task, error)
	List(ctx context.Context, params *structs.ListTaskParams) (*structs.TaskList, error)
	Update(ctx context.Context, userID, id string, changes *structs.TaskChanges) (*structs.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type taskRepository struct {
	base
}

// NewTaskRepository creates a new task repository instance.
func NewTaskRepository(d *data.Data, logger *logger.Logger) TaskRepository {
	return &taskRepository{base{d: d, logger: logger}}
}

// taskColumns is the select list matching scanTask.
var taskColumns = []string{
	schema.FieldID,
	schema.TaskFieldTitle,
	schema.TaskFieldDescription,
	schema.TaskFieldStatus,
	schema.TaskFieldPriority,
	schema.TaskFieldUserID,
	schema.FieldCreatedAt,
	schema.FieldUpdatedAt,
}

func scanTask(rows *sql.Rows) (*structs.Task, error) {
	var (
		t           structs.Task
		description stdsql.NullString
	)
	if err := rows.Scan(&t.ID, &t.Title, &description, &t.Status, &t.Priority, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	t.CreatedAt, t.UpdatedAt = t.CreatedAt.UTC(), t.UpdatedAt.UTC()
	return &t, nil
}

// ownedTask is the single predicate through which tasks are addressed by id.
func ownedTask(userID, id string) *sql.Predicate {
	return sql.And(
		sql.EQ(schema.FieldID, id),
		sql.EQ(schema.TaskFieldUserID, userID),
	)
}

// Create creates a new task. ID and timestamps are assigned here.
func (r *taskRepository) Create(ctx context.Context, t *structs.Task) (_ *structs.Task, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerRepo, "Task.Create")
	defer func() { span.End(err) }()
	ctx, cancel := r.d.WithTimeout(ctx)
	defer cancel()

	created := *t
	created.ID = nanoid.PrimaryKey()
	created.CreatedAt = timeNow()
	created.UpdatedAt = created.CreatedAt
	if created.Status == "" {
		created.Status = structs.StatusPending
	}
	if created.Priority == "" {
		created.Priority = structs.PriorityMedium
	}

	var description any
	if created.Description != nil {
		description = *created.Description
	}

	q := r.builder().Insert(schema.TasksTableName).
		Columns(taskColumns...).
		Values(created.ID, created.Title, description, string(created.Status), string(created.Priority),
			created.UserID, created.CreatedAt, created.UpdatedAt)
	if _, err = r.exec(ctx, q); err != nil {
		r.logger.Error(ctx, "failed to create task", "user_id", t.UserID, "error", err)
		return nil, fmt.Errorf("failed to create task: %w", mapWriteError(err))
	}

	r.logger.Debug(ctx, "task created", "id", created.ID)
	return &created, nil
}

// FindOwned retrieves a task by id, only if userID owns it.
func (r *taskRepository) FindOwned(ctx context.Context, userID, id string) (_ *structs.Task, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerRepo, "Task.FindOwned")
	defer func() { span.End(ignoreNotFound(err)) }()
	ctx, cancel := r.d.WithTimeout(ctx)
	defer cancel()

	t, err := r.findOwned(ctx, userID, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		r.logger.Error(ctx, "failed to get task", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, err
}

func (r *taskRepository) findOwned(ctx context.Context, userID, id string) (*structs.Task, error) {
	b := r.builder()
	q := b.Select(taskColumns...).
		From(b.Table(schema.TasksTableName)).
		Where(ownedTask(userID, id)).
		Limit(1)

	var found *structs.Task
	err := r.query(ctx, q, func(rows *sql.Rows) error {
		t, err := scanTask(rows)
		found = t
		return err
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// List returns one page of the user's tasks and the total matching count.
func (r *taskRepository) List(ctx context.Context, params *structs.ListTaskParams) (_ *structs.TaskList, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerRepo, "Task.List")
	defer func() { span.End(err) }()
	ctx, cancel := r.d.WithTimeout(ctx)
	defer cancel()

	page, count := buildListQueries(r.builder(), params)

	total, err := r.count(ctx, count)
	if err != nil {
		r.logger.Error(ctx, "failed to count tasks", "error", err)
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	tasks := make([]*structs.Task, 0, params.Limit)
	err = r.query(ctx, page, func(rows *sql.Rows) error {
		t, err := scanTask(rows)
		if err == nil {
			tasks = append(tasks, t)
		}
		return err
	})
	if err != nil {
		r.logger.Error(ctx, "failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &structs.TaskList{Tasks: tasks, Total: total}, nil
}

// Update applies changes to an owned task and returns the stored result.
// updated_at is always bumped.
func (r *taskRepository) Update(ctx context.Context, userID, id string, changes *structs.TaskChanges) (_ *structs.Task, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerRepo, "Task.Update")
	defer func() { span.End(ignoreNotFound(err)) }()
	ctx, cancel := r.d.WithTimeout(ctx)
	defer cancel()

	var updated *structs.Task
	err = r.d.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.findOwned(ctx, userID, id); err != nil {
			return err
		}

		u := r.builder().Update(schema.TasksTableName).
			Set(schema.FieldUpdatedAt, timeNow()).
			Where(ownedTask(userID, id))
		if changes.Title != nil {
			u.Set(schema.TaskFieldTitle, *changes.Title)
		}
		if changes.ClearDescription {
			u.SetNull(schema.TaskFieldDescription)
		} else if changes.Description != nil {
			u.Set(schema.TaskFieldDescription, *changes.Description)
		}
		if changes.Status != nil {
			u.Set(schema.TaskFieldStatus, string(*changes.Status))
		}
		if changes.Priority != nil {
			u.Set(schema.TaskFieldPriority, string(*changes.Priority))
		}
		if _, err := r.exec(ctx, u); err != nil {
			return err
		}

		t, err := r.findOwned(ctx, userID, id)
		updated = t
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		r.logger.Error(ctx, "failed to update task", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	r.logger.Debug(ctx, "task updated", "id", id)
	return updated, nil
}

// Delete removes an owned task.
func (r *taskRepository) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerRepo, "Task.Delete")
	defer func() { span.End(ignoreNotFound(err)) }()
	ctx, cancel := r.d.WithTimeout(ctx)
	defer cancel()

	q := r.builder().Delete(schema.TasksTableName).Where(ownedTask(userID, id))
	n, err := r.exec(ctx, q)
	if err != nil {
		r.logger.Error(ctx, "failed to delete task", "id", id, "error", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	r.logger.Debug(ctx, "task deleted", "id", id)
	return nil
}

// ignoreNotFound keeps expected misses out of span errors.
func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
