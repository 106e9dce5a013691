package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ncobase/taskapi/data/repository"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/logging/observes"
	"github.com/ncobase/taskapi/structs"
	"github.com/ncobase/taskapi/validation/validator"
)

// TaskService handles task-related business logic. Every method acts on
// behalf of userID, the authenticated requester.
type TaskService struct {
	tasks  repository.TaskRepository
	logger *logger.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		tasks:  tasks,
		logger: logger,
	}
}

// Create validates body and creates a task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID string, body *structs.CreateTaskBody) (_ *structs.Task, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "Task.Create")
	defer func() { span.End(err) }()

	if err := newValidationError(validator.ValidateStruct(body)); err != nil {
		return nil, err
	}

	t := &structs.Task{
		Title:       strings.TrimSpace(body.Title),
		Description: body.Description,
		Status:      structs.TaskStatus(body.Status),
		Priority:    structs.TaskPriority(body.Priority),
		UserID:      userID,
	}

	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		return nil, storeError("create task", err)
	}

	s.logger.Info(ctx, "task created", "task_id", created.ID)
	return created, nil
}

// Get returns the task if userID owns it.
func (s *TaskService) Get(ctx context.Context, userID, id string) (_ *structs.Task, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "Task.Get")
	defer func() { span.End(err) }()

	t, err := s.tasks.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, s.mapError("get task", err)
	}
	return t, nil
}

// List returns one page of the requester's tasks. params.UserID is
// overwritten with userID.
func (s *TaskService) List(ctx context.Context, userID string, params structs.ListTaskParams) (_ *structs.TaskList, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "Task.List")
	defer func() { span.End(err) }()

	params.UserID = userID
	params.Normalize()

	list, err := s.tasks.List(ctx, &params)
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	return list, nil
}

// Update applies the fields present in body to the requester's task.
func (s *TaskService) Update(ctx context.Context, userID, id string, body *structs.UpdateTaskBody) (_ *structs.Task, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "Task.Update")
	defer func() { span.End(err) }()

	changes, err := taskChanges(body)
	if err != nil {
		return nil, err
	}

	t, err := s.tasks.Update(ctx, userID, id, changes)
	if err != nil {
		return nil, s.mapError("update task", err)
	}

	s.logger.Info(ctx, "task updated", "task_id", id)
	return t, nil
}

// Delete removes the requester's task.
func (s *TaskService) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "Task.Delete")
	defer func() { span.End(err) }()

	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		return s.mapError("delete task", err)
	}

	s.logger.Info(ctx, "task deleted", "task_id", id)
	return nil
}

// taskChanges validates an update body and converts it to column changes.
// A present title must not be blank; present enums must be valid; a null
// title, status or priority is rejected since those columns are required.
func taskChanges(body *structs.UpdateTaskBody) (*structs.TaskChanges, error) {
	var (
		errs    []validator.FieldError
		changes structs.TaskChanges
	)

	if body.Title.Set {
		if body.Title.Null {
			errs = append(errs, validator.FieldError{Field: "title", Message: "title is required"})
		} else if fe := validator.ValidateVar("title", body.Title.Value, structs.TitleTag); fe != nil {
			errs = append(errs, fe...)
		} else {
			title := strings.TrimSpace(body.Title.Value)
			changes.Title = &title
		}
	}

	if body.Description.Set {
		if body.Description.Null {
			changes.ClearDescription = true
		} else {
			changes.Description = body.Description.Ptr()
		}
	}

	if body.Status.Set {
		if fe := validator.ValidateVar("status", body.Status.Value, "required,"+structs.StatusTag); fe != nil {
			errs = append(errs, fe...)
		} else {
			status := structs.TaskStatus(body.Status.Value)
			changes.Status = &status
		}
	}

	if body.Priority.Set {
		if fe := validator.ValidateVar("priority", body.Priority.Value, "required,"+structs.PriorityTag); fe != nil {
			errs = append(errs, fe...)
		} else {
			priority := structs.TaskPriority(body.Priority.Value)
			changes.Priority = &priority
		}
	}

	if err := newValidationError(errs); err != nil {
		return nil, err
	}
	return &changes, nil
}

// mapError turns repository errors into service errors.
func (s *TaskService) mapError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return storeError(op, err)
}
