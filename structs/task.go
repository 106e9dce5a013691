// Package structs holds the domain types and request bodies shared by the
// handler, service and repository layers.
package structs

import (
	"time"

	"github.com/ncobase/taskapi/types"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskPriority ranks a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Enum values, in the order they are declared in the store.
var (
	TaskStatuses   = []string{string(StatusPending), string(StatusInProgress), string(StatusCompleted)}
	TaskPriorities = []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}
)

// Validation tags for enum fields.
const (
	StatusTag   = "oneof=pending in-progress completed"
	PriorityTag = "oneof=low medium high"
	TitleTag    = "notblank,max=255"
)

// Task is a user owned work item.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	UserID      string       `json:"userId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CreateTaskBody is the payload of POST /api/tasks.
type CreateTaskBody struct {
	Title       string  `json:"title" validate:"notblank,max=255"`
	Description *string `json:"description"`
	Status      string  `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateTaskBody is the payload of PUT /api/tasks/:id. Only fields present in
// the JSON document are applied; a null description clears it.
type UpdateTaskBody struct {
	Title       types.Optional[string] `json:"title"`
	Description types.Optional[string] `json:"description"`
	Status      types.Optional[string] `json:"status"`
	Priority    types.Optional[string] `json:"priority"`
}

// IsEmpty reports whether no field was supplied.
func (b *UpdateTaskBody) IsEmpty() bool {
	return !b.Title.Set && !b.Description.Set && !b.Status.Set && !b.Priority.Set
}

// TaskChanges is the validated set of column changes for an update.
type TaskChanges struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *TaskStatus
	Priority         *TaskPriority
}
