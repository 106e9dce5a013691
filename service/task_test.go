package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ncobase/taskapi/structs"
	"github.com/ncobase/taskapi/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTasks() (*TaskService, *fakeTasks) {
	repo := newFakeTasks()
	return NewTaskService(repo, testLogger()), repo
}

func TestCreateTask(t *testing.T) {
	s, repo := newTestTasks()
	ctx := context.Background()

	task, err := s.Create(ctx, "u1", &structs.CreateTaskBody{Title: "  A  "})
	require.NoError(t, err)
	assert.Equal(t, "A", task.Title)
	assert.Equal(t, "u1", task.UserID)
	assert.Equal(t, structs.StatusPending, task.Status)
	assert.Equal(t, structs.PriorityMedium, task.Priority)
	assert.Len(t, repo.tasks, 1)
}

func TestCreateTaskValidation(t *testing.T) {
	s, repo := newTestTasks()
	ctx := context.Background()

	tests := []struct {
		name  string
		body  structs.CreateTaskBody
		field string
	}{
		{"empty title", structs.CreateTaskBody{}, "title"},
		{"blank title", structs.CreateTaskBody{Title: " \t "}, "title"},
		{"bad status", structs.CreateTaskBody{Title: "A", Status: "done"}, "status"},
		{"bad priority", structs.CreateTaskBody{Title: "A", Priority: "urgent"}, "priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, "u1", &tt.body)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}
	assert.Empty(t, repo.tasks, "invalid input must not persist")
}

func TestCreateTaskStoreError(t *testing.T) {
	s, repo := newTestTasks()
	repo.err = errors.New("connection refused")

	_, err := s.Create(context.Background(), "u1", &structs.CreateTaskBody{Title: "A"})
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "create task", serr.Op)
}

func TestTaskNotOwned(t *testing.T) {
	s, _ := newTestTasks()
	ctx := context.Background()
	task, err := s.Create(ctx, "u1", &structs.CreateTaskBody{Title: "A"})
	require.NoError(t, err)

	_, err = s.Get(ctx, "u2", task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = s.Update(ctx, "u2", task.ID, &structs.UpdateTaskBody{Title: types.Some("B")})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "u2", task.ID), ErrTaskNotFound)

	got, err := s.Get(ctx, "u1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestUpdateOnlyStatus(t *testing.T) {
	s, _ := newTestTasks()
	ctx := context.Background()
	desc := "details"
	task, err := s.Create(ctx, "u1", &structs.CreateTaskBody{Title: "A", Description: &desc, Priority: "high"})
	require.NoError(t, err)

	var body structs.UpdateTaskBody
	require.NoError(t, json.Unmarshal([]byte(`{"status":"in-progress"}`), &body))

	updated, err := s.Update(ctx, "u1", task.ID, &body)
	require.NoError(t, err)
	assert.Equal(t, structs.StatusInProgress, updated.Status)
	assert.Equal(t, "A", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "details", *updated.Description)
	assert.Equal(t, structs.PriorityHigh, updated.Priority)
}

func TestUpdateClearDescription(t *testing.T) {
	s, _ := newTestTasks()
	ctx := context.Background()
	desc := "details"
	task, err := s.Create(ctx, "u1", &structs.CreateTaskBody{Title: "A", Description: &desc})
	require.NoError(t, err)

	var body structs.UpdateTaskBody
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &body))
	updated, err := s.Update(ctx, "u1", task.ID, &body)
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
}

func TestUpdateValidation(t *testing.T) {
	s, _ := newTestTasks()
	ctx := context.Background()
	task, err := s.Create(ctx, "u1", &structs.CreateTaskBody{Title: "A"})
	require.NoError(t, err)

	for _, doc := range []string{
		`{"title":"   "}`,
		`{"title":null}`,
		`{"status":"done"}`,
		`{"status":null}`,
		`{"priority":"urgent"}`,
	} {
		var body structs.UpdateTaskBody
		require.NoError(t, json.Unmarshal([]byte(doc), &body))
		_, err := s.Update(ctx, "u1", task.ID, &body)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, doc)
	}

	got, err := s.Get(ctx, "u1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title, "rejected updates must not change the task")
}

func TestUpdateEmptyBody(t *testing.T) {
	s, _ := newTestTasks()
	ctx := context.Background()
	task, err := s.Create(ctx, "u1", &structs.CreateTaskBody{Title: "A"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, "u1", task.ID, &structs.UpdateTaskBody{})
	require.NoError(t, err)
	assert.Equal(t, task.Title, updated.Title)
}

func TestListTasksScopedAndNormalized(t *testing.T) {
	s, _ := newTestTasks()
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, "u1", &structs.CreateTaskBody{Title: title, Status: "completed"})
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, "u1", &structs.CreateTaskBody{Title: "d"})
	require.NoError(t, err)
	_, err = s.Create(ctx, "u2", &structs.CreateTaskBody{Title: "e", Status: "completed"})
	require.NoError(t, err)

	// a client supplied owner is ignored
	list, err := s.List(ctx, "u1", structs.ListTaskParams{UserID: "u2", Status: "completed", Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	for _, task := range list.Tasks {
		assert.Equal(t, "u1", task.UserID)
		assert.Equal(t, structs.StatusCompleted, task.Status)
	}
}

func TestDeleteTask(t *testing.T) {
	s, _ := newTestTasks()
	ctx := context.Background()
	task, err := s.Create(ctx, "u1", &structs.CreateTaskBody{Title: "A"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "u1", task.ID))
	_, err = s.Get(ctx, "u1", task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
