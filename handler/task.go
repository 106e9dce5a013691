package handler

import (
	"net/http"

	"github.com/ncobase/taskapi/ctxutil"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/net/resp"
	"github.com/ncobase/taskapi/service"
	"github.com/ncobase/taskapi/structs"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves /api/tasks. Every route runs behind the
// authentication gate.
type TaskHandler struct {
	svc    *service.TaskService
	logger *logger.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc *service.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var body structs.CreateTaskBody
	if !bindJSON(c, &body, false) {
		return
	}

	ctx := c.Request.Context()
	task, err := h.svc.Create(ctx, ctxutil.GetUserID(ctx), &body)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, resp.Fields{"task": task})
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(c *gin.Context) {
	params := parseListParams(c)

	ctx := c.Request.Context()
	list, err := h.svc.List(ctx, ctxutil.GetUserID(ctx), params)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	tasks := list.Tasks
	if tasks == nil {
		tasks = []*structs.Task{}
	}
	resp.Success(c.Writer, resp.Fields{
		"count": len(tasks),
		"pagination": structs.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: list.Total,
		},
		"tasks": tasks,
	})
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	task, err := h.svc.Get(ctx, ctxutil.GetUserID(ctx), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, resp.Fields{"task": task})
}

// Update handles PUT /api/tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	var body structs.UpdateTaskBody
	if !bindJSON(c, &body, true) {
		return
	}

	ctx := c.Request.Context()
	task, err := h.svc.Update(ctx, ctxutil.GetUserID(ctx), c.Param("id"), &body)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, resp.Fields{"task": task})
}

// Delete handles DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.svc.Delete(ctx, ctxutil.GetUserID(ctx), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Message(c.Writer, "Task deleted successfully")
}
