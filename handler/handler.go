// Package handler holds the gin handlers of the HTTP API.
package handler

import (
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/service"

	"github.com/gin-gonic/gin"
)

// Handler aggregates the route handlers.
type Handler struct {
	Task *TaskHandler
	Auth *AuthHandler
}

// New creates the handlers on top of svc.
func New(svc *service.Service, logger *logger.Logger) *Handler {
	return &Handler{
		Task: NewTaskHandler(svc.Task, logger),
		Auth: NewAuthHandler(svc.Auth, logger),
	}
}

// RegisterRoutes mounts the API under /api. gate guards every route that
// needs an authenticated user.
func (h *Handler) RegisterRoutes(r gin.IRouter, gate gin.HandlerFunc) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", gate, h.Auth.Me)
	}

	tasks := api.Group("/tasks", gate)
	{
		tasks.POST("", h.Task.Create)
		tasks.GET("", h.Task.List)
		tasks.GET("/:id", h.Task.Get)
		tasks.PUT("/:id", h.Task.Update)
		tasks.DELETE("/:id", h.Task.Delete)
	}
}
