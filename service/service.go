// Package service holds the business rules for tasks and authentication.
package service

import (
	"github.com/ncobase/taskapi/data/repository"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/security/jwt"
)

// Service groups the services.
type Service struct {
	Task *TaskService
	Auth *AuthService
}

// New creates the services.
func New(repo *repository.Repository, tm *jwt.TokenManager, logger *logger.Logger) *Service {
	return &Service{
		Task: NewTaskService(repo.Task, logger),
		Auth: NewAuthService(repo.User, tm, logger),
	}
}
