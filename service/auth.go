package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ncobase/taskapi/data/repository"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/logging/observes"
	"github.com/ncobase/taskapi/security/crypto"
	"github.com/ncobase/taskapi/security/jwt"
	"github.com/ncobase/taskapi/structs"
	"github.com/ncobase/taskapi/validation/validator"
)

// AuthService registers users, issues tokens and resolves them back to users.
type AuthService struct {
	users        repository.UserRepository
	tokenManager *jwt.TokenManager
	logger       *logger.Logger
	cost         int
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, tm *jwt.TokenManager, logger *logger.Logger) *AuthService {
	return &AuthService{
		users:        users,
		tokenManager: tm,
		logger:       logger,
		cost:         crypto.DefaultCost,
	}
}

// Register creates an account and returns it with an access token.
func (s *AuthService) Register(ctx context.Context, body *structs.RegisterBody) (_ *structs.AuthResult, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "Auth.Register")
	defer func() { span.End(err) }()

	if err := newValidationError(validator.ValidateStruct(body)); err != nil {
		return nil, err
	}

	hashed, err := crypto.HashPassword(body.Password, s.cost)
	if err != nil {
		s.logger.Error(ctx, "failed to hash password", "error", err)
		return nil, err
	}

	user, err := s.users.Create(ctx, &structs.User{
		Name:         strings.TrimSpace(body.Name),
		Email:        body.Email,
		PasswordHash: hashed,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, storeError("register user", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login checks credentials and returns the user with an access token.
func (s *AuthService) Login(ctx context.Context, body *structs.LoginBody) (_ *structs.AuthResult, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "Auth.Login")
	defer func() { span.End(err) }()

	if err := newValidationError(validator.ValidateStruct(body)); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, body.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeError("login", err)
	}

	if !crypto.ComparePassword(user.PasswordHash, body.Password) {
		s.logger.Warn(ctx, "login failed", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Authenticate resolves a bearer token to an existing user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (_ *structs.User, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "Auth.Authenticate")
	defer func() { span.End(err) }()

	userID, err := s.tokenManager.ParseAccessToken(token)
	if err != nil {
		s.logger.Debug(ctx, "rejected token", "error", err)
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, storeError("authenticate", err)
	}
	return user, nil
}

// Me returns the account of userID.
func (s *AuthService) Me(ctx context.Context, userID string) (*structs.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, storeError("get current user", err)
	}
	return user, nil
}

func (s *AuthService) issue(ctx context.Context, user *structs.User) (*structs.AuthResult, error) {
	token, err := s.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		s.logger.Error(ctx, "failed to sign token", "error", err)
		return nil, err
	}
	return &structs.AuthResult{Token: token, User: user}, nil
}
