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

// AuthHandler serves /api/auth.
type AuthHandler struct {
	svc    *service.AuthService
	logger *logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc *service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var body structs.RegisterBody
	if !bindJSON(c, &body, false) {
		return
	}

	res, err := h.svc.Register(c.Request.Context(), &body)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, resp.Fields{"token": res.Token, "user": res.User})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var body structs.LoginBody
	if !bindJSON(c, &body, false) {
		return
	}

	res, err := h.svc.Login(c.Request.Context(), &body)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, resp.Fields{"token": res.Token, "user": res.User})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.svc.Me(ctx, ctxutil.GetUserID(ctx))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, resp.Fields{"user": user})
}
