package handler

import (
	"errors"
	"io"

	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/net/resp"
	"github.com/ncobase/taskapi/service"

	"github.com/gin-gonic/gin"
)

// Messages shown to clients.
const (
	msgInvalidBody        = "Invalid request body"
	msgTaskNotFound       = "Task not found"
	msgNotAuthorized      = "Not authorized"
	msgInvalidCredentials = "Invalid credentials"
	msgUserExists         = "User already exists"
	msgServerError        = "Server error"
)

// bindJSON decodes the request body into obj. An empty body decodes to the
// zero value when allowEmpty is set.
func bindJSON(c *gin.Context, obj any, allowEmpty bool) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	resp.Fail(c.Writer, resp.BadRequest(msgInvalidBody))
	return false
}

// fail writes the response matching a service error. Unexpected errors are
// logged and reported as a generic server error.
func fail(c *gin.Context, log *logger.Logger, err error) {
	var (
		ve *service.ValidationError
		se *service.StoreError
	)
	switch {
	case errors.As(err, &ve):
		errs := make([]resp.FieldError, len(ve.Errors))
		for i, fe := range ve.Errors {
			errs[i] = resp.FieldError{Field: fe.Field, Message: fe.Message}
		}
		resp.Fail(c.Writer, resp.BadRequest("", errs...))
	case errors.Is(err, service.ErrTaskNotFound):
		resp.Fail(c.Writer, resp.NotFound(msgTaskNotFound))
	case errors.Is(err, service.ErrUnauthorized):
		resp.Fail(c.Writer, resp.UnAuthorized(msgNotAuthorized))
	case errors.Is(err, service.ErrInvalidCredentials):
		resp.Fail(c.Writer, resp.UnAuthorized(msgInvalidCredentials))
	case errors.Is(err, service.ErrEmailTaken):
		resp.Fail(c.Writer, resp.BadRequest(msgUserExists))
	default:
		kv := []any{"error", err, "method", c.Request.Method, "path", c.Request.URL.Path}
		if errors.As(err, &se) {
			kv = append(kv, "op", se.Op)
		}
		log.Error(c.Request.Context(), "request failed", kv...)
		_ = c.Error(err)
		resp.Fail(c.Writer, resp.InternalServer(msgServerError))
	}
}
