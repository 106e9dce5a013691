package resp

import (
	"net/http"

	"github.com/ncobase/taskapi/ecode"
)

// UnAuthorized indicates that the request is unauthorized.
func UnAuthorized(message string) *Exception {
	return newResponse(http.StatusUnauthorized, ecode.NoLogin, message)
}

// BadRequest indicates a bad request.
func BadRequest(message string, errs ...FieldError) *Exception {
	if len(errs) > 0 {
		return newResponse(http.StatusBadRequest, ecode.ParamErr, message, errs...)
	}
	return newResponse(http.StatusBadRequest, ecode.RequestErr, message)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string) *Exception {
	return newResponse(http.StatusNotFound, ecode.NothingFound, message)
}

// Forbidden indicates access is forbidden.
func Forbidden(message string) *Exception {
	return newResponse(http.StatusForbidden, ecode.AccessDenied, message)
}

// InternalServer indicates a server error.
func InternalServer(message string) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message)
}

// ServiceUnavailable indicates a dependency of the service is down.
func ServiceUnavailable(message string) *Exception {
	return newResponse(http.StatusServiceUnavailable, ecode.Unavailable, message)
}
