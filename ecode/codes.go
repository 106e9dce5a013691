// Package ecode defines the business codes carried by error responses.
package ecode

import "net/http"

const (
	OK           = 0
	NoLogin      = -101
	RequestErr   = -400
	ParamErr     = -401
	AccessDenied = -403
	NothingFound = -404
	Conflict     = -409
	ServerErr    = -500
	Unavailable  = -503
)

var messages = map[int]string{
	OK:           "ok",
	NoLogin:      "Not authorized",
	RequestErr:   "Invalid request",
	ParamErr:     "Validation failed",
	AccessDenied: "Access denied",
	NothingFound: "Not found",
	Conflict:     "Conflict",
	ServerErr:    "Server error",
	Unavailable:  "Service unavailable",
}

// Text returns the default message of a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// ToHTTPStatus maps a business code to its HTTP status.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case NoLogin:
		return http.StatusUnauthorized
	case RequestErr, ParamErr:
		return http.StatusBadRequest
	case AccessDenied:
		return http.StatusForbidden
	case NothingFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
