package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/taskapi/ecode"
)

// Fields is the payload merged into a success envelope.
type Fields map[string]any

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Exception represents a failure response.
type Exception struct {
	Status  int          // HTTP status
	Code    int          // Business code
	Message string       // Message
	Errors  []FieldError // Validation errors
}

// Error implements error so an Exception can travel through error returns.
func (e *Exception) Error() string {
	return e.Message
}

// newResponse creates a new failure response.
func newResponse(status, code int, message string, errs ...FieldError) *Exception {
	if message == "" {
		message = ecode.Text(code)
	}
	return &Exception{
		Status:  status,
		Code:    code,
		Message: message,
		Errors:  errs,
	}
}

// Success handles success responses.
func Success(w http.ResponseWriter, fields Fields) {
	WithStatusCode(w, http.StatusOK, fields)
}

// WithStatusCode handles success responses with custom status code.
func WithStatusCode(w http.ResponseWriter, statusCode int, fields Fields) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	writeJSON(w, statusCode, body)
}

// Message writes a success envelope that only carries a message.
func Message(w http.ResponseWriter, message string) {
	Success(w, Fields{"message": message})
}

// Fail handles failure responses.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = InternalServer("")
	}
	status, body := buildFailureResponse(r)
	writeJSON(w, status, body)
}

// buildFailureResponse builds the failure response.
func buildFailureResponse(r *Exception) (int, map[string]any) {
	status := http.StatusBadRequest
	code := ecode.RequestErr

	if r.Status != 0 {
		status = r.Status
	}
	if r.Code != 0 {
		code = r.Code
	}
	message := r.Message
	if message == "" {
		message = ecode.Text(code)
	}

	body := map[string]any{
		"success": false,
		"code":    code,
	}
	if len(r.Errors) > 0 {
		body["errors"] = r.Errors
	} else {
		body["error"] = message
	}
	return status, body
}

// JSON writes v as is, without the success envelope.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	writeJSON(w, statusCode, v)
}

// writeJSON writes the JSON response with the specified status code.
func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
