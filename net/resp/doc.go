// Package resp writes the JSON envelopes returned by every endpoint.
//
// Success responses carry "success": true next to their payload:
//
//	resp.Success(w, resp.Fields{"task": task})
//	resp.WithStatusCode(w, http.StatusCreated, resp.Fields{"task": task})
//
// Failures carry "success": false, a business code from ecode and either a
// single message or a list of field errors:
//
//	{"success": false, "code": -404, "error": "Task not found"}
//	{"success": false, "code": -401, "errors": [{"field": "title", "message": "title is required"}]}
//
// Build failures with the helpers in errors.go and write them with Fail.
package resp
