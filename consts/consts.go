// Package consts holds identifiers shared across taskapi packages.
package consts

// Character sets
const (
	Number    = "0123456789"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	NumLower  = Number + Lowercase
)

// Primary keys
const (
	PrimaryKey     = NumLower
	PrimaryKeySize = 16
)

// Context keys
const (
	UserKey       = "user_id"
	TraceIDKey    = "trace_id"
	TraceIDHeader = "X-Trace-ID"
)

// Metadata columns
const (
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)
