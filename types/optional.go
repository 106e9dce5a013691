// Package types holds small generic value types shared by request structs.
package types

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a JSON field was present, and whether it was null.
//
//	{}                      -> Set=false
//	{"description": null}   -> Set=true, Null=true
//	{"description": "x"}    -> Set=true, Value="x"
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a set, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a set Optional holding null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON implements json.Unmarshaler. It is only called when the key
// is present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value, o.Null = zero, true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether a non-null value was supplied.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	v := o.Value
	return &v
}
