// Package validator validates request structs with go-playground/validator
// and turns its errors into per-field messages keyed by JSON name.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is a friendly validation failure for one JSON field.
type FieldError struct {
	Field   string
	Message string
}

var (
	validate *validator.Validate
	once     sync.Once
)

// Engine returns the shared validator with the custom tags registered.
func Engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = validate.RegisterValidation("notblank", notBlank)
	})
	return validate
}

// jsonName reports fields by their JSON key.
func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// notBlank fails strings that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

// errorMessages maps validation tags to message formats.
var errorMessages = map[string]string{
	"required": "%s is required",
	"notblank": "%s is required",
	"email":    "%s must be a valid email address",
	"min":      "%s must be at least %s characters long",
	"max":      "%s must be no longer than %s characters",
	"oneof":    "%s must be one of: %s",
}

// parseMessage constructs a friendly error message based on the validation tag.
func parseMessage(field string, e validator.FieldError) string {
	if msg, ok := errorMessages[e.Tag()]; ok {
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, field, strings.ReplaceAll(e.Param(), " ", ", "))
		}
		return fmt.Sprintf(msg, field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

func translate(err error, field string) []FieldError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []FieldError{{Field: field, Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		name := field
		if name == "" {
			name = e.Field()
		}
		out = append(out, FieldError{Field: name, Message: parseMessage(name, e)})
	}
	return out
}

// ValidateStruct validates s and returns one FieldError per failing field,
// in struct order. It returns nil when s is valid.
func ValidateStruct(s any) []FieldError {
	if err := Engine().Struct(s); err != nil {
		return translate(err, "")
	}
	return nil
}

// ValidateVar validates a single value against tag, reporting failures under field.
func ValidateVar(field string, value any, tag string) []FieldError {
	if err := Engine().Var(value, tag); err != nil {
		return translate(err, field)
	}
	return nil
}
