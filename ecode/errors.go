package ecode

import "fmt"

const (
	requiredMsg = "is required"
	invalidMsg  = "is invalid"
	notExistMsg = "not found"
)

// FieldIsRequired returns field required message
func FieldIsRequired(k string) string {
	return fmt.Sprintf("%s %s", k, requiredMsg)
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k string) string {
	return fmt.Sprintf("%s %s", k, invalidMsg)
}

// NotExist returns not exist message
func NotExist(k string) string {
	return fmt.Sprintf("%s %s", k, notExistMsg)
}
