package services

import (
	"fmt"
	"strconv"
)

// Messages returned to clients for rejected input.
const (
	MsgBadRequest   = "Bad Request"
	MsgInvalidData  = "Invalid data"
	MsgEmptyFields  = "Title and content cannot be empty."
	MsgPostAbsent   = "No post found with id %s"
	MsgDeleteAbsent = "Post with id %s not found."
)

// ValidationError is returned for malformed, missing or empty input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError is returned when no post has the requested id.
type NotFoundError struct {
	ID      int
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

func newNotFoundError(format string, id int) error {
	return &NotFoundError{ID: id, Message: fmt.Sprintf(format, strconv.Itoa(id))}
}
