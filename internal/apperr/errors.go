package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced resource does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// PreconditionError signals that an operation was requested against a
// resource in the wrong state, e.g. publishing a package that is not a
// draft. Actual carries the state that caused the rejection.
type PreconditionError struct {
	Message string
	Actual  string
}

func (e *PreconditionError) Error() string {
	if e.Actual == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (current state: %s)", e.Message, e.Actual)
}

func PreconditionFailed(message, actual string) error {
	return &PreconditionError{Message: message, Actual: actual}
}

func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// MalformedInputError signals unusable input, e.g. an empty document body.
type MalformedInputError struct {
	Message string
}

func (e *MalformedInputError) Error() string {
	return e.Message
}

func MalformedInput(message string) error {
	return &MalformedInputError{Message: message}
}

func IsMalformedInput(err error) bool {
	var me *MalformedInputError
	return errors.As(err, &me)
}
