// Package apperr defines the failure taxonomy shared by services and the HTTP
// layer: validation failures, missing records, and persistence failures.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnitMismatch is returned when a pantry merge would sum quantities with
// different units and strict unit checking is enabled.
var ErrUnitMismatch = errors.New("unit mismatch")

// ValidationError reports input rejected before any store access.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NotFoundError reports an operation on a record that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StoreError wraps a persistence failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Store wraps err as a StoreError. A nil err stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// Status maps an error to the HTTP status the envelope is sent with.
func Status(err error) int {
	var ve *ValidationError
	var nf *NotFoundError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show a client. Store failures are replaced
// by fallback so raw driver errors never leave the process.
func Message(err error, fallback string) string {
	var ve *ValidationError
	var nf *NotFoundError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &nf):
		return nf.Error()
	default:
		return fallback
	}
}
