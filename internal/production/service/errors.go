package service

import (
	"errors"
	"fmt"

	"github.com/sarakts28/febric-flow-backend/internal/production/repository"
)

// ErrorKind classifies failures for the HTTP layer.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Error is returned by every service operation that fails for a domain reason.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "database operation failed", Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// storeErr converts repository failures into service errors. notFoundMsg is
// used when the record is missing.
func storeErr(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NotFound("%s", notFoundMsg)
	case errors.Is(err, repository.ErrVersionConflict):
		return Conflict("record was modified by another request, reload and retry")
	case repository.IsDuplicate(err):
		return Validation("a record with the same unique value already exists")
	}
	return Persistence(err)
}
