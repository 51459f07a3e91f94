package fserr

import (
	"errors"
	"fmt"
	"io/fs"
)

// NotFoundError reports a path that vanished between enumeration and use.
// Callers recover by listing again.
type NotFoundError struct {
	Op   string
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Op, e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// PermissionError aborts an operation; it is surfaced to the user and never retried.
type PermissionError struct {
	Op   string
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s %s: permission denied", e.Op, e.Path)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// ValidationError rejects user supplied input before any filesystem call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Classify maps filesystem errors onto the error taxonomy. Errors that do not
// fit are wrapped with the operation and path.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var (
		notFound   *NotFoundError
		permission *PermissionError
		validation *ValidationError
	)
	if errors.As(err, &notFound) || errors.As(err, &permission) || errors.As(err, &validation) {
		return err
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &NotFoundError{Op: op, Path: path, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &PermissionError{Op: op, Path: path, Err: err}
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target) || errors.Is(err, fs.ErrNotExist)
}

func IsPermission(err error) bool {
	var target *PermissionError
	return errors.As(err, &target) || errors.Is(err, fs.ErrPermission)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
