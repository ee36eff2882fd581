package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrTaskNotFound      = errors.New("task not found")

	// ErrAssistantUnavailable is the only error the assistant surfaces to
	// callers; the underlying cause is logged, never exposed.
	ErrAssistantUnavailable = errors.New("I'm having trouble thinking right now. Please try again later.")
)

// BackendError wraps any failure returned by the relational store: transport,
// constraint violation, permission. The store tree is never mutated on this path.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// NewBackendError creates a BackendError for the given gateway operation
func NewBackendError(op string, err error) *BackendError {
	return &BackendError{Op: op, Err: err}
}

// SyncError marks a failure inside the ordered workspace sync sequence. The
// sequence aborts at the failing step and the store is left untouched.
type SyncError struct {
	Step string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s: %v", e.Step, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
