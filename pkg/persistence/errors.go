// Package persistence provides standardized error types for storage operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrWorkflowNotFound indicates a workflow was not found by the given identifier.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrExecutionNotFound indicates an execution record was not found.
	ErrExecutionNotFound = errors.New("workflow execution not found")

	// ErrTaskNotFound indicates a task was not found by the given identifier.
	ErrTaskNotFound = errors.New("task not found")

	// ErrMeetingNotFound indicates a meeting was not found by the given identifier.
	ErrMeetingNotFound = errors.New("meeting not found")

	// ErrApplicationNotFound indicates an aid application was not found.
	ErrApplicationNotFound = errors.New("aid application not found")

	// ErrNotificationNotFound indicates a notification was not found.
	ErrNotificationNotFound = errors.New("notification not found")
)

// StoreError wraps storage errors with operation context.
type StoreError struct {
	Op       string // Operation being performed (e.g., "GetByID", "Save", "Delete")
	Resource string // Resource kind (e.g., "workflow", "task")
	ID       string // Record ID if applicable
	Err      error  // Underlying error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s operation failed for %s %s: %v", e.Op, e.Resource, e.ID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for store errors.
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a new store error with context.
func NewStoreError(op, resource, id string, err error) *StoreError {
	return &StoreError{Op: op, Resource: resource, ID: id, Err: err}
}

// IsWorkflowNotFound checks if an error indicates a workflow was not found.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// IsNotFound checks if an error is any of the not-found sentinels.
func IsNotFound(err error) bool {
	for _, sentinel := range []error{
		ErrWorkflowNotFound,
		ErrExecutionNotFound,
		ErrTaskNotFound,
		ErrMeetingNotFound,
		ErrApplicationNotFound,
		ErrNotificationNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
