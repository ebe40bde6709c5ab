package types

import "fmt"

// ValidationError reports a missing or invalid required field on create
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing required field %q", e.Field)
}

// NotFoundError reports an operation targeting an absent record id
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// InvalidTransitionError reports a lifecycle operation called out of turn.
// The record is left unchanged.
type InvalidTransitionError struct {
	ID   int64
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("work order %d cannot move from %q to %q: already started or completed", e.ID, e.From, e.To)
}

// StorageError reports a backend read or write failure
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// InvalidDataError reports a malformed import payload
type InvalidDataError struct {
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data: %s", e.Reason)
}
