package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrCapacityExceeded is returned when a quadrant has no room for another task.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrCancelled is returned when the user declines to complete an operation.
	ErrCancelled = errors.New("cancelled")
)
