package db

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned when no task has the requested id
var ErrTaskNotFound = errors.New("task not found")

// StorageError wraps a failure of the underlying database
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func notFound(id uint) error {
	return fmt.Errorf("task #%d: %w", id, ErrTaskNotFound)
}
