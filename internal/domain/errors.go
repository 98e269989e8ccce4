package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownEntry is returned when no mood log entry matches an id prefix
var ErrUnknownEntry = errors.New("entry not found")

// StorageError reports a failed write to durable storage.
// The in-memory state that triggered the write has already been rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// StartupError reports a data file that exists but cannot be loaded
type StartupError struct {
	Path string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }
