package tasks

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt marks persisted content that cannot be decoded into a task list.
	ErrCorrupt = errors.New("tasks: persisted content is corrupt")
	// ErrIndexOutOfRange is returned when a position does not address an existing task.
	ErrIndexOutOfRange = errors.New("tasks: index out of range")
	// ErrEmptyText rejects tasks without text.
	ErrEmptyText = errors.New("tasks: empty task text")
)

// IndexError carries the offending 0-based index and the list length.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("tasks: index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// Code satisfies the error-code convention used in handler logs.
func (e *IndexError) Code() string { return "INDEX_OUT_OF_RANGE" }
