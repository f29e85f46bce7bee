package models

import (
	"errors"
)

// Input errors, reported to the user
var (
	// ErrRequiredField is returned when a title or due date is missing
	ErrRequiredField = errors.New("title and due date are required")

	// ErrInvalidPriority is returned for a priority outside low/medium/high
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidDueDate is returned when a due date is not YYYY-MM-DD
	ErrInvalidDueDate = errors.New("invalid due date")
)

// Lookup errors, reported on the diagnostic log
var (
	// ErrProjectNotFound is returned when a project reference does not resolve
	ErrProjectNotFound = errors.New("project not found")

	// ErrTodoNotFound is returned when a todo reference does not resolve
	ErrTodoNotFound = errors.New("invalid todo or project index")

	// ErrAmbiguousRef is returned when an ID prefix matches more than one entity
	ErrAmbiguousRef = errors.New("ambiguous reference")
)

// ErrNotConfirmed is returned when a destructive action was declined
var ErrNotConfirmed = errors.New("not confirmed")
