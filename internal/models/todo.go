package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency of a todo
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when no priority is given
const DefaultPriority = PriorityLow

// DueDateLayout is the ISO date form due dates are stored in
const DueDateLayout = "2006-01-02"

// Priorities lists every priority in ascending order
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority parses a priority name, case-insensitively.
// An empty string yields the default priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultPriority, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is a single item inside a project
type Todo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// TodoInput holds the values collected by the add-todo form
type TodoInput struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
}

// NewTodo creates an open todo with a fresh ID.
// An empty priority falls back to DefaultPriority.
func NewTodo(title, description, dueDate string, priority Priority) Todo {
	if priority == "" {
		priority = DefaultPriority
	}
	return Todo{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Completed:   false,
	}
}

// Due parses the stored due date
func (t *Todo) Due() (time.Time, error) {
	return time.Parse(DueDateLayout, t.DueDate)
}

// Overdue reports whether an open todo's due date is before the given day
func (t *Todo) Overdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, err := t.Due()
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
