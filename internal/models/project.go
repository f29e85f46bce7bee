package models

import (
	"github.com/google/uuid"
)

// Project is a named, ordered group of todos
type Project struct {
	// Stable identifier, generated at creation
	ID string `json:"id"`

	// Display name
	Name string `json:"name"`

	// Todos in insertion (display) order
	Todos []Todo `json:"todos"`
}

// NewProject creates an empty project with a fresh ID
func NewProject(name string) Project {
	return Project{
		ID:    uuid.NewString(),
		Name:  name,
		Todos: []Todo{},
	}
}

// CountCompleted returns how many todos in the project are completed
func (p *Project) CountCompleted() int {
	n := 0
	for _, t := range p.Todos {
		if t.Completed {
			n++
		}
	}
	return n
}
