// Package app holds the controller: every user action is one
// load-validate-mutate-save-render cycle over the stored project list.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"todos/internal/models"
	"todos/internal/storage"
)

// RequiredFieldsMessage is shown when the add-todo form lacks a title or due date
const RequiredFieldsMessage = "Title and Due Date are required."

// View draws state and collects input for the controller
type View interface {
	// Render replaces whatever is shown with the full project list
	Render(projects []models.Project)

	// PromptText asks for a single line; ok is false on cancel
	PromptText(message string) (value string, ok bool)

	// PromptTodo collects the add-todo form for a project and calls submit
	// with the values, or does nothing if the user cancels
	PromptTodo(projectName string, submit func(models.TodoInput))

	// Confirm asks a yes/no question
	Confirm(message string) bool

	// Alert tells the user an action could not be performed
	Alert(message string)
}

// Controller applies user actions to the stored project list
type Controller struct {
	store  *storage.Store
	view   View
	logger *log.Logger
}

// New creates a controller. A nil logger selects log.Default().
func New(store *storage.Store, view View, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{store: store, view: view, logger: logger}
}

// Start seeds the store on first run and renders the current state
func (c *Controller) Start() error {
	if _, err := c.store.Bootstrap(); err != nil {
		return err
	}
	return c.Refresh()
}

// Refresh renders the stored state without changing it
func (c *Controller) Refresh() error {
	projects, err := c.store.LoadProjects()
	if err != nil {
		return err
	}
	c.view.Render(projects)
	return nil
}

// BeginCreateProject prompts for a name and creates the project
func (c *Controller) BeginCreateProject() error {
	name, ok := c.view.PromptText("Enter project name:")
	if !ok {
		return nil
	}
	return c.CreateProject(name)
}

// CreateProject appends an empty project. An empty name is ignored.
func (c *Controller) CreateProject(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return c.apply("create project", func(projects *[]models.Project) error {
		*projects = append(*projects, models.NewProject(name))
		return nil
	})
}

// BeginAddTodo opens the add-todo form for a project; submitting it adds the todo
func (c *Controller) BeginAddTodo(project Ref) error {
	projects, err := c.store.LoadProjects()
	if err != nil {
		return err
	}
	pi, err := resolveProject(projects, project)
	if err != nil {
		c.logger.Error("Project not found.", "project", project)
		return err
	}

	c.view.PromptTodo(projects[pi].Name, func(in models.TodoInput) {
		// Failures are already reported through the view and the log
		_ = c.AddTodo(ByID(projects[pi].ID), in)
	})
	return nil
}

// AddTodo appends an open todo to a project
func (c *Controller) AddTodo(project Ref, in models.TodoInput) error {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	dueDate := strings.TrimSpace(in.DueDate)

	if title == "" || dueDate == "" {
		c.view.Alert(RequiredFieldsMessage)
		return models.ErrRequiredField
	}
	priority, err := models.ParsePriority(in.Priority)
	if err != nil {
		c.view.Alert(fmt.Sprintf("Priority must be one of low, medium or high (got %q).", in.Priority))
		return err
	}
	if _, err := time.Parse(models.DueDateLayout, dueDate); err != nil {
		c.view.Alert(fmt.Sprintf("Due Date must be a date like 2025-01-31 (got %q).", dueDate))
		return fmt.Errorf("%w: %q", models.ErrInvalidDueDate, dueDate)
	}

	return c.apply("add todo", func(projects *[]models.Project) error {
		pi, err := resolveProject(*projects, project)
		if err != nil {
			c.logger.Error("Project not found.", "project", project)
			return err
		}
		p := &(*projects)[pi]
		p.Todos = append(p.Todos, models.NewTodo(title, description, dueDate, priority))
		return nil
	})
}

// ToggleComplete flips a todo between open and completed
func (c *Controller) ToggleComplete(project, todo Ref) error {
	return c.apply("toggle todo", func(projects *[]models.Project) error {
		p, ti, err := c.lookupTodo(*projects, project, todo)
		if err != nil {
			return err
		}
		p.Todos[ti].Completed = !p.Todos[ti].Completed
		return nil
	})
}

// DeleteTodo removes a todo from its project
func (c *Controller) DeleteTodo(project, todo Ref) error {
	return c.apply("delete todo", func(projects *[]models.Project) error {
		p, ti, err := c.lookupTodo(*projects, project, todo)
		if err != nil {
			return err
		}
		p.Todos = append(p.Todos[:ti], p.Todos[ti+1:]...)
		return nil
	})
}

// DeleteProject removes a project and its todos after the user confirms.
// Declining is not an error.
func (c *Controller) DeleteProject(project Ref) error {
	err := c.apply("delete project", func(projects *[]models.Project) error {
		pi, err := resolveProject(*projects, project)
		if err != nil {
			c.logger.Error("Project not found.", "project", project)
			return err
		}

		msg := fmt.Sprintf("Are you sure you want to delete the project: %q?", (*projects)[pi].Name)
		if !c.view.Confirm(msg) {
			return models.ErrNotConfirmed
		}

		*projects = append((*projects)[:pi], (*projects)[pi+1:]...)
		return nil
	})
	if errors.Is(err, models.ErrNotConfirmed) {
		c.logger.Debug("project deletion declined", "project", project)
		return nil
	}
	return err
}

// lookupTodo resolves both references, logging when either fails
func (c *Controller) lookupTodo(projects []models.Project, project, todo Ref) (*models.Project, int, error) {
	pi, err := resolveProject(projects, project)
	if err != nil {
		c.logger.Error("Invalid Todo or Project index.", "project", project, "todo", todo)
		return nil, -1, fmt.Errorf("%w: %w", models.ErrTodoNotFound, err)
	}
	p := &projects[pi]
	ti, err := resolveTodo(p.Todos, todo)
	if err != nil {
		c.logger.Error("Invalid Todo or Project index.", "project", project, "todo", todo)
		return nil, -1, err
	}
	return p, ti, nil
}

// apply runs one transaction and redraws on success
func (c *Controller) apply(action string, fn func(projects *[]models.Project) error) error {
	var saved []models.Project
	err := c.store.Update(func(projects *[]models.Project) error {
		if err := fn(projects); err != nil {
			return err
		}
		saved = *projects
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Debug(action, "projects", len(saved))
	c.view.Render(saved)
	return nil
}
