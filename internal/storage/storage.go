// Package storage persists the full project list as one JSON blob in a kv.Store.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todos/internal/kv"
	"todos/internal/models"
)

// DefaultKey is the key the project list is stored under
const DefaultKey = "projects"

// DefaultProjectName is the name of the project seeded on first run
const DefaultProjectName = "Default Project"

// Store reads and writes the whole project list under a single key
type Store struct {
	kv     kv.Store
	key    string
	logger *log.Logger
}

// New creates a Store over the given key-value store.
// An empty key selects DefaultKey; a nil logger selects log.Default().
func New(s kv.Store, key string, logger *log.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{kv: s, key: key, logger: logger}
}

// Key returns the key the project list is stored under
func (s *Store) Key() string {
	return s.key
}

// storedProject and storedTodo are the persisted shapes. Pointer fields let
// load tell a missing field apart from a zero value.
type storedProject struct {
	ID    string        `json:"id,omitempty"`
	Name  string        `json:"name"`
	Todos *[]storedTodo `json:"todos"`
}

type storedTodo struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"dueDate"`
	Priority    *string `json:"priority"`
	Completed   bool    `json:"completed"`
}

// SaveProjects serializes every project and overwrites the stored value
func (s *Store) SaveProjects(projects []models.Project) error {
	records := make([]storedProject, 0, len(projects))
	for _, p := range projects {
		todos := make([]storedTodo, 0, len(p.Todos))
		for _, t := range p.Todos {
			priority := string(t.Priority)
			todos = append(todos, storedTodo{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				DueDate:     t.DueDate,
				Priority:    &priority,
				Completed:   t.Completed,
			})
		}
		records = append(records, storedProject{
			ID:    p.ID,
			Name:  p.Name,
			Todos: &todos,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}

	s.logger.Debug("saved projects", "key", s.key, "projects", len(projects))
	return nil
}

// LoadProjects reads the stored project list. A missing key yields an empty
// list, not an error.
func (s *Store) LoadProjects() ([]models.Project, error) {
	projects, _, err := s.load()
	return projects, err
}

// load returns the projects and whether any record lacked an ID
func (s *Store) load() ([]models.Project, bool, error) {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, false, fmt.Errorf("load projects: %w", err)
	}
	if !ok {
		return []models.Project{}, false, nil
	}

	var records []storedProject
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, false, fmt.Errorf("parse stored projects: %w", err)
	}

	backfilled := false
	projects := make([]models.Project, 0, len(records))
	for _, rec := range records {
		project := models.Project{
			ID:    rec.ID,
			Name:  rec.Name,
			Todos: []models.Todo{},
		}
		if project.ID == "" {
			project.ID = uuid.NewString()
			backfilled = true
		}

		if rec.Todos != nil {
			for _, t := range *rec.Todos {
				todo := models.Todo{
					ID:          t.ID,
					Title:       t.Title,
					Description: t.Description,
					DueDate:     t.DueDate,
					Priority:    models.DefaultPriority,
					Completed:   t.Completed,
				}
				if t.Priority != nil && *t.Priority != "" {
					priority := models.Priority(strings.ToLower(*t.Priority))
					if priority.Valid() {
						todo.Priority = priority
					} else {
						s.logger.Warn("unknown stored priority, using default", "priority", *t.Priority, "title", t.Title)
					}
				}
				if todo.ID == "" {
					todo.ID = uuid.NewString()
					backfilled = true
				}
				project.Todos = append(project.Todos, todo)
			}
		}
		projects = append(projects, project)
	}

	return projects, backfilled, nil
}

// Bootstrap prepares the stored value for first use. When nothing is stored
// it seeds a single empty project named DefaultProjectName. When stored
// records predate stable IDs, the generated IDs are written back so they stay
// the same across loads. Reports whether anything was written.
func (s *Store) Bootstrap() (bool, error) {
	_, found, err := s.kv.Get(s.key)
	if err != nil {
		return false, fmt.Errorf("bootstrap: %w", err)
	}
	if !found {
		s.logger.Info("seeding default project", "key", s.key)
		return true, s.SaveProjects([]models.Project{models.NewProject(DefaultProjectName)})
	}

	projects, backfilled, err := s.load()
	if err != nil {
		return false, err
	}
	if !backfilled {
		return false, nil
	}
	s.logger.Info("assigning ids to stored records", "key", s.key)
	return true, s.SaveProjects(projects)
}

// Update loads the project list, applies fn to it and saves the result.
// Nothing is written when fn returns an error.
func (s *Store) Update(fn func(projects *[]models.Project) error) error {
	projects, _, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(&projects); err != nil {
		return err
	}
	return s.SaveProjects(projects)
}
