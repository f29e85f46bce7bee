package app

import (
	"fmt"
	"strconv"
	"strings"

	"todos/internal/models"
	"todos/internal/util"
)

// Ref addresses a project or todo either by position or by stable ID.
// Positions are only meaningful against the state they were read from; IDs
// survive inserts and removals.
type Ref struct {
	Index int
	ID    string // full ID or unique prefix; takes precedence over Index

	// text a numeric reference was parsed from; tried as an ID prefix when
	// Index is out of range
	text string
}

// At refers to the entity at position i
func At(i int) Ref {
	return Ref{Index: i}
}

// ByID refers to the entity with the given ID or unique ID prefix
func ByID(id string) Ref {
	return Ref{Index: -1, ID: id}
}

// ParseRef reads a 0-based position, a UUID, or an ID prefix. Digits as long
// as a displayed short ID are taken as an ID prefix.
func ParseRef(s string) Ref {
	s = strings.TrimSpace(s)
	if util.IsUUID(s) || len(s) >= util.ShortIDLength {
		return ByID(s)
	}
	if i, err := strconv.Atoi(s); err == nil {
		return Ref{Index: i, text: s}
	}
	return ByID(s)
}

func (r Ref) String() string {
	if r.ID != "" {
		return r.ID
	}
	return strconv.Itoa(r.Index)
}

func resolveProject(projects []models.Project, r Ref) (int, error) {
	i, err := resolve(len(projects), func(i int) string { return projects[i].ID }, r)
	if err != nil {
		return -1, fmt.Errorf("%w: %s", err, r)
	}
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", models.ErrProjectNotFound, r)
	}
	return i, nil
}

func resolveTodo(todos []models.Todo, r Ref) (int, error) {
	i, err := resolve(len(todos), func(i int) string { return todos[i].ID }, r)
	if err != nil {
		return -1, fmt.Errorf("%w: %s", err, r)
	}
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", models.ErrTodoNotFound, r)
	}
	return i, nil
}

// resolve returns the position r points at among n entities, or -1
func resolve(n int, idAt func(int) string, r Ref) (int, error) {
	prefix := r.ID
	if prefix == "" {
		if r.Index >= 0 && r.Index < n {
			return r.Index, nil
		}
		if r.text == "" {
			return -1, nil
		}
		prefix = r.text
	}

	match := -1
	for i := 0; i < n; i++ {
		id := idAt(i)
		if id == prefix {
			return i, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match >= 0 {
				return -1, models.ErrAmbiguousRef
			}
			match = i
		}
	}
	return match, nil
}
