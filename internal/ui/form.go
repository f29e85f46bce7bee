package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/models"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldPriority
	fieldCount
)

// todoForm collects the add-todo fields
type todoForm struct {
	project string
	inputs  []textinput.Model
	focus   int
	submit  func(models.TodoInput)
}

func newTodoForm(project string, submit func(models.TodoInput)) todoForm {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}

	inputs[fieldTitle].Placeholder = "Title"
	inputs[fieldDescription].Placeholder = "Description (optional)"
	inputs[fieldDueDate].Placeholder = "YYYY-MM-DD"
	inputs[fieldDueDate].CharLimit = len(models.DueDateLayout)
	inputs[fieldPriority].Placeholder = "low, medium or high"
	inputs[fieldPriority].SetValue(string(models.DefaultPriority))

	f := todoForm{project: project, inputs: inputs, submit: submit}
	f.inputs[fieldTitle].Focus()
	return f
}

// values returns what has been typed so far
func (f todoForm) values() models.TodoInput {
	return models.TodoInput{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		DueDate:     f.inputs[fieldDueDate].Value(),
		Priority:    f.inputs[fieldPriority].Value(),
	}
}

func (f *todoForm) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// cyclePriority steps the priority field through low, medium, high
func (f *todoForm) cyclePriority(delta int) {
	current := models.Priority(strings.ToLower(strings.TrimSpace(f.inputs[fieldPriority].Value())))
	idx := 0
	for i, p := range models.Priorities {
		if p == current {
			idx = i
		}
	}
	n := len(models.Priorities)
	f.inputs[fieldPriority].SetValue(string(models.Priorities[(idx+delta+n)%n]))
}

// update feeds a key to the focused input
func (f todoForm) update(msg tea.Msg) (todoForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f todoForm) view() string {
	labels := []string{"Title", "Description", "Due date", "Priority"}
	var b strings.Builder
	for i, in := range f.inputs {
		label := labelStyle
		if i == f.focus {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next · enter submit on last field · ctrl+s submit · esc cancel"))
	return b.String()
}
