package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todos/internal/app"
	"todos/internal/models"
)

type focusArea int

const (
	focusProjects focusArea = iota
	focusTodos
)

// Model is the interactive board
type Model struct {
	b      *board
	ctrl   *app.Controller
	logger *log.Logger
	input  textinput.Model
}

// NewModel creates the board model. view must be the View ctrl draws into.
func NewModel(ctrl *app.Controller, view *BoardView, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	ti := textinput.New()
	ti.CharLimit = 80
	ti.Width = 40

	return Model{
		b:      view.b,
		ctrl:   ctrl,
		logger: logger,
		input:  ti,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.b.width = msg.Width
		m.b.height = msg.Height
		m.b.todos.SetSize(m.todoPaneWidth()-4, m.paneHeight()-2)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.b.alerted = false
		switch m.b.dialog {
		case dialogText:
			return m.handleTextKeys(msg)
		case dialogConfirm:
			return m.handleConfirmKeys(msg)
		case dialogForm:
			return m.handleFormKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "left", "right", "h", "l":
		m.toggleFocus()
	case "up", "k", "down", "j", "pgup", "pgdown":
		if m.b.focus == focusProjects {
			m.moveProject(msg.String())
			return m, nil
		}
		var cmd tea.Cmd
		m.b.todos, cmd = m.b.todos.Update(msg)
		return m, cmd
	case "n":
		m.run(m.ctrl.BeginCreateProject)
		if m.b.dialog == dialogText {
			cmd := m.openInput()
			return m, cmd
		}
	case "a":
		p, ok := m.b.selected()
		if !ok {
			m.setStatus("Create a project first", true)
			return m, nil
		}
		m.run(func() error { return m.ctrl.BeginAddTodo(app.ByID(p.ID)) })
		if m.b.dialog == dialogForm {
			return m, textinput.Blink
		}
	case "enter", " ", "x":
		if m.b.focus == focusProjects {
			if msg.String() == "enter" {
				m.toggleFocus()
			}
			return m, nil
		}
		m.toggleSelected()
	case "d":
		m.deleteSelected()
	case "r":
		if m.run(m.ctrl.Refresh) == nil {
			m.setStatus("Reloaded", false)
		}
	}
	return m, nil
}

func (m Model) handleTextKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.b.clearAnswer()
		m.setStatus("Input cancelled", false)
		return m, nil
	case "enter":
		value := m.input.Value()
		m.input.Blur()
		before := len(m.b.projects)
		if err := m.b.reply(value, true); err != nil {
			m.fail(err)
		} else if len(m.b.projects) > before {
			m.b.cursor = len(m.b.projects) - 1
			m.b.syncTodos()
			m.setStatus("Project created", false)
		} else {
			m.setStatus("Empty name ignored", true)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		p, _ := m.b.selected()
		if err := m.b.reply("", true); err != nil {
			m.fail(err)
			return m, nil
		}
		m.b.syncTodos()
		m.setStatus(fmt.Sprintf("Deleted project %q", p.Name), false)
	case "n", "N", "esc":
		m.b.clearAnswer()
		m.setStatus("Delete cancelled", false)
	}
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.b.form
	switch msg.String() {
	case "esc":
		m.b.dialog = dialogNone
		m.setStatus("Add todo cancelled", false)
		return m, nil
	case "tab", "down":
		f.move(1)
		return m, textinput.Blink
	case "shift+tab", "up":
		f.move(-1)
		return m, textinput.Blink
	case "left", "right":
		if f.focus == fieldPriority {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			f.cyclePriority(delta)
			return m, nil
		}
	case "enter":
		if f.focus < fieldCount-1 {
			f.move(1)
			return m, textinput.Blink
		}
		m.submitForm()
		return m, nil
	case "ctrl+s":
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	*f, cmd = f.update(msg)
	return m, cmd
}

func (m Model) submitForm() {
	f := m.b.form
	before := m.todoCount()
	m.b.dialog = dialogNone
	m.b.isErr = false
	f.submit(f.values())
	if m.todoCount() > before {
		m.setStatus("Todo created", false)
	}
}

// run executes one controller operation, remembering it so a dialog the
// operation opens can re-run it
func (m Model) run(op func() error) error {
	m.b.current = op
	defer func() { m.b.current = nil }()
	err := op()
	if err != nil {
		m.fail(err)
	}
	return err
}

// fail reports an operation error. Input errors were already alerted and
// lookup errors were logged; anything else goes on the status line.
func (m Model) fail(err error) {
	switch {
	case errors.Is(err, models.ErrRequiredField),
		errors.Is(err, models.ErrInvalidPriority),
		errors.Is(err, models.ErrInvalidDueDate),
		errors.Is(err, models.ErrProjectNotFound),
		errors.Is(err, models.ErrTodoNotFound),
		errors.Is(err, models.ErrAmbiguousRef):
		return
	}
	m.logger.Error("operation failed", "err", err)
	m.setStatus(err.Error(), true)
}

func (m Model) toggleSelected() {
	p, okP := m.b.selected()
	t, okT := m.b.todos.Selected()
	if !okP || !okT {
		m.setStatus("No todo selected", true)
		return
	}
	if m.run(func() error { return m.ctrl.ToggleComplete(app.ByID(p.ID), app.ByID(t.ID)) }) != nil {
		return
	}
	if t.Completed {
		m.setStatus("Todo reopened", false)
	} else {
		m.setStatus("Todo completed", false)
	}
}

func (m Model) deleteSelected() {
	p, ok := m.b.selected()
	if !ok {
		m.setStatus("No project to delete", true)
		return
	}
	if m.b.focus == focusProjects {
		m.run(func() error { return m.ctrl.DeleteProject(app.ByID(p.ID)) })
		return
	}

	t, ok := m.b.todos.Selected()
	if !ok {
		m.setStatus("No todo to delete", true)
		return
	}
	if m.run(func() error { return m.ctrl.DeleteTodo(app.ByID(p.ID), app.ByID(t.ID)) }) != nil {
		return
	}
	m.setStatus(fmt.Sprintf("Deleted todo %q", t.Title), false)
}

func (m Model) moveProject(key string) {
	switch key {
	case "up", "k", "pgup":
		m.b.cursor--
	default:
		m.b.cursor++
	}
	m.b.clampCursor()
	m.b.syncTodos()
}

func (m Model) toggleFocus() {
	if m.b.focus == focusProjects && len(m.b.projects) > 0 {
		m.b.focus = focusTodos
		return
	}
	m.b.focus = focusProjects
}

func (m *Model) openInput() tea.Cmd {
	m.input.SetValue("")
	m.input.Placeholder = "Project name"
	m.input.Focus()
	return textinput.Blink
}

func (m Model) setStatus(status string, isErr bool) {
	if m.b.alerted && !isErr {
		// keep an alert raised during this key press visible
		return
	}
	m.b.status = status
	m.b.isErr = isErr
}

func (m Model) todoCount() int {
	n := 0
	for _, p := range m.b.projects {
		n += len(p.Todos)
	}
	return n
}
