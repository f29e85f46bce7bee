package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todos/internal/models"
)

// TodoItem represents a todo in the list
type TodoItem struct {
	Todo    models.Todo
	Overdue bool
}

// FilterValue returns the filter value for the todo item
func (i TodoItem) FilterValue() string {
	return i.Todo.Title
}

// Title returns the checkbox and title
func (i TodoItem) Title() string {
	box := "[ ]"
	if i.Todo.Completed {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s", box, i.Todo.Title)
}

// Description returns the due date, priority and description
func (i TodoItem) Description() string {
	parts := []string{"due " + i.Todo.DueDate}
	if i.Overdue {
		parts[0] += " (overdue)"
	}
	parts = append(parts, string(i.Todo.Priority))

	desc := i.Todo.Description
	if desc == "" {
		desc = "No description"
	}
	parts = append(parts, desc)
	return strings.Join(parts, " · ")
}

// TodoListModel shows the todos of the selected project
type TodoListModel struct {
	List list.Model
}

// NewTodoListModel creates a new todo list model
func NewTodoListModel(width, height int) TodoListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "Todos"
	listModel.SetShowStatusBar(false)
	listModel.SetShowHelp(false)
	listModel.SetFilteringEnabled(false)
	listModel.DisableQuitKeybindings()
	listModel.SetStatusBarItemName("todo", "todos")
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return TodoListModel{List: listModel}
}

// SetTodos replaces the list contents, keeping the cursor in range
func (m *TodoListModel) SetTodos(title string, todos []models.Todo, now time.Time) {
	m.List.Title = title

	items := make([]list.Item, len(todos))
	for i, todo := range todos {
		items[i] = TodoItem{Todo: todo, Overdue: todo.Overdue(now)}
	}
	cursor := m.List.Index()
	m.List.SetItems(items)

	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.List.Select(cursor)
}

// Selected returns the highlighted todo and whether there is one
func (m TodoListModel) Selected() (models.Todo, bool) {
	item, ok := m.List.SelectedItem().(TodoItem)
	if !ok {
		return models.Todo{}, false
	}
	return item.Todo, true
}

// SetSize resizes the list
func (m *TodoListModel) SetSize(width, height int) {
	m.List.SetSize(width, height)
}

// Update handles todo list updates
func (m TodoListModel) Update(msg tea.Msg) (TodoListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View renders the todo list
func (m TodoListModel) View() string {
	return m.List.View()
}
