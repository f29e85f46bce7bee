package ui

import (
	"fmt"
	"time"

	"todos/internal/models"
	"todos/internal/ui/components"
)

// dialogKind is the overlay currently shown
type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogText
	dialogConfirm
	dialogForm
)

// board is the state shared between the bubbletea model and the View the
// controller draws into
type board struct {
	projects []models.Project
	cursor   int
	status   string
	isErr    bool
	alerted  bool
	now      func() time.Time

	dialog  dialogKind
	message string
	form    todoForm

	// retry re-runs the operation that opened a text or confirm dialog;
	// answered/answer carry the user's reply into that second run
	retry    func() error
	answered bool
	answer   string
	yes      bool

	// current is the operation being run, recorded so a dialog can retry it
	current func() error

	todos  components.TodoListModel
	focus  focusArea
	width  int
	height int
}

// BoardView implements app.View on top of the board state. A terminal
// program cannot block inside an event handler, so prompts return "no" at
// once and open a dialog; answering it re-runs the same operation, which
// then sees the answer.
type BoardView struct {
	b *board
}

// NewBoardView creates an empty board view
func NewBoardView() *BoardView {
	return &BoardView{b: &board{
		now:    time.Now,
		todos:  components.NewTodoListModel(0, 0),
		status: "Ready",
	}}
}

// Render replaces the board contents
func (v *BoardView) Render(projects []models.Project) {
	v.b.projects = projects
	v.b.clampCursor()
	v.b.syncTodos()
}

// PromptText returns a recorded reply, or opens the text dialog
func (v *BoardView) PromptText(message string) (string, bool) {
	if v.b.answered && v.b.message == message {
		answer := v.b.answer
		v.b.clearAnswer()
		return answer, true
	}
	v.b.open(dialogText, message)
	return "", false
}

// PromptTodo opens the add-todo form
func (v *BoardView) PromptTodo(projectName string, submit func(models.TodoInput)) {
	v.b.form = newTodoForm(projectName, submit)
	v.b.dialog = dialogForm
	v.b.message = "Add todo to " + projectName
}

// Confirm returns a recorded reply, or opens the confirm dialog
func (v *BoardView) Confirm(message string) bool {
	if v.b.answered && v.b.message == message {
		yes := v.b.yes
		v.b.clearAnswer()
		return yes
	}
	v.b.open(dialogConfirm, message)
	return false
}

// Alert shows message on the status line
func (v *BoardView) Alert(message string) {
	v.b.status = message
	v.b.isErr = true
	v.b.alerted = true
}

func (b *board) open(kind dialogKind, message string) {
	b.dialog = kind
	b.message = message
	b.retry = b.current
}

func (b *board) clearAnswer() {
	b.answered = false
	b.answer = ""
	b.yes = false
	b.dialog = dialogNone
	b.message = ""
	b.retry = nil
}

// reply records the user's answer and re-runs the pending operation
func (b *board) reply(answer string, yes bool) error {
	retry := b.retry
	if retry == nil {
		b.clearAnswer()
		return nil
	}
	b.answered = true
	b.answer = answer
	b.yes = yes
	b.current = retry
	err := retry()
	b.clearAnswer()
	return err
}

func (b *board) clampCursor() {
	if b.cursor >= len(b.projects) {
		b.cursor = len(b.projects) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (b *board) selected() (models.Project, bool) {
	if b.cursor < 0 || b.cursor >= len(b.projects) {
		return models.Project{}, false
	}
	return b.projects[b.cursor], true
}

// syncTodos points the todo list at the selected project
func (b *board) syncTodos() {
	p, ok := b.selected()
	if !ok {
		b.todos.SetTodos("Todos", nil, b.now())
		return
	}
	title := fmt.Sprintf("Todos: %s (%d/%d done)", p.Name, p.CountCompleted(), len(p.Todos))
	b.todos.SetTodos(title, p.Todos, b.now())
}
