package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todos/internal/models"
	"todos/internal/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "212"}).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "252"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "212"}).
				Bold(true)

	focusedBorderColor = lipgloss.AdaptiveColor{Light: "25", Dark: "212"}
	dimBorderColor     = lipgloss.AdaptiveColor{Light: "243", Dark: "241"}

	// priorityColors mirror the low/medium/high accent colours of todo cards
	priorityColors = map[models.Priority]lipgloss.Color{
		models.PriorityLow:    lipgloss.Color("10"),
		models.PriorityMedium: lipgloss.Color("11"),
		models.PriorityHigh:   lipgloss.Color("9"),
	}
)

// View renders the UI
func (m Model) View() string {
	if m.b.width == 0 {
		return "Initializing..."
	}

	left := m.pane(m.projectPaneWidth(), "Projects", m.b.focus == focusProjects, m.projectLines())
	right := m.pane(m.todoPaneWidth(), "", m.b.focus == focusTodos, m.b.todos.View())
	panels := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	help := helpStyle.Padding(0, 1).Render(
		"j/k move · tab switch · n new project · a add todo · space toggle · d delete · r reload · q quit")

	var status string
	if m.b.isErr {
		status = errorStyle.Render(m.b.status)
	} else {
		status = statusStyle.Render(m.b.status)
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("todos"),
		panels,
		help,
		status,
	)

	if m.b.dialog == dialogNone {
		return base
	}
	return lipgloss.Place(m.b.width, m.b.height, lipgloss.Center, lipgloss.Center, m.dialogView())
}

func (m Model) dialogView() string {
	var title, body string
	switch m.b.dialog {
	case dialogText:
		title = m.b.message
		body = m.input.View() + "\n\n" + helpStyle.Render("enter confirm · esc cancel")
	case dialogConfirm:
		title = "Confirm"
		body = m.b.message + "\n\n" + helpStyle.Render("y yes · n no")
	case dialogForm:
		title = m.b.message
		body = m.b.form.view()
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusedBorderColor).
		Padding(1, 2).
		Width(m.dialogWidth()).
		Render(focusedLabelStyle.Render(title) + "\n\n" + body)
}

func (m Model) pane(width int, title string, focused bool, content string) string {
	border := dimBorderColor
	if focused {
		border = focusedBorderColor
	}
	if title != "" {
		content = focusedLabelStyle.Render(title) + "\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width - 2).
		Height(m.paneHeight() - 2).
		Render(content)
}

func (m Model) projectLines() string {
	if len(m.b.projects) == 0 {
		return normalStyle.Render("No projects yet. Press n to create one.")
	}

	inner := m.projectPaneWidth() - 6
	lines := make([]string, 0, len(m.b.projects))
	for i, p := range m.b.projects {
		text := util.Truncate(fmt.Sprintf("%s (%d)", p.Name, len(p.Todos)), inner)
		if i == m.b.cursor {
			lines = append(lines, selectedStyle.Render("▶ "+text))
		} else {
			lines = append(lines, normalStyle.Render("  "+text))
		}
		if high := countHigh(p.Todos); high > 0 {
			lines[len(lines)-1] += " " + lipgloss.NewStyle().Foreground(priorityColors[models.PriorityHigh]).Render("!")
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) projectPaneWidth() int {
	w := m.b.width / 3
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) todoPaneWidth() int {
	w := m.b.width - m.projectPaneWidth()
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) paneHeight() int {
	// title, help and status lines
	h := m.b.height - 3
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) dialogWidth() int {
	w := m.b.width / 2
	if w < 48 {
		w = 48
	}
	if w > m.b.width-4 {
		w = m.b.width - 4
	}
	return w
}

// countHigh counts open high-priority todos
func countHigh(todos []models.Todo) int {
	n := 0
	for _, t := range todos {
		if !t.Completed && t.Priority == models.PriorityHigh {
			n++
		}
	}
	return n
}
