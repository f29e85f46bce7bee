package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"todos/internal/models"
	"todos/internal/util"
)

// lineView implements app.View for one-shot commands: it prints to out and
// reads answers line by line from in
type lineView struct {
	in        *bufio.Reader
	out       io.Writer
	errOut    io.Writer
	assumeYes bool
	alerted   bool
	preset    models.TodoInput
	now       func() time.Time
}

func newLineView(in io.Reader, out, errOut io.Writer) *lineView {
	return &lineView{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		now:    time.Now,
	}
}

var priorityColors = map[models.Priority]*color.Color{
	models.PriorityLow:    color.New(color.FgGreen),
	models.PriorityMedium: color.New(color.FgYellow),
	models.PriorityHigh:   color.New(color.FgRed),
}

// Render prints every project and its todos
func (v *lineView) Render(projects []models.Project) {
	renderProjects(v.out, projects, v.now())
}

func renderProjects(out io.Writer, projects []models.Project, now time.Time) {
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects. Create one with 'todos project create'")
		return
	}

	header := color.New(color.Bold, color.FgCyan)
	dim := color.New(color.Faint)

	for pi, p := range projects {
		if pi > 0 {
			fmt.Fprintln(out)
		}
		header.Fprintf(out, "%d. %s", pi, p.Name)
		dim.Fprintf(out, "  (%d/%d done) [%s]\n", p.CountCompleted(), len(p.Todos), util.ShortID(p.ID))

		if len(p.Todos) == 0 {
			dim.Fprintln(out, "   no todos")
			continue
		}
		for ti, t := range p.Todos {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			fmt.Fprintf(out, "   %d. %s %s  ", ti, box, t.Title)

			pc, ok := priorityColors[t.Priority]
			if !ok {
				pc = color.New(color.Reset)
			}
			pc.Fprintf(out, "%s", t.Priority)

			due := "due " + t.DueDate
			if t.Overdue(now) {
				color.New(color.FgRed).Fprintf(out, "  %s (overdue)", due)
			} else {
				fmt.Fprintf(out, "  %s", due)
			}
			dim.Fprintf(out, "  [%s]\n", util.ShortID(t.ID))

			desc := t.Description
			if desc == "" {
				desc = "No description"
			}
			dim.Fprintf(out, "         %s\n", desc)
		}
	}
}

// PromptText prints message and reads one line; EOF cancels
func (v *lineView) PromptText(message string) (string, bool) {
	fmt.Fprintf(v.out, "%s ", message)
	line, ok := v.readLine()
	if !ok {
		fmt.Fprintln(v.out)
	}
	return line, ok
}

// PromptTodo asks for every field the command line did not supply
func (v *lineView) PromptTodo(projectName string, submit func(models.TodoInput)) {
	in := v.preset
	ask := func(label string, value *string, fallback string) bool {
		if *value != "" {
			return true
		}
		if fallback != "" {
			fmt.Fprintf(v.out, "%s [%s]: ", label, fallback)
		} else {
			fmt.Fprintf(v.out, "%s: ", label)
		}
		line, ok := v.readLine()
		if !ok {
			return false
		}
		if line == "" {
			line = fallback
		}
		*value = line
		return true
	}

	interactive := v.preset.Title == "" || v.preset.DueDate == ""
	if interactive {
		fmt.Fprintf(v.out, "New todo in %s\n", projectName)
	}
	if !ask("Title", &in.Title, "") {
		v.cancelled("Add todo")
		return
	}
	if !ask("Due date (YYYY-MM-DD)", &in.DueDate, "") {
		v.cancelled("Add todo")
		return
	}
	if interactive {
		if !ask("Description (optional)", &in.Description, "") {
			v.cancelled("Add todo")
			return
		}
		if !ask("Priority (low/medium/high)", &in.Priority, string(models.DefaultPriority)) {
			v.cancelled("Add todo")
			return
		}
	}
	submit(in)
}

// Confirm asks a y/n question unless --yes was given
func (v *lineView) Confirm(message string) bool {
	if v.assumeYes {
		return true
	}
	fmt.Fprintf(v.out, "%s (y/n): ", message)
	line, _ := v.readLine()
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	}
	fmt.Fprintln(v.out, "Cancelled.")
	return false
}

// Alert prints message in red on the error stream
func (v *lineView) Alert(message string) {
	v.alerted = true
	color.New(color.FgRed).Fprintln(v.errOut, message)
}

func (v *lineView) cancelled(what string) {
	fmt.Fprintf(v.out, "\n%s cancelled.\n", what)
}

// readLine returns the next trimmed line; ok is false at EOF with no input
func (v *lineView) readLine() (string, bool) {
	line, err := v.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}
