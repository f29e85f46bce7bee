package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"todos/internal/app"
	"todos/internal/config"
	"todos/internal/kv"
	"todos/internal/models"
	"todos/internal/storage"
)

type result struct {
	out    string
	errOut string
	err    error
}

// run executes the command tree against a file store in dir
func run(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	color.NoColor = true
	globalConfig = config.Default(dir)
	configPath = filepath.Join(dir, config.FileName)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)

	err := rootCmd.Execute()
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

// resetFlags undoes flag values left over from a previous run
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func mustRun(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	r := run(t, dir, stdin, args...)
	if r.err != nil {
		t.Fatalf("todos %s: %v\nstderr: %s", strings.Join(args, " "), r.err, r.errOut)
	}
	return r
}

func storedProjects(t *testing.T, dir string) []models.Project {
	t.Helper()
	fs, err := kv.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	projects, err := storage.New(fs, "", nil).LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}
	return projects
}

func TestListSeedsDefaultProject(t *testing.T) {
	dir := t.TempDir()
	r := mustRun(t, dir, "", "list")

	for _, want := range []string{"0. Default Project", "(0/0 done)", "no todos"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("output missing %q:\n%s", want, r.out)
		}
	}
	if got := storedProjects(t, dir); len(got) != 1 || got[0].Name != storage.DefaultProjectName {
		t.Errorf("stored projects: %+v", got)
	}
}

func TestProjectCreate(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{"from argument", "", []string{"project", "create", "Work"}, []string{"Default Project", "Work"}},
		{"from prompt", "Errands\n", []string{"project", "create"}, []string{"Default Project", "Errands"}},
		{"blank prompt is ignored", "   \n", []string{"project", "create"}, []string{"Default Project"}},
		{"cancelled prompt", "", []string{"project", "create"}, []string{"Default Project"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			mustRun(t, dir, tt.stdin, tt.args...)

			got := storedProjects(t, dir)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d projects, want %d", len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("project %d: got %q, want %q", i, got[i].Name, name)
				}
			}
		})
	}
}

func TestProjectList(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "", "project", "create", "Work")
	r := mustRun(t, dir, "", "project", "list")

	for _, want := range []string{"0. Default Project", "1. Work", "0 todos, 0 done"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("output missing %q:\n%s", want, r.out)
		}
	}
}

func TestTodoLifecycle(t *testing.T) {
	dir := t.TempDir()
	r := mustRun(t, dir, "", "todo", "add", "0", "--title", "Buy milk", "--due", "2025-01-31", "--priority", "high")
	if !strings.Contains(r.out, "[ ] Buy milk") || !strings.Contains(r.out, "high") {
		t.Errorf("add output:\n%s", r.out)
	}

	todos := storedProjects(t, dir)[0].Todos
	if len(todos) != 1 {
		t.Fatalf("got %d todos, want 1", len(todos))
	}
	want := models.Todo{ID: todos[0].ID, Title: "Buy milk", DueDate: "2025-01-31", Priority: models.PriorityHigh}
	if todos[0] != want {
		t.Errorf("stored todo: got %+v, want %+v", todos[0], want)
	}

	r = mustRun(t, dir, "", "todo", "toggle", "0", "0")
	if !strings.Contains(r.out, "[x] Buy milk") {
		t.Errorf("toggle output:\n%s", r.out)
	}
	if !storedProjects(t, dir)[0].Todos[0].Completed {
		t.Error("todo not completed after toggle")
	}

	mustRun(t, dir, "", "todo", "delete", "0", "0")
	if n := len(storedProjects(t, dir)[0].Todos); n != 0 {
		t.Errorf("got %d todos after delete, want 0", n)
	}
}

func TestTodoAddByIDPrefix(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "", "project", "create", "Work")
	work := storedProjects(t, dir)[1]

	mustRun(t, dir, "", "todo", "add", work.ID[:8], "--title", "Report", "--due", "2025-02-01")

	got := storedProjects(t, dir)
	if len(got[0].Todos) != 0 || len(got[1].Todos) != 1 {
		t.Fatalf("todo landed in wrong project: %+v", got)
	}
	if got[1].Todos[0].Priority != models.PriorityLow {
		t.Errorf("priority: got %q, want low", got[1].Todos[0].Priority)
	}

	// Toggle by the todo's id as well
	mustRun(t, dir, "", "todo", "toggle", work.ID, got[1].Todos[0].ID)
	if !storedProjects(t, dir)[1].Todos[0].Completed {
		t.Error("todo not completed after toggle by id")
	}
}

func TestTodoAddPrompts(t *testing.T) {
	dir := t.TempDir()
	stdin := "Walk dog\n2025-03-01\naround the park\nmedium\n"
	r := mustRun(t, dir, stdin, "todo", "add", "0")

	for _, want := range []string{"New todo in Default Project", "Title:", "Due date (YYYY-MM-DD):", "Priority (low/medium/high) [low]:"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("output missing %q:\n%s", want, r.out)
		}
	}

	todos := storedProjects(t, dir)[0].Todos
	if len(todos) != 1 {
		t.Fatalf("got %d todos, want 1", len(todos))
	}
	got := todos[0]
	if got.Title != "Walk dog" || got.DueDate != "2025-03-01" || got.Description != "around the park" || got.Priority != models.PriorityMedium {
		t.Errorf("stored todo: %+v", got)
	}
}

func TestTodoAddRejected(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		alert string
	}{
		{
			name:  "empty title",
			stdin: "\n\n\n\n",
			args:  []string{"todo", "add", "0"},
			alert: app.RequiredFieldsMessage,
		},
		{
			name:  "empty due date",
			stdin: "Walk dog\n\n\n\n",
			args:  []string{"todo", "add", "0"},
			alert: app.RequiredFieldsMessage,
		},
		{
			name:  "unknown priority",
			args:  []string{"todo", "add", "0", "--title", "x", "--due", "2025-01-31", "--priority", "urgent"},
			alert: "Priority must be one of low, medium or high",
		},
		{
			name:  "bad due date",
			args:  []string{"todo", "add", "0", "--title", "x", "--due", "31/01/2025"},
			alert: "Due Date must be a date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			r := run(t, dir, tt.stdin, tt.args...)
			if r.err == nil {
				t.Fatal("expected an error")
			}
			if !IsReported(r.err) {
				t.Errorf("error %v should be marked as reported", r.err)
			}
			if !strings.Contains(r.errOut, tt.alert) {
				t.Errorf("stderr missing %q:\n%s", tt.alert, r.errOut)
			}
			if n := len(storedProjects(t, dir)[0].Todos); n != 0 {
				t.Errorf("got %d todos, want 0", n)
			}
		})
	}
}

func TestTodoAddCancelled(t *testing.T) {
	dir := t.TempDir()
	r := mustRun(t, dir, "", "todo", "add", "0")
	if !strings.Contains(r.out, "Add todo cancelled.") {
		t.Errorf("output:\n%s", r.out)
	}
	if n := len(storedProjects(t, dir)[0].Todos); n != 0 {
		t.Errorf("got %d todos, want 0", n)
	}
}

func TestTodoInvalidIndex(t *testing.T) {
	dir := t.TempDir()
	r := run(t, dir, "", "todo", "toggle", "0", "5")
	if !errors.Is(r.err, models.ErrTodoNotFound) {
		t.Fatalf("got %v, want ErrTodoNotFound", r.err)
	}
	if IsReported(r.err) {
		t.Error("lookup errors are not shown through the view")
	}
	if !strings.Contains(r.errOut, "Invalid Todo or Project index.") {
		t.Errorf("stderr:\n%s", r.errOut)
	}
	if !strings.Contains(r.errOut, "todos todo toggle") {
		t.Errorf("diagnostic not prefixed with the command:\n%s", r.errOut)
	}

	r = run(t, dir, "", "todo", "add", "7", "--title", "x", "--due", "2025-01-31")
	if !errors.Is(r.err, models.ErrProjectNotFound) {
		t.Fatalf("got %v, want ErrProjectNotFound", r.err)
	}
}

func TestProjectDelete(t *testing.T) {
	dir := t.TempDir()

	r := mustRun(t, dir, "n\n", "project", "delete", "0")
	if !strings.Contains(r.out, `Are you sure you want to delete the project: "Default Project"? (y/n):`) {
		t.Errorf("missing confirmation prompt:\n%s", r.out)
	}
	if !strings.Contains(r.out, "Cancelled.") {
		t.Errorf("missing cancel message:\n%s", r.out)
	}
	if n := len(storedProjects(t, dir)); n != 1 {
		t.Fatalf("got %d projects after decline, want 1", n)
	}

	mustRun(t, dir, "y\n", "project", "delete", "0")
	if n := len(storedProjects(t, dir)); n != 0 {
		t.Fatalf("got %d projects after confirm, want 0", n)
	}

	// An empty list stays empty; bootstrap only seeds a missing key
	r = mustRun(t, dir, "", "list")
	if !strings.Contains(r.out, "No projects.") {
		t.Errorf("list output:\n%s", r.out)
	}
}

func TestProjectDeleteYes(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "", "project", "create", "Work")

	r := mustRun(t, dir, "", "project", "delete", "1", "--yes")
	if strings.Contains(r.out, "(y/n)") {
		t.Errorf("--yes should skip the prompt:\n%s", r.out)
	}
	got := storedProjects(t, dir)
	if len(got) != 1 || got[0].Name != storage.DefaultProjectName {
		t.Errorf("stored projects: %+v", got)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "", "list")

	r := mustRun(t, dir, "", "check")
	if !strings.Contains(r.out, "projects: ok") {
		t.Errorf("check output:\n%s", r.out)
	}

	fs, err := kv.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Set(storage.DefaultKey, `[{"name": 1, "todos": []}]`); err != nil {
		t.Fatal(err)
	}

	r = run(t, dir, "", "check")
	if r.err == nil || !IsReported(r.err) {
		t.Fatalf("got %v, want a reported error", r.err)
	}
	if !strings.Contains(r.out, "problem(s) in projects") {
		t.Errorf("check output:\n%s", r.out)
	}
}

func TestSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "", "--backend", "sqlite", "project", "create", "Work")

	r := mustRun(t, dir, "", "--backend", "sqlite", "list")
	if !strings.Contains(r.out, "1. Work") {
		t.Errorf("list output:\n%s", r.out)
	}
	if _, err := os.Stat(filepath.Join(dir, "todos.db")); err != nil {
		t.Errorf("database file: %v", err)
	}

	// The file backend has its own, untouched copy
	r = mustRun(t, dir, "", "list")
	if strings.Contains(r.out, "Work") {
		t.Errorf("file backend should not see sqlite data:\n%s", r.out)
	}
}

func TestConfigGetSet(t *testing.T) {
	dir := t.TempDir()

	r := mustRun(t, dir, "", "config", "get", "key")
	if strings.TrimSpace(r.out) != "projects" {
		t.Errorf("config get key: got %q", r.out)
	}

	mustRun(t, dir, "", "config", "set", "backend", "sqlite")
	cfg, err := config.LoadFile(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("saved backend: got %q, want sqlite", cfg.Backend)
	}

	if r := run(t, dir, "", "config", "set", "backend", "paper"); r.err == nil {
		t.Error("expected error for unknown backend")
	}
	if r := run(t, dir, "", "config", "get", "colour"); r.err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	r := mustRun(t, dir, "", "init")
	if !strings.Contains(r.out, "Configuration file created at:") || !strings.Contains(r.out, "Initialized file store") {
		t.Errorf("init output:\n%s", r.out)
	}
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err != nil {
		t.Errorf("config file: %v", err)
	}

	r = mustRun(t, dir, "", "init")
	if !strings.Contains(r.out, "already exists") || !strings.Contains(r.out, "Store already initialized") {
		t.Errorf("second init output:\n%s", r.out)
	}
}
