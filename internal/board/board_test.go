package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tablerohq/tablero/internal/config"
	"github.com/tablerohq/tablero/internal/models"
	"github.com/tablerohq/tablero/internal/store"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

const testConfig = `project_name: Demo
statuses: ["To Do", "In Progress", "Done"]
default_status: To Do
`

func taskFile(id, title, status string) string {
	return fmt.Sprintf("---\nid: %s\ntitle: %s\nstatus: %s\ncreated_date: 2026-01-01\n---\n\n## Description\n\n%s body\n", id, title, status, title)
}

func taskPath(id, title string) string {
	return fmt.Sprintf("%s/%s - %s.md", models.TasksDir, id, title)
}

func demoProject() map[string]string {
	return map[string]string{
		models.ConfigPath:            testConfig,
		taskPath("task-1", "First"):  taskFile("task-1", "First", "To Do"),
		taskPath("task-2", "Second"): taskFile("task-2", "Second", "In Progress"),
		taskPath("task-3", "Third"):  taskFile("task-3", "Third", "Done"),
		taskPath("task-4", "Fourth"): taskFile("task-4", "Fourth", "To Do"),
	}
}

func openSession(t *testing.T, files map[string]string, opts Options) *Session {
	t.Helper()
	s, err := Open(context.Background(), store.NewMemStore(files), opts)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

// ============================================================================
// TEST CASES
// ============================================================================

func TestOpenNotAProject(t *testing.T) {
	st := store.NewMemStore(map[string]string{"README.md": "hello"})
	_, err := Open(context.Background(), st, Options{})
	if !errors.Is(err, ErrNotAProject) {
		t.Fatalf("Open = %v, want ErrNotAProject", err)
	}
}

func TestOpenStrictRejectsInvalidConfig(t *testing.T) {
	files := map[string]string{
		models.ConfigPath: "statuses: [Open, Closed]\n", // no project_name
	}

	// Lenient open tolerates it.
	if _, err := Open(context.Background(), store.NewMemStore(files), Options{}); err != nil {
		t.Fatalf("lenient Open failed: %v", err)
	}

	_, err := Open(context.Background(), store.NewMemStore(files), Options{Strict: true})
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("strict Open = %v, want *config.ConfigError", err)
	}
	if cfgErr.Field != "project_name" {
		t.Errorf("ConfigError.Field = %q, want project_name", cfgErr.Field)
	}
}

func TestSessionReadsBoard(t *testing.T) {
	s := openSession(t, demoProject(), Options{})

	if got := s.Config().ProjectName; got != "Demo" {
		t.Errorf("ProjectName = %q, want Demo", got)
	}

	res, err := s.LoadMore(context.Background(), "To Do")
	if err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	if res.Total != 2 || len(res.Items) != 2 {
		t.Errorf("To Do page = %d items of %d, want 2 of 2", len(res.Items), res.Total)
	}

	tasks, err := s.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	if len(tasks) != 4 {
		t.Errorf("Tasks = %d, want 4", len(tasks))
	}
}

func TestSessionExport(t *testing.T) {
	s := openSession(t, demoProject(), Options{Lazy: true})

	board, err := s.Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.HasPrefix(board, "# Demo\n") {
		t.Errorf("export missing project heading:\n%s", board)
	}
	for _, id := range []string{"task-1", "task-2", "task-3", "task-4"} {
		if !strings.Contains(board, "**"+id+"**") {
			t.Errorf("export missing %s:\n%s", id, board)
		}
	}
}

// Reload returns a new Session reflecting store changes; the old one
// keeps serving its original snapshot.
func TestReloadIsAFreshSnapshot(t *testing.T) {
	files := demoProject()
	st := store.NewMemStore(files)

	old, err := Open(context.Background(), st, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	path := taskPath("task-5", "Fifth")
	if err := st.Write(context.Background(), path, taskFile("task-5", "Fifth", "To Do")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	fresh, err := old.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if fresh == old {
		t.Fatal("Reload returned the same session")
	}

	oldTasks, _ := old.Tasks(context.Background())
	freshTasks, _ := fresh.Tasks(context.Background())
	if len(oldTasks) != 4 {
		t.Errorf("old session sees %d tasks, want the original 4", len(oldTasks))
	}
	if len(freshTasks) != 5 {
		t.Errorf("fresh session sees %d tasks, want 5", len(freshTasks))
	}
}

func TestSessionMoveTaskPersists(t *testing.T) {
	st := store.NewMemStore(demoProject())
	s, err := Open(context.Background(), st, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := s.MoveTask("task-1", "Done"); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}
	s.Flush()

	if dirty := s.DirtyTasks(); len(dirty) != 0 {
		t.Errorf("DirtyTasks = %v, want none", dirty)
	}
	content, err := st.Fetch(context.Background(), taskPath("task-1", "First"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(content, "status: Done") {
		t.Errorf("persisted file missing new status:\n%s", content)
	}
}

func TestInitProject(t *testing.T) {
	st := store.NewMemStore(nil)

	if err := InitProject(context.Background(), st, "Fresh"); err != nil {
		t.Fatalf("InitProject failed: %v", err)
	}

	s, err := Open(context.Background(), st, Options{Strict: true})
	if err != nil {
		t.Fatalf("Open after init failed: %v", err)
	}
	if got := s.Config().ProjectName; got != "Fresh" {
		t.Errorf("ProjectName = %q, want Fresh", got)
	}
	if got := s.Statuses(); len(got) == 0 {
		t.Error("initialized project has no statuses")
	}

	if err := InitProject(context.Background(), st, "Again"); !errors.Is(err, ErrAlreadyProject) {
		t.Errorf("second InitProject = %v, want ErrAlreadyProject", err)
	}
}
