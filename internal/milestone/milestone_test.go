package milestone

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/tablerohq/tablero/internal/index"
	"github.com/tablerohq/tablero/internal/models"
	"github.com/tablerohq/tablero/internal/store"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

const testConfig = "project_name: Demo\nstatuses: [\"To Do\", Done]\n"

func taskFile(id string) string {
	return fmt.Sprintf("---\nid: %s\ntitle: Task %s\nstatus: To Do\ncreated_date: 2026-01-01\n---\n", id, id)
}

func milestoneFile(id, title string, taskIDs string) string {
	return fmt.Sprintf("---\nid: %s\ntitle: %s\ntasks: [%s]\n---\n\n%s description\n", id, title, taskIDs, title)
}

func setup(t *testing.T) (*Index, *store.MemStore) {
	t.Helper()
	files := map[string]string{
		models.ConfigPath: testConfig,
		models.TasksDir + "/task-1 - A.md": taskFile("task-1"),
		models.TasksDir + "/task-2 - B.md": taskFile("task-2"),
		models.TasksDir + "/task-3 - C.md": taskFile("task-3"),
		models.MilestonesDir + "/milestone-1 - v1.md": milestoneFile("milestone-1", "v1", "task-2, task-9, task-1"),
		models.MilestonesDir + "/milestone-2 - v2.md": milestoneFile("milestone-2", "v2", ""),
	}
	st := store.NewMemStore(files)

	taskIdx, err := index.Build(context.Background(), st.List(), st, index.Options{Lazy: true}, nil)
	if err != nil {
		t.Fatalf("index.Build failed: %v", err)
	}
	return New(st, taskIdx, nil), st
}

// ============================================================================
// TEST CASES
// ============================================================================

// List parses milestone files only; no task file is ever fetched.
func TestListIsCheap(t *testing.T) {
	mi, st := setup(t)

	var taskFetches atomic.Int32
	st.FetchHook = func(path string) {
		if models.IsTaskPath(path) {
			taskFetches.Add(1)
		}
	}

	milestones, err := mi.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(milestones) != 2 {
		t.Fatalf("List = %d milestones, want 2", len(milestones))
	}
	if milestones[0].ID != "milestone-1" || milestones[0].Title != "v1" {
		t.Errorf("milestones[0] = %q/%q", milestones[0].ID, milestones[0].Title)
	}
	if got := taskFetches.Load(); got != 0 {
		t.Errorf("List fetched %d task files, want 0", got)
	}

	// Second List reuses the parsed set.
	st.FetchHook = func(path string) { taskFetches.Add(1) }
	if _, err := mi.List(context.Background()); err != nil {
		t.Fatalf("second List failed: %v", err)
	}
	if got := taskFetches.Load(); got != 0 {
		t.Errorf("second List fetched %d files, want 0 (cached)", got)
	}
}

// Expand resolves members in id order and silently drops ids whose
// task file is gone (task-9 here).
func TestExpandDropsMissingMembers(t *testing.T) {
	mi, _ := setup(t)

	tasks, err := mi.Expand(context.Background(), "milestone-1")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expand = %d tasks, want 2 (missing member dropped)", len(tasks))
	}
	if tasks[0].ID != "task-2" || tasks[1].ID != "task-1" {
		t.Errorf("member order = %q, %q, want membership order", tasks[0].ID, tasks[1].ID)
	}
	if !mi.IsExpanded("milestone-1") {
		t.Error("milestone should be expanded after Expand")
	}
}

func TestExpandCachesMembers(t *testing.T) {
	mi, st := setup(t)

	if _, err := mi.Expand(context.Background(), "milestone-1"); err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	var fetches atomic.Int32
	st.FetchHook = func(string) { fetches.Add(1) }

	again, err := mi.Expand(context.Background(), "milestone-1")
	if err != nil {
		t.Fatalf("second Expand failed: %v", err)
	}
	if len(again) != 2 {
		t.Errorf("cached Expand = %d tasks, want 2", len(again))
	}
	if got := fetches.Load(); got != 0 {
		t.Errorf("cached Expand fetched %d files, want 0", got)
	}
}

func TestCollapseIsPureStateFlip(t *testing.T) {
	mi, st := setup(t)

	if _, err := mi.Expand(context.Background(), "milestone-2"); err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	var fetches atomic.Int32
	st.FetchHook = func(string) { fetches.Add(1) }

	mi.Collapse("milestone-2")
	if mi.IsExpanded("milestone-2") {
		t.Error("milestone should be collapsed")
	}
	if got := fetches.Load(); got != 0 {
		t.Errorf("Collapse fetched %d files, want 0 (no I/O)", got)
	}

	// Re-expanding uses the warm cache.
	if _, err := mi.Expand(context.Background(), "milestone-2"); err != nil {
		t.Fatalf("re-Expand failed: %v", err)
	}
	if !mi.IsExpanded("milestone-2") {
		t.Error("milestone should be expanded again")
	}
	if got := fetches.Load(); got != 0 {
		t.Errorf("re-Expand fetched %d files, want 0", got)
	}
}

func TestExpandUnknownMilestone(t *testing.T) {
	mi, _ := setup(t)

	tasks, err := mi.Expand(context.Background(), "milestone-404")
	if err != nil {
		t.Fatalf("Expand of unknown milestone failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("unknown milestone expanded to %d tasks, want 0", len(tasks))
	}
}
