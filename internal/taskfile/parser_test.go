package taskfile

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tablerohq/tablero/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

const fullTaskFile = `---
id: task-42
title: "Ship the exporter"
status: In Progress
assignee: [alice, bob]
created_date: 2026-08-01
updated_date: 2026-08-10
labels: [export, markdown]
dependencies: [task-40]
priority: high
ordinal: 7
parent_task_id: task-40
---

## Description

Render the board to a static markdown table.

## Acceptance Criteria

<!-- AC:BEGIN -->
- [x] #1 Columns follow configured status order
- [ ] #2 Empty columns render a sentinel
not an item line, silently skipped
- [?] #3 malformed checkbox, skipped
- [ ] missing index marker, skipped
<!-- AC:END -->

- [ ] #9 outside the fence, skipped

## Implementation Plan

1. Sort each column.
2. Nest children under same-status parents.

## Implementation Notes

Pipes in titles are escaped.
`

// ============================================================================
// TEST CASES - ParseTask
// ============================================================================

func TestParseTaskFull(t *testing.T) {
	task, err := ParseTask(fullTaskFile, "tablero/tasks/task-42 - Ship the exporter.md")
	if err != nil {
		t.Fatalf("ParseTask failed: %v", err)
	}

	if task.ID != "task-42" {
		t.Errorf("ID = %q", task.ID)
	}
	if task.Title != "Ship the exporter" {
		t.Errorf("Title = %q", task.Title)
	}
	if task.Status != "In Progress" {
		t.Errorf("Status = %q", task.Status)
	}
	if task.CreatedDate != "2026-08-01" || task.UpdatedDate != "2026-08-10" {
		t.Errorf("dates = %q / %q", task.CreatedDate, task.UpdatedDate)
	}
	if task.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q", task.Priority)
	}
	if task.Ordinal == nil || *task.Ordinal != 7 {
		t.Errorf("Ordinal = %v, want 7", task.Ordinal)
	}
	if !reflect.DeepEqual(task.Assignee, []string{"alice", "bob"}) {
		t.Errorf("Assignee = %v", task.Assignee)
	}
	if !reflect.DeepEqual(task.Dependencies, []string{"task-40"}) {
		t.Errorf("Dependencies = %v", task.Dependencies)
	}
	if task.ParentTaskID != "task-40" {
		t.Errorf("ParentTaskID = %q", task.ParentTaskID)
	}
	if task.Source != models.SourceLocal {
		t.Errorf("Source = %q, want local", task.Source)
	}

	if want := "Render the board to a static markdown table."; task.Description != want {
		t.Errorf("Description = %q, want %q", task.Description, want)
	}
	if !strings.HasPrefix(task.ImplementationPlan, "1. Sort each column.") {
		t.Errorf("ImplementationPlan = %q", task.ImplementationPlan)
	}
	if task.ImplementationNotes != "Pipes in titles are escaped." {
		t.Errorf("ImplementationNotes = %q", task.ImplementationNotes)
	}
}

func TestParseTaskAcceptanceCriteria(t *testing.T) {
	task, err := ParseTask(fullTaskFile, "tablero/tasks/task-42.md")
	if err != nil {
		t.Fatalf("ParseTask failed: %v", err)
	}

	want := []models.AcceptanceCriterion{
		{Index: 1, Text: "Columns follow configured status order", Checked: true},
		{Index: 2, Text: "Empty columns render a sentinel", Checked: false},
	}
	if !reflect.DeepEqual(task.AcceptanceCriteria, want) {
		t.Errorf("AcceptanceCriteria = %+v, want %+v", task.AcceptanceCriteria, want)
	}
}

func TestParseTaskRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "no frontmatter at all",
			text: "## Description\n\njust a body\n",
		},
		{
			name: "unclosed frontmatter",
			text: "---\nid: task-1\ntitle: T\nstatus: Done\ncreated_date: 2026-01-01\n",
		},
		{
			name: "missing created_date",
			text: "---\nid: task-1\ntitle: T\nstatus: Done\n---\n",
		},
		{
			name: "missing id",
			text: "---\ntitle: T\nstatus: Done\ncreated_date: 2026-01-01\n---\n",
		},
		{
			name: "non-string title",
			text: "---\nid: task-1\ntitle: 42\nstatus: Done\ncreated_date: 2026-01-01\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTask(tt.text, "tablero/tasks/task-1.md")
			if err == nil {
				t.Fatal("ParseTask should fail")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if parseErr.Path != "tablero/tasks/task-1.md" {
				t.Errorf("ParseError.Path = %q", parseErr.Path)
			}
		})
	}
}

func TestParseTaskOptionalDefaults(t *testing.T) {
	task, err := ParseTask("---\nid: task-2\ntitle: Bare\nstatus: Done\ncreated_date: 2026-01-02\n---\n", "tablero/completed/task-2.md")
	if err != nil {
		t.Fatalf("ParseTask failed: %v", err)
	}

	if task.Assignee == nil || len(task.Assignee) != 0 {
		t.Errorf("Assignee = %#v, want empty non-nil slice", task.Assignee)
	}
	if task.Labels == nil || task.Dependencies == nil {
		t.Error("optional arrays should default to empty, not nil")
	}
	if task.Priority != models.PriorityNone {
		t.Errorf("Priority = %q, want absent", task.Priority)
	}
	if task.Ordinal != nil {
		t.Errorf("Ordinal = %v, want nil", task.Ordinal)
	}
	if task.Source != models.SourceCompleted {
		t.Errorf("Source = %q, want completed for completed/ path", task.Source)
	}
}

func TestParseTaskUnknownPriorityReadsAsAbsent(t *testing.T) {
	task, err := ParseTask("---\nid: task-3\ntitle: T\nstatus: Done\ncreated_date: 2026-01-02\npriority: urgent\n---\n", "tablero/tasks/task-3.md")
	if err != nil {
		t.Fatalf("ParseTask failed: %v", err)
	}
	if task.Priority != models.PriorityNone {
		t.Errorf("Priority = %q, want absent for unknown value", task.Priority)
	}
}

// ============================================================================
// TEST CASES - ParseMilestone
// ============================================================================

func TestParseMilestone(t *testing.T) {
	text := `---
id: milestone-1
title: "v1.0"
tasks: [task-1, task-2, task-3]
---

First public release.
`
	ms, err := ParseMilestone(text, "tablero/milestones/milestone-1 - v1.0.md")
	if err != nil {
		t.Fatalf("ParseMilestone failed: %v", err)
	}

	if ms.ID != "milestone-1" || ms.Title != "v1.0" {
		t.Errorf("ID/Title = %q/%q", ms.ID, ms.Title)
	}
	if !reflect.DeepEqual(ms.TaskIDs, []string{"task-1", "task-2", "task-3"}) {
		t.Errorf("TaskIDs = %v", ms.TaskIDs)
	}
	if ms.Description != "First public release." {
		t.Errorf("Description = %q", ms.Description)
	}
}

func TestParseMilestoneMissingTitle(t *testing.T) {
	_, err := ParseMilestone("---\nid: milestone-2\n---\n", "tablero/milestones/milestone-2.md")
	if err == nil {
		t.Fatal("ParseMilestone should fail without title")
	}
}

// ============================================================================
// TEST CASES - SerializeTask
// ============================================================================

func TestSerializeTaskRoundTrip(t *testing.T) {
	original, err := ParseTask(fullTaskFile, "tablero/tasks/task-42.md")
	if err != nil {
		t.Fatalf("ParseTask failed: %v", err)
	}

	moved := original.WithStatus("Done", "2026-08-23")
	reparsed, err := ParseTask(SerializeTask(moved), "tablero/tasks/task-42.md")
	if err != nil {
		t.Fatalf("re-parse of serialized task failed: %v", err)
	}

	if reparsed.Status != "Done" || reparsed.UpdatedDate != "2026-08-23" {
		t.Errorf("Status/UpdatedDate = %q/%q", reparsed.Status, reparsed.UpdatedDate)
	}
	if reparsed.ID != original.ID || reparsed.Title != original.Title {
		t.Errorf("identity fields changed: %q/%q", reparsed.ID, reparsed.Title)
	}
	if !reflect.DeepEqual(reparsed.AcceptanceCriteria, original.AcceptanceCriteria) {
		t.Errorf("acceptance criteria changed across round trip")
	}
	if reparsed.Ordinal == nil || *reparsed.Ordinal != *original.Ordinal {
		t.Errorf("Ordinal = %v, want %v", reparsed.Ordinal, original.Ordinal)
	}
	if reparsed.RawBody != original.RawBody {
		t.Errorf("RawBody changed across round trip")
	}
}
