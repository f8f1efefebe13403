// Package export renders a fully-loaded index to one static markdown
// table. The renderer is pure and never fails: any combination of
// tasks and statuses degrades to something printable.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tablerohq/tablero/internal/models"
	"github.com/tablerohq/tablero/internal/sorting"
)

// noTasksCell is the sentinel rendered for a column with no tasks.
const noTasksCell = "No tasks found"

// Render produces the markdown board: one column per status, tasks
// sorted with the canonical ordering, subtasks nested under their
// parent when both share the identical status string.
//
// Column order is the configured statuses first, then any status
// encountered in tasks but absent from the configuration, appended in
// first-seen order.
func Render(tasks []*models.Task, statuses []string, projectName string) string {
	columns, buckets := columnize(tasks, statuses)

	var b strings.Builder
	if projectName != "" {
		fmt.Fprintf(&b, "# %s\n\n", projectName)
	}

	if len(columns) == 0 {
		b.WriteString(noTasksCell + "\n")
		return b.String()
	}

	cells := make([][]string, len(columns))
	height := 1
	for i, key := range columns {
		cells[i] = renderColumn(buckets[key])
		if len(cells[i]) > height {
			height = len(cells[i])
		}
	}

	headers := make([]string, len(columns))
	separators := make([]string, len(columns))
	for i, key := range columns {
		headers[i] = escapeCell(displayFor(key, statuses, buckets))
		separators[i] = "---"
	}
	writeRow(&b, headers)
	writeRow(&b, separators)

	for row := 0; row < height; row++ {
		line := make([]string, len(columns))
		for col := range columns {
			if row < len(cells[col]) {
				line[col] = cells[col][row]
			}
		}
		writeRow(&b, line)
	}

	return b.String()
}

// columnize canonicalizes the column vocabulary and buckets tasks
// case-insensitively. Returned keys are canonical; display casing is
// resolved later (configured casing wins, else first-seen).
func columnize(tasks []*models.Task, statuses []string) ([]string, map[string][]*models.Task) {
	var columns []string
	buckets := make(map[string][]*models.Task)
	seen := make(map[string]bool)

	for _, status := range statuses {
		key := canonical(status)
		if seen[key] {
			continue
		}
		seen[key] = true
		columns = append(columns, key)
		buckets[key] = nil
	}

	for _, task := range tasks {
		key := canonical(task.Status)
		if !seen[key] {
			seen[key] = true
			columns = append(columns, key)
		}
		buckets[key] = append(buckets[key], task)
	}

	return columns, buckets
}

// renderColumn sorts a column, nests same-status children under
// their parents and flattens the result into cell strings.
func renderColumn(tasks []*models.Task) []string {
	if len(tasks) == 0 {
		return []string{noTasksCell}
	}

	sorted := sorting.Sorted(tasks)

	inColumn := make(map[string]bool, len(sorted))
	for _, task := range sorted {
		inColumn[task.ID] = true
	}

	children := make(map[string][]*models.Task)
	var top []*models.Task
	for _, task := range sorted {
		// Nest only when the parent lives in this column; a child
		// whose parent has a different status is top-level here.
		if task.ParentTaskID != "" && inColumn[task.ParentTaskID] {
			children[task.ParentTaskID] = append(children[task.ParentTaskID], task)
			continue
		}
		top = append(top, task)
	}

	var cells []string
	for _, task := range top {
		cells = append(cells, taskCell(task, false))
		subs := children[task.ID]
		// Children keep their own ordering: ascending trailing id,
		// independent of the column's primary sort.
		sortByTrailingIDAsc(subs)
		for _, sub := range subs {
			cells = append(cells, taskCell(sub, true))
		}
	}
	return cells
}

func taskCell(task *models.Task, nested bool) string {
	cell := fmt.Sprintf("**%s** - %s", task.ID, task.Title)
	if nested {
		cell = "↳ " + cell
	}
	return escapeCell(cell)
}

func sortByTrailingIDAsc(tasks []*models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, aOK := models.TrailingID(tasks[i].ID)
		b, bOK := models.TrailingID(tasks[j].ID)
		if aOK && bOK && a != b {
			return a < b
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// displayFor picks the display casing for a canonical column key:
// the configured spelling when the column is configured, else the
// first-seen task status.
func displayFor(key string, statuses []string, buckets map[string][]*models.Task) string {
	for _, status := range statuses {
		if canonical(status) == key {
			return status
		}
	}
	for _, task := range buckets[key] {
		if canonical(task.Status) == key {
			return task.Status
		}
	}
	return key
}

func canonical(status string) string {
	return strings.ToLower(status)
}

// escapeCell keeps pipes and newlines from breaking the table shape.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}
