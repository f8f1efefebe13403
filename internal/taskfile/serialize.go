package taskfile

import (
	"fmt"
	"strings"

	"github.com/tablerohq/tablero/internal/models"
)

// SerializeTask renders a task record back into file form:
// regenerated frontmatter followed by the raw body, unchanged. Used
// by the persisted-write path of the mutation coordinator, so the
// output must re-parse to an equivalent record.
func SerializeTask(task *models.Task) string {
	var b strings.Builder

	b.WriteString("---\n")
	writeField(&b, "id", task.ID)
	writeField(&b, "title", task.Title)
	writeField(&b, "status", task.Status)
	if len(task.Assignee) > 0 {
		writeFieldList(&b, "assignee", task.Assignee)
	}
	writeField(&b, "created_date", task.CreatedDate)
	if task.UpdatedDate != "" {
		writeField(&b, "updated_date", task.UpdatedDate)
	}
	if len(task.Labels) > 0 {
		writeFieldList(&b, "labels", task.Labels)
	}
	if len(task.Dependencies) > 0 {
		writeFieldList(&b, "dependencies", task.Dependencies)
	}
	if task.Priority != models.PriorityNone {
		writeField(&b, "priority", string(task.Priority))
	}
	if task.Ordinal != nil {
		fmt.Fprintf(&b, "ordinal: %d\n", *task.Ordinal)
	}
	if task.ParentTaskID != "" {
		writeField(&b, "parent_task_id", task.ParentTaskID)
	}
	b.WriteString("---\n")

	body := task.RawBody
	if body != "" && !strings.HasPrefix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(body)

	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s: %s\n", key, quoteYAML(value))
}

func writeFieldList(b *strings.Builder, key string, items []string) {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quoteYAML(item)
	}
	fmt.Fprintf(b, "%s: [%s]\n", key, strings.Join(quoted, ", "))
}

// quoteYAML double-quotes values that plain YAML scalars cannot carry
// safely. Anything simple stays unquoted to keep diffs quiet.
func quoteYAML(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsAny(value, ":#{}[],&*!|>'\"%@`") ||
		strings.HasPrefix(value, " ") || strings.HasSuffix(value, " ") {
		return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
	}
	return value
}
