// Package taskfile parses and serializes the per-item markdown files:
// tasks and milestones. Each file is a YAML frontmatter block between
// two `---` lines followed by a markdown body with well-known
// headings.
package taskfile

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tablerohq/tablero/internal/models"
)

// ParseTask parses one task file. It fails with *ParseError when the
// frontmatter delimiters are absent or any required field (id, title,
// status, created_date) is missing or not a string. Everything else
// is tolerant: optional arrays default to empty, unknown priority
// values read as absent, unknown keys are ignored.
func ParseTask(text, filePath string) (*models.Task, error) {
	front, body, err := splitFrontmatter(text, filePath)
	if err != nil {
		return nil, err
	}

	doc := map[string]any{}
	if err := yaml.Unmarshal([]byte(front), &doc); err != nil {
		return nil, parseErrorf(filePath, "invalid frontmatter: %v", err)
	}

	task := &models.Task{
		Source:   models.SourceForPath(filePath),
		FilePath: filePath,
	}

	if task.ID, err = requireString(doc, "id", filePath); err != nil {
		return nil, err
	}
	if task.Title, err = requireString(doc, "title", filePath); err != nil {
		return nil, err
	}
	if task.Status, err = requireString(doc, "status", filePath); err != nil {
		return nil, err
	}
	if task.CreatedDate, err = requireString(doc, "created_date", filePath); err != nil {
		return nil, err
	}

	task.UpdatedDate = optString(doc, "updated_date")
	task.Priority = models.ParsePriority(optString(doc, "priority"))
	task.ParentTaskID = optString(doc, "parent_task_id")
	task.Assignee = optStringList(doc, "assignee")
	task.Labels = optStringList(doc, "labels")
	task.Dependencies = optStringList(doc, "dependencies")
	if n, ok := optInt(doc, "ordinal"); ok {
		task.Ordinal = &n
	}

	task.RawBody = body
	task.Description = section(body, "Description")
	task.ImplementationPlan = section(body, "Implementation Plan")
	task.ImplementationNotes = section(body, "Implementation Notes")
	task.AcceptanceCriteria = acceptanceCriteria(body)

	return task, nil
}

// ParseMilestone parses one milestone file: frontmatter with id,
// title and a tasks id list, body as free-text description.
func ParseMilestone(text, filePath string) (*models.Milestone, error) {
	front, body, err := splitFrontmatter(text, filePath)
	if err != nil {
		return nil, err
	}

	doc := map[string]any{}
	if err := yaml.Unmarshal([]byte(front), &doc); err != nil {
		return nil, parseErrorf(filePath, "invalid frontmatter: %v", err)
	}

	ms := &models.Milestone{FilePath: filePath}
	if ms.ID, err = requireString(doc, "id", filePath); err != nil {
		return nil, err
	}
	if ms.Title, err = requireString(doc, "title", filePath); err != nil {
		return nil, err
	}
	ms.TaskIDs = optStringList(doc, "tasks")
	ms.Description = strings.TrimSpace(body)

	return ms, nil
}

// splitFrontmatter separates the frontmatter block from the body.
// The first line must be exactly `---` and a closing `---` line must
// follow; anything else is a parse error.
func splitFrontmatter(text, filePath string) (front, body string, err error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", "", parseErrorf(filePath, "missing opening frontmatter delimiter")
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			front = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return front, body, nil
		}
	}
	return "", "", parseErrorf(filePath, "missing closing frontmatter delimiter")
}

func requireString(doc map[string]any, key, filePath string) (string, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return "", parseErrorf(filePath, "frontmatter field %q is missing", key)
	}
	s, ok := scalarString(raw)
	if !ok {
		return "", parseErrorf(filePath, "frontmatter field %q must be a string", key)
	}
	return s, nil
}

func optString(doc map[string]any, key string) string {
	s, _ := scalarString(doc[key])
	return s
}

// scalarString reads a frontmatter scalar as the string it was
// written as. Unquoted dates resolve through the YAML decoder as
// timestamps, so those are formatted back to their written form.
func scalarString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format("2006-01-02"), true
		}
		return v.Format("2006-01-02 15:04"), true
	}
	return "", false
}

// optStringList accepts a YAML sequence of scalars; a single scalar
// value is treated as a one-element list. Defaults to an empty slice,
// never nil, so downstream code can range without nil checks.
func optStringList(doc map[string]any, key string) []string {
	out := []string{}
	switch v := doc[key].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case string:
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func optInt(doc map[string]any, key string) (int, bool) {
	switch v := doc[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
