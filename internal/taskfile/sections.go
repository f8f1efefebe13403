package taskfile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tablerohq/tablero/internal/models"
)

// Acceptance-criteria fence markers. Items are only recognized
// between the two; checklist lines elsewhere in the body are prose.
const (
	acBegin = "<!-- AC:BEGIN -->"
	acEnd   = "<!-- AC:END -->"
)

// acItemPattern matches `- [ ] #3 some text` / `- [x] #3 some text`.
var acItemPattern = regexp.MustCompile(`^- \[([ x])\] #(\d+) (.+)$`)

// section extracts the body text between a `## <name>` heading and
// the next `## ` heading (or end of document), trimmed. Returns ""
// when the heading is absent.
func section(body, name string) string {
	lines := strings.Split(body, "\n")
	heading := "## " + name

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == heading {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "## ") {
			end = i
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

// acceptanceCriteria extracts checklist items from the fenced region.
// Lines inside the fence that do not match the exact item shape are
// silently skipped, not an error.
func acceptanceCriteria(body string) []models.AcceptanceCriterion {
	var items []models.AcceptanceCriterion

	inside := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		switch trimmed {
		case acBegin:
			inside = true
			continue
		case acEnd:
			inside = false
			continue
		}
		if !inside {
			continue
		}

		m := acItemPattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		items = append(items, models.AcceptanceCriterion{
			Index:   index,
			Text:    m[3],
			Checked: m[1] == "x",
		})
	}

	return items
}
