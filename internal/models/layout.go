package models

import (
	"path"
	"strings"
)

// Conventional project layout. All paths are slash-separated and
// relative to the project root, matching what FileStore.List returns.
const (
	ProjectDir    = "tablero"
	ConfigPath    = "tablero/config.yml"
	TasksDir      = "tablero/tasks"
	CompletedDir  = "tablero/completed"
	MilestonesDir = "tablero/milestones"
)

// IsTaskPath reports whether a listed path looks like a task file:
// a markdown file under the active or completed tasks directory.
func IsTaskPath(p string) bool {
	if !strings.HasSuffix(p, ".md") {
		return false
	}
	return strings.HasPrefix(p, TasksDir+"/") || strings.HasPrefix(p, CompletedDir+"/")
}

// IsMilestonePath reports whether a listed path looks like a
// milestone file.
func IsMilestonePath(p string) bool {
	return strings.HasSuffix(p, ".md") && strings.HasPrefix(p, MilestonesDir+"/")
}

// SourceForPath derives the task source from its containing
// directory: any path with a "completed" segment is a completed task.
func SourceForPath(p string) Source {
	for _, seg := range strings.Split(p, "/") {
		if seg == "completed" {
			return SourceCompleted
		}
	}
	return SourceLocal
}

// PathMatchesID reports whether a task file path belongs to the given
// task id. Files are conventionally named "<id> - <title>.md", but a
// bare "<id>.md" also matches.
func PathMatchesID(p, id string) bool {
	base := strings.TrimSuffix(path.Base(p), ".md")
	return base == id || strings.HasPrefix(base, id+" ") || strings.HasPrefix(base, id+"_")
}

// TrailingID extracts the trailing numeric component of a task id,
// e.g. "task-12" -> 12. The second return is false when the id does
// not end in digits.
func TrailingID(id string) (int, bool) {
	end := len(id)
	start := end
	for start > 0 && id[start-1] >= '0' && id[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, false
	}
	n := 0
	for _, c := range id[start:end] {
		n = n*10 + int(c-'0')
		if n < 0 { // overflow guard
			return 0, false
		}
	}
	return n, true
}
