package models

// Priority is the optional urgency marker on a task.
// The zero value means no priority was set.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = ""
)

// Rank returns a numeric weight for sorting. Higher sorts first.
// An absent priority ranks the same as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// ParsePriority normalizes a raw frontmatter value. Unknown values
// are treated as absent rather than rejected.
func ParsePriority(raw string) Priority {
	switch Priority(raw) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(raw)
	default:
		return PriorityNone
	}
}

// Source identifies the directory category a task file came from.
type Source string

const (
	SourceLocal     Source = "local"
	SourceCompleted Source = "completed"
	SourceRemote    Source = "remote"
)

// AcceptanceCriterion is one checklist item from the fenced
// acceptance-criteria region of a task body.
type AcceptanceCriterion struct {
	Index   int // 1-based, taken from the #<n> marker
	Text    string
	Checked bool
}

// Task is one parsed task file. A Task is immutable once parsed;
// mutations go through the coordinator, which replaces the record
// wholesale via WithStatus rather than patching fields in place.
type Task struct {
	ID           string
	Title        string
	Status       string // free text; may not match any configured status
	CreatedDate  string
	UpdatedDate  string
	Priority     Priority
	Ordinal      *int // explicit manual rank, overrides priority/date sort
	Assignee     []string
	Labels       []string
	Dependencies []string
	ParentTaskID string

	Description         string
	AcceptanceCriteria  []AcceptanceCriterion
	ImplementationPlan  string
	ImplementationNotes string
	RawBody             string

	Source   Source
	FilePath string
}

// WithStatus returns a copy of the task with a new status and updated
// date. The receiver is left untouched.
func (t *Task) WithStatus(status, updatedDate string) *Task {
	clone := *t
	clone.Status = status
	clone.UpdatedDate = updatedDate
	return &clone
}
