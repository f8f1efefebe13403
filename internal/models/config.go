package models

// Configuration is the typed view of the project configuration file.
// Parsing is lenient (see internal/config): missing fields get
// defaults here rather than failing, and a separate strict validation
// step enforces the required ones.
type Configuration struct {
	ProjectName     string
	Statuses        []string // never empty after parse
	DefaultStatus   string
	Labels          []string
	Milestones      []string
	DateFormat      string
	DefaultEditor   string
	DefaultAssignee string

	MaxColumnWidth      int
	ZeroPaddedIDs       int
	DefaultPort         int
	ActiveBranchDays    int
	AutoCommit          bool
	RemoteOperations    bool
	AutoOpenBrowser     bool
	BypassGitHooks      bool
	CheckActiveBranches bool
}

// DefaultStatuses is the built-in three-status board used when the
// configuration file does not declare any.
func DefaultStatuses() []string {
	return []string{"To Do", "In Progress", "Done"}
}
