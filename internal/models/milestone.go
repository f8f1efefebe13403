package models

// Milestone groups tasks under a release target. Membership lives on
// the milestone (the ordered TaskIDs list is authoritative); tasks do
// not know which milestone they belong to.
type Milestone struct {
	ID          string
	Title       string
	Description string
	TaskIDs     []string
	FilePath    string
}
