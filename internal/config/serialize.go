package config

import (
	"fmt"
	"strings"

	"github.com/tablerohq/tablero/internal/models"
)

// Serialize renders a Configuration back into the line grammar Parse
// understands. Round-tripping preserves project_name, statuses and
// default_status exactly; zero-valued optional fields are omitted.
func Serialize(cfg *models.Configuration) string {
	var b strings.Builder

	writeScalar(&b, "project_name", cfg.ProjectName)
	writeList(&b, "statuses", cfg.Statuses)
	writeScalar(&b, "default_status", cfg.DefaultStatus)
	if len(cfg.Labels) > 0 {
		writeList(&b, "labels", cfg.Labels)
	}
	if len(cfg.Milestones) > 0 {
		writeList(&b, "milestones", cfg.Milestones)
	}
	writeScalar(&b, "date_format", cfg.DateFormat)
	if cfg.DefaultEditor != "" {
		writeScalar(&b, "default_editor", cfg.DefaultEditor)
	}
	if cfg.DefaultAssignee != "" {
		writeScalar(&b, "default_assignee", cfg.DefaultAssignee)
	}
	if cfg.MaxColumnWidth > 0 {
		fmt.Fprintf(&b, "max_column_width: %d\n", cfg.MaxColumnWidth)
	}
	if cfg.ZeroPaddedIDs > 0 {
		fmt.Fprintf(&b, "zero_padded_ids: %d\n", cfg.ZeroPaddedIDs)
	}
	if cfg.DefaultPort > 0 {
		fmt.Fprintf(&b, "default_port: %d\n", cfg.DefaultPort)
	}
	if cfg.ActiveBranchDays > 0 {
		fmt.Fprintf(&b, "active_branch_days: %d\n", cfg.ActiveBranchDays)
	}
	if cfg.AutoCommit {
		b.WriteString("auto_commit: true\n")
	}
	if cfg.RemoteOperations {
		b.WriteString("remote_operations: true\n")
	}
	if cfg.AutoOpenBrowser {
		b.WriteString("auto_open_browser: true\n")
	}
	if cfg.BypassGitHooks {
		b.WriteString("bypass_git_hooks: true\n")
	}
	if cfg.CheckActiveBranches {
		b.WriteString("check_active_branches: true\n")
	}

	return b.String()
}

func writeScalar(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s: %s\n", key, quoteIfNeeded(value))
}

func writeList(b *strings.Builder, key string, items []string) {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quoteIfNeeded(item)
	}
	fmt.Fprintf(b, "%s: [%s]\n", key, strings.Join(quoted, ", "))
}

// quoteIfNeeded wraps a value in double quotes when it would
// otherwise confuse the line scanner (embedded colon, comma, bracket
// or leading #).
func quoteIfNeeded(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsAny(value, ":,[]#\"") || value != strings.TrimSpace(value) {
		return `"` + strings.ReplaceAll(value, `"`, ``) + `"`
	}
	return value
}
