// Package config parses and serializes the project configuration file.
//
// The grammar is deliberately not full YAML: a tolerant line scanner
// that understands `key: value` pairs, `#` comments, quoted scalars
// and inline bracketed lists. Block (indented) lists are not part of
// the grammar; an array key written that way simply yields an empty
// array. Parsing never fails; defaults fill the gaps, and the
// stricter requirements (non-empty project name and statuses) live in
// a separate Validate step applied only where callers need it.
package config

import (
	"strconv"
	"strings"

	"github.com/tablerohq/tablero/internal/models"
)

// DefaultDateFormat is used when the configuration file does not set
// date_format.
const DefaultDateFormat = "yyyy-mm-dd"

// Parse turns raw configuration text into a typed Configuration with
// defaults applied. Unrecognized keys are silently ignored.
func Parse(text string) *models.Configuration {
	cfg := &models.Configuration{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, ":")
		if idx < 0 {
			// Not a key: value pair. This also skips the item lines
			// of a block list, which is how block lists end up empty.
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		switch key {
		case "project_name":
			cfg.ProjectName = unquote(value)
		case "statuses":
			cfg.Statuses = parseInlineList(value)
		case "labels":
			cfg.Labels = parseInlineList(value)
		case "milestones":
			cfg.Milestones = parseInlineList(value)
		case "default_status":
			cfg.DefaultStatus = unquote(value)
		case "date_format":
			cfg.DateFormat = unquote(value)
		case "default_editor":
			cfg.DefaultEditor = unquote(value)
		case "default_assignee":
			cfg.DefaultAssignee = unquote(value)
		case "max_column_width":
			cfg.MaxColumnWidth = parseInt(value)
		case "zero_padded_ids":
			cfg.ZeroPaddedIDs = parseInt(value)
		case "default_port":
			cfg.DefaultPort = parseInt(value)
		case "active_branch_days":
			cfg.ActiveBranchDays = parseInt(value)
		case "auto_commit":
			cfg.AutoCommit = parseBool(value)
		case "remote_operations":
			cfg.RemoteOperations = parseBool(value)
		case "auto_open_browser":
			cfg.AutoOpenBrowser = parseBool(value)
		case "bypass_git_hooks":
			cfg.BypassGitHooks = parseBool(value)
		case "check_active_branches":
			cfg.CheckActiveBranches = parseBool(value)
		}
	}

	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in whatever the file left out. The status list
// is guaranteed non-empty from here on.
func ApplyDefaults(cfg *models.Configuration) {
	if len(cfg.Statuses) == 0 {
		cfg.Statuses = models.DefaultStatuses()
	}
	if cfg.DefaultStatus == "" {
		cfg.DefaultStatus = cfg.Statuses[0]
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = DefaultDateFormat
	}
}

// parseInlineList parses an inline bracketed list like [a, "b", c].
// Anything else (a bare scalar, an empty value introducing a block
// list) yields nil.
func parseInlineList(value string) []string {
	if !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") {
		return nil
	}
	inner := strings.TrimSpace(value[1 : len(value)-1])
	if inner == "" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(inner, ",") {
		item := unquote(strings.TrimSpace(part))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// unquote strips one matching pair of surrounding single or double
// quotes, if present.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func parseInt(value string) int {
	n, err := strconv.Atoi(unquote(value))
	if err != nil {
		return 0
	}
	return n
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(unquote(value))
	if err != nil {
		return false
	}
	return b
}
