package config

import (
	"errors"
	"reflect"
	"testing"
)

// ============================================================================
// TEST CASES - Parse
// ============================================================================

func TestParseFullConfig(t *testing.T) {
	text := `# Project configuration
project_name: "Demo Project"
statuses: ["To Do", "In Progress", "Done"]
default_status: To Do
labels: [bug, feature]
milestones: [v1.0]
date_format: yyyy-mm-dd
default_editor: 'vim'
default_assignee: alice
max_column_width: 40
zero_padded_ids: 3
default_port: 6420
active_branch_days: 30
auto_commit: true
remote_operations: false
auto_open_browser: true
bypass_git_hooks: false
check_active_branches: true
`

	cfg := Parse(text)

	if cfg.ProjectName != "Demo Project" {
		t.Errorf("ProjectName = %q, want %q", cfg.ProjectName, "Demo Project")
	}
	wantStatuses := []string{"To Do", "In Progress", "Done"}
	if !reflect.DeepEqual(cfg.Statuses, wantStatuses) {
		t.Errorf("Statuses = %v, want %v", cfg.Statuses, wantStatuses)
	}
	if cfg.DefaultStatus != "To Do" {
		t.Errorf("DefaultStatus = %q, want %q", cfg.DefaultStatus, "To Do")
	}
	if !reflect.DeepEqual(cfg.Labels, []string{"bug", "feature"}) {
		t.Errorf("Labels = %v", cfg.Labels)
	}
	if cfg.DefaultEditor != "vim" {
		t.Errorf("DefaultEditor = %q, want vim (quotes stripped)", cfg.DefaultEditor)
	}
	if cfg.MaxColumnWidth != 40 || cfg.ZeroPaddedIDs != 3 || cfg.DefaultPort != 6420 {
		t.Errorf("numeric fields = %d/%d/%d", cfg.MaxColumnWidth, cfg.ZeroPaddedIDs, cfg.DefaultPort)
	}
	if !cfg.AutoCommit || cfg.RemoteOperations || !cfg.AutoOpenBrowser {
		t.Errorf("boolean fields parsed wrong: %+v", cfg)
	}
}

func TestParseDefaults(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty input", text: ""},
		{name: "comments only", text: "# nothing here\n\n# still nothing\n"},
		{name: "unknown keys only", text: "theme: dark\nwhatever: 12\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Parse(tt.text)

			want := []string{"To Do", "In Progress", "Done"}
			if !reflect.DeepEqual(cfg.Statuses, want) {
				t.Errorf("Statuses = %v, want built-in default %v", cfg.Statuses, want)
			}
			if cfg.DefaultStatus != "To Do" {
				t.Errorf("DefaultStatus = %q, want first status", cfg.DefaultStatus)
			}
			if cfg.ProjectName != "" {
				t.Errorf("ProjectName = %q, want empty (lenient parse)", cfg.ProjectName)
			}
			if cfg.DateFormat != DefaultDateFormat {
				t.Errorf("DateFormat = %q, want %q", cfg.DateFormat, DefaultDateFormat)
			}
		})
	}
}

// Block lists are not part of the grammar: the key line has no inline
// value, and the item lines have no colon, so the key ends up empty
// and the built-in default is substituted.
func TestParseBlockListYieldsDefault(t *testing.T) {
	text := `project_name: Demo
statuses:
  - To Do
  - Doing
`

	cfg := Parse(text)

	want := []string{"To Do", "In Progress", "Done"}
	if !reflect.DeepEqual(cfg.Statuses, want) {
		t.Errorf("Statuses = %v, want default %v for block-form list", cfg.Statuses, want)
	}
}

func TestParseInlineList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "plain items", value: "[a, b, c]", want: []string{"a", "b", "c"}},
		{name: "quoted items", value: `["To Do", 'Done']`, want: []string{"To Do", "Done"}},
		{name: "empty brackets", value: "[]", want: nil},
		{name: "bare scalar", value: "not a list", want: nil},
		{name: "trailing comma", value: "[a, b,]", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInlineList(tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseInlineList(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

// ============================================================================
// TEST CASES - Serialize round trip
// ============================================================================

func TestSerializeRoundTrip(t *testing.T) {
	original := Parse(`project_name: "Round Trip"
statuses: [Backlog, "In Progress", Done]
default_status: Backlog
labels: [bug]
auto_commit: true
`)

	reparsed := Parse(Serialize(original))

	if reparsed.ProjectName != original.ProjectName {
		t.Errorf("ProjectName = %q, want %q", reparsed.ProjectName, original.ProjectName)
	}
	if !reflect.DeepEqual(reparsed.Statuses, original.Statuses) {
		t.Errorf("Statuses = %v, want %v", reparsed.Statuses, original.Statuses)
	}
	if reparsed.DefaultStatus != original.DefaultStatus {
		t.Errorf("DefaultStatus = %q, want %q", reparsed.DefaultStatus, original.DefaultStatus)
	}
	if reparsed.AutoCommit != original.AutoCommit {
		t.Errorf("AutoCommit = %v, want %v", reparsed.AutoCommit, original.AutoCommit)
	}
}

// ============================================================================
// TEST CASES - Validate
// ============================================================================

func TestValidate(t *testing.T) {
	valid := Parse("project_name: Demo\n")
	if err := Validate(valid); err != nil {
		t.Errorf("Validate(valid config) = %v, want nil", err)
	}

	missing := Parse("statuses: [A, B]\n")
	err := Validate(missing)
	if err == nil {
		t.Fatal("Validate without project_name should fail")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Field != "project_name" {
		t.Errorf("ConfigError.Field = %q, want project_name", cfgErr.Field)
	}
}
