package config

import (
	"fmt"

	"github.com/tablerohq/tablero/internal/models"
)

// ConfigError reports an invalid configuration. It is fatal to any
// index build that opts into strict validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// Validate is the strict check layered on top of the lenient parser.
// Parse never fails; Validate rejects configurations that are missing
// the fields a real project must have. Callers that only need the
// status vocabulary can skip it.
func Validate(cfg *models.Configuration) error {
	if cfg.ProjectName == "" {
		return &ConfigError{Field: "project_name", Reason: "must not be empty"}
	}
	if len(cfg.Statuses) == 0 {
		return &ConfigError{Field: "statuses", Reason: "must list at least one status"}
	}
	return nil
}
