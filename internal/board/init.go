package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablerohq/tablero/internal/config"
	"github.com/tablerohq/tablero/internal/models"
	"github.com/tablerohq/tablero/internal/store"
)

// ErrAlreadyProject is returned by InitProject when the store already
// holds a configuration file.
var ErrAlreadyProject = errors.New("store already contains a project")

// InitProject lays down the default project skeleton: the directory
// tree and a serialized default configuration carrying the given
// project name. It refuses to overwrite an existing project.
func InitProject(ctx context.Context, st store.WritableStore, projectName string) error {
	if st.Exists(ctx, models.ConfigPath) {
		return ErrAlreadyProject
	}

	for _, dir := range []string{models.TasksDir, models.CompletedDir, models.MilestonesDir} {
		if err := st.MkdirAll(ctx, dir); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	cfg := &models.Configuration{ProjectName: projectName}
	config.ApplyDefaults(cfg)

	if err := st.Write(ctx, models.ConfigPath, config.Serialize(cfg)); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}
	return nil
}
