package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tablerohq/tablero/internal/mutation"
)

var moveCmd = &cobra.Command{
	Use:   "move <task-id> <status>",
	Short: "Move a task to another status column",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	taskID, status := args[0], args[1]

	s, closer, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer closer()

	if err := s.MoveTask(taskID, status); err != nil {
		if errors.Is(err, mutation.ErrTaskNotFound) {
			return fmt.Errorf("task %s not found", taskID)
		}
		return err
	}

	// The move applies in memory immediately; block until the file
	// write settles so the process does not exit mid-persist.
	s.Flush()
	if dirty := s.DirtyTasks(); len(dirty) > 0 {
		return fmt.Errorf("moved %s in memory but the file write failed", taskID)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", taskID, status)
	return nil
}
