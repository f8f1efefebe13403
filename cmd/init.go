package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tablerohq/tablero/internal/board"
)

var initCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Create a tablero project in the target directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		abs, err := filepath.Abs(flagDir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	st, closer, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closer()

	if err := board.InitProject(cmd.Context(), st, name); err != nil {
		if errors.Is(err, board.ErrAlreadyProject) {
			return fmt.Errorf("a tablero project already exists here")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized project %q\n", name)
	return nil
}
