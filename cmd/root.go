package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tablerohq/tablero/internal/board"
	"github.com/tablerohq/tablero/internal/store"
)

var (
	flagDir      string
	flagDB       string
	flagLazy     bool
	flagPageSize int
	flagStrict   bool
)

var rootCmd = &cobra.Command{
	Use:   "tablero",
	Short: "Tablero - A file-backed kanban board",
	Long: `Tablero manages a kanban board stored as plain markdown files.

Tasks live under tablero/tasks and tablero/completed, milestones under
tablero/milestones, and the board configuration in tablero/config.yml.
The files are the source of truth; every command reads them fresh.`,
	SilenceUsage: true,
}

func Execute() error {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(milestoneCmd)
	rootCmd.AddCommand(watchCmd)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", ".", "project root directory")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "read the project from a sqlite file instead of a directory")
	rootCmd.PersistentFlags().BoolVar(&flagLazy, "lazy", false, "defer task parsing to the pages that need it")
	rootCmd.PersistentFlags().IntVar(&flagPageSize, "page-size", 0, "tasks per load-more window (0 = default)")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "reject incomplete configurations")
}

// openStore picks the backing store from the persistent flags: a
// sqlite file when --db is given, the directory tree otherwise.
func openStore(ctx context.Context) (store.WritableStore, func(), error) {
	if flagDB != "" {
		st, err := store.OpenSQLite(ctx, flagDB)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", flagDB, err)
		}
		return st, func() { st.Close() }, nil
	}
	return store.NewOSStore(flagDir), func() {}, nil
}

// openSession opens the store and builds a session over it. Callers
// must invoke the returned closer when done.
func openSession(ctx context.Context) (*board.Session, func(), error) {
	st, closer, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	s, err := board.Open(ctx, st, board.Options{
		Lazy:     flagLazy,
		PageSize: flagPageSize,
		Strict:   flagStrict,
	})
	if err != nil {
		closer()
		if errors.Is(err, board.ErrNotAProject) {
			return nil, nil, fmt.Errorf("no tablero project here (run `tablero init` first)")
		}
		return nil, nil, err
	}
	return s, closer, nil
}
