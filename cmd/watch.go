package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tablerohq/tablero/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the board whenever project files change",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before re-rendering")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagDB != "" {
		return fmt.Errorf("watch only works on a directory store")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	render := func() error {
		s, closer, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer closer()

		markdown, err := s.Export(ctx)
		if err != nil {
			return err
		}
		// Clear the terminal between renders.
		fmt.Fprint(cmd.OutOrStdout(), "\033[2J\033[H")
		fmt.Fprint(cmd.OutOrStdout(), markdown)
		return nil
	}

	if err := render(); err != nil {
		return err
	}

	w, err := watch.New(flagDir, watchDebounce, func() {
		if err := render(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
		}
	}, nil)
	if err != nil {
		return err
	}

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
