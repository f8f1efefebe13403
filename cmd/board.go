package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var boardPlain bool

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Render the board in the terminal",
	RunE:  runBoard,
}

func init() {
	boardCmd.Flags().BoolVar(&boardPlain, "plain", false, "print raw markdown instead of styled output")
}

func runBoard(cmd *cobra.Command, args []string) error {
	s, closer, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer closer()

	markdown, err := s.Export(cmd.Context())
	if err != nil {
		return err
	}

	if boardPlain {
		fmt.Fprint(cmd.OutOrStdout(), markdown)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return err
	}
	styled, err := renderer.Render(markdown)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), styled)
	return nil
}
