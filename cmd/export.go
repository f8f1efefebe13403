package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board as a markdown table",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, closer, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer closer()

	markdown, err := s.Export(cmd.Context())
	if err != nil {
		return err
	}

	if exportOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), markdown)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported board to %s\n", exportOut)
	return nil
}
