package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tablerohq/tablero/internal/sorting"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered by status",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only show tasks with this status")
}

func runList(cmd *cobra.Command, args []string) error {
	s, closer, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer closer()

	tasks, err := s.Tasks(cmd.Context())
	if err != nil {
		return err
	}

	statuses := s.Statuses()
	if listStatus != "" {
		statuses = []string{listStatus}
	}
	sorted := sorting.Sorted(tasks)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, status := range statuses {
		var group []*taskRow
		for _, task := range sorted {
			if !strings.EqualFold(task.Status, status) {
				continue
			}
			group = append(group, &taskRow{id: task.ID, title: task.Title, priority: string(task.Priority)})
		}

		fmt.Fprintf(w, "%s (%d)\n", status, len(group))
		for _, row := range group {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", row.id, row.title, row.priority)
		}
	}
	return nil
}

type taskRow struct {
	id, title, priority string
}
