package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var milestoneCmd = &cobra.Command{
	Use:     "milestone",
	Aliases: []string{"ms"},
	Short:   "Inspect project milestones",
}

var milestoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List milestones without loading their tasks",
	RunE:  runMilestoneList,
}

var milestoneShowCmd = &cobra.Command{
	Use:   "show <milestone-id>",
	Short: "Show a milestone and its member tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runMilestoneShow,
}

func init() {
	milestoneCmd.AddCommand(milestoneListCmd)
	milestoneCmd.AddCommand(milestoneShowCmd)
}

func runMilestoneList(cmd *cobra.Command, args []string) error {
	s, closer, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer closer()

	milestones, err := s.Milestones(cmd.Context())
	if err != nil {
		return err
	}
	if len(milestones) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No milestones")
		return nil
	}
	for _, ms := range milestones {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%d tasks)\n", ms.ID, ms.Title, len(ms.TaskIDs))
	}
	return nil
}

func runMilestoneShow(cmd *cobra.Command, args []string) error {
	s, closer, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer closer()

	tasks, err := s.ExpandMilestone(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks in this milestone")
		return nil
	}
	for _, task := range tasks {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s]  %s\n", task.ID, task.Status, task.Title)
	}
	return nil
}
