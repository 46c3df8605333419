package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var advanceCmd = &cobra.Command{
	Use:   "advance <id>",
	Short: "Move a task to its next status",
	Long: `Move a task to the next status in the cycle:

  not-started -> in-progress -> review -> completed -> not-started

A task without a status moves to not-started.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		task, ok, err := TaskStore.AdvanceStatus(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %d not found", id)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task %d is now %s\n", task.ID, task.Status.Label())
		fmt.Fprintf(cmd.OutOrStdout(), "Next: %s\n", task.Status.ActionLabel())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(advanceCmd)
}
