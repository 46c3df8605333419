package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo/internal/core"
)

var (
	addName        string
	addDescription string
	addDue         string
	addAssignedTo  string
	addStatus      string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new task",
	Long: `Add a new task to the list.

Name, description, due date and assignee are all required. The due date is
an ISO calendar date (YYYY-MM-DD). The status may be left empty or set to
one of not-started, in-progress, review, completed.`,
	Example: `  todo add --name "Report" --description "Write the Q3 report" --due 2025-01-10 --assigned-to Alice`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		if err := core.ValidateDueDate(addDue); err != nil {
			return err
		}

		task, err := TaskStore.Add(addName, addDescription, addDue, addAssignedTo, addStatus)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", task.ID, task.Name)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "Short task name")
	addCmd.Flags().StringVar(&addDescription, "description", "", "What needs to be done")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addAssignedTo, "assigned-to", "", "Who the task is assigned to")
	addCmd.Flags().StringVar(&addStatus, "status", "", "Initial status (not-started, in-progress, review, completed)")
	_ = addCmd.RegisterFlagCompletionFunc("status", completeStatuses)
	rootCmd.AddCommand(addCmd)
}
