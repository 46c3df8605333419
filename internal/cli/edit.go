package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo/internal/core"
	"github.com/valter-silva-au/todo/pkg/models"
)

// newEditCmd builds the edit command. Flags that are not given keep the
// task's current values; the result replaces the whole record.
func newEditCmd() *cobra.Command {
	var name, description, due, assignedTo, status string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing task",
		Long: `Edit the fields of an existing task.

Only the flags you pass are changed; every other field keeps its current
value. Pass --status "" to clear the status.`,
		Example:           `  todo edit 1736500000000 --due 2025-01-20 --assigned-to Bob`,
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

			task, ok := TaskStore.Get(id)
			if !ok {
				return fmt.Errorf("task %d not found", id)
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				task.Name = name
			}
			if flags.Changed("description") {
				task.Description = description
			}
			if flags.Changed("due") {
				if err := core.ValidateDueDate(due); err != nil {
					return err
				}
				task.DueDate = due
			}
			if flags.Changed("assigned-to") {
				task.AssignedTo = assignedTo
			}
			if flags.Changed("status") {
				st, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				task.Status = st
			}

			found, err := TaskStore.Edit(task)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("task %d not found", id)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d\n", id)
			printTask(cmd.OutOrStdout(), task)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Short task name")
	cmd.Flags().StringVar(&description, "description", "", "What needs to be done")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Who the task is assigned to")
	cmd.Flags().StringVar(&status, "status", "", "Status (not-started, in-progress, review, completed)")
	_ = cmd.RegisterFlagCompletionFunc("status", completeStatuses)

	return cmd
}

func init() {
	rootCmd.AddCommand(newEditCmd())
}
