package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:               "delete <id>",
	Aliases:           []string{"rm"},
	Short:             "Delete a task",
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

		removed, err := TaskStore.Delete(id)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("task %d not found", id)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
