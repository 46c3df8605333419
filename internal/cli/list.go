package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo/pkg/models"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in the order they were added.

Use --filter to show a single status (all, not-started, in-progress, review,
completed). Open tasks due within the due-soon window are marked with "!".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		status, err := models.ParseFilter(listFilter)
		if err != nil {
			return err
		}

		var tasks []models.Task
		for t := range TaskStore.Filter(status) {
			tasks = append(tasks, t)
		}

		w := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(w, "No tasks found.")
			return nil
		}
		printTaskTable(w, tasks)
		return nil
	},
}

// printTaskTable prints tasks as an aligned table.
func printTaskTable(w io.Writer, tasks []models.Task) {
	fmt.Fprintf(w, "  %-1s %-13s %-24s %-10s %-14s %s\n", "", "ID", "NAME", "DUE", "ASSIGNED TO", "STATUS")
	fmt.Fprintf(w, "  %-1s %-13s %-24s %-10s %-14s %s\n", "", "--", "----", "---", "-----------", "------")
	for _, t := range tasks {
		marker := ""
		if isDueSoon(t) {
			marker = "!"
		}
		fmt.Fprintf(w, "  %-1s %-13d %-24s %-10s %-14s %s\n",
			marker, t.ID, truncate(t.Name, 24), t.FormattedDueDate(), truncate(t.AssignedTo, 14), t.Status.Label())
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "all", "Filter by status (all, not-started, in-progress, review, completed)")
	_ = listCmd.RegisterFlagCompletionFunc("filter", completeFilters)
	rootCmd.AddCommand(listCmd)
}
