package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo/pkg/models"
)

// completeTaskIDs returns a completion function that lists task IDs with
// the task name as description.
func completeTaskIDs() func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if TaskStore == nil || len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var ids []string
		for _, task := range TaskStore.Tasks() {
			id := strconv.FormatInt(task.ID, 10)
			if toComplete == "" || strings.HasPrefix(id, toComplete) {
				ids = append(ids, id+"\t"+task.Name)
			}
		}

		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeStatuses returns a completion function for task status values.
func completeStatuses(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, 4)
	for _, s := range models.AllStatuses() {
		out = append(out, string(s)+"\t"+s.Label())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFilters returns a completion function for the list filter values.
func completeFilters(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return models.FilterSelections(), cobra.ShellCompDirectiveNoFileComp
}
