package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo/internal/observability"
	"github.com/valter-silva-au/todo/pkg/models"
)

var (
	metricsJSON  bool
	metricsSince string
	metricsTask  int64
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display task activity metrics",
	Long: `Display aggregated metrics derived from the event log, followed by the
current number of tasks in each status.

Metrics include how many tasks were added, edited, deleted and advanced, and
which statuses tasks were moved into. Pass --task to count only the events of
a single task.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}

		since := strings.TrimSpace(metricsSince)
		if since == "" {
			since = "7d"
		}
		sinceTime, err := observability.ParseSince(since, now().UTC())
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(observability.MetricsQuery{Since: sinceTime, TaskID: metricsTask})
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		w := cmd.OutOrStdout()
		if metricsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Fprintln(w, string(data))
			return nil
		}

		// Table format.
		if metricsTask != 0 {
			fmt.Fprintf(w, "Metrics for task %d (since %s)\n\n", metricsTask, sinceTime.Format(models.DueDateLayout))
		} else {
			fmt.Fprintf(w, "Metrics (since %s)\n\n", sinceTime.Format(models.DueDateLayout))
		}
		fmt.Fprintf(w, "  %-24s %d\n", "Events recorded:", metrics.EventCount)
		fmt.Fprintf(w, "  %-24s %d\n", "Tasks added:", metrics.TasksAdded)
		fmt.Fprintf(w, "  %-24s %d\n", "Tasks edited:", metrics.TasksEdited)
		fmt.Fprintf(w, "  %-24s %d\n", "Tasks deleted:", metrics.TasksDeleted)
		fmt.Fprintf(w, "  %-24s %d\n", "Status changes:", metrics.TasksAdvanced)

		if len(metrics.TasksByStatus) > 0 {
			fmt.Fprintln(w, "\n  Moved into:")
			for _, s := range models.AllStatuses() {
				if count := metrics.TasksByStatus[string(s)]; count > 0 {
					fmt.Fprintf(w, "    %-20s %d\n", s.Label()+":", count)
				}
			}
		}

		if metrics.OldestEvent != nil {
			fmt.Fprintf(w, "\n  %-24s %s\n", "Oldest event:", metrics.OldestEvent.Format(time.RFC3339))
		}
		if metrics.NewestEvent != nil {
			fmt.Fprintf(w, "  %-24s %s\n", "Newest event:", metrics.NewestEvent.Format(time.RFC3339))
		}

		if TaskStore != nil && metricsTask == 0 {
			counts := TaskStore.Counts()
			fmt.Fprintln(w, "\n  Current tasks:")
			for _, s := range append(models.AllStatuses(), models.StatusUnset) {
				fmt.Fprintf(w, "    %-20s %d\n", s.Label()+":", counts[s])
			}
		}

		return nil
	},
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output metrics as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 30d, 24h)")
	metricsCmd.Flags().Int64Var(&metricsTask, "task", 0, "Only count events for this task id")
	_ = metricsCmd.RegisterFlagCompletionFunc("task", completeTaskIDs())
	rootCmd.AddCommand(metricsCmd)
}
