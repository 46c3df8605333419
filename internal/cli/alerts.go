package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show overdue and soon-due tasks",
	Long: `Evaluate due dates against today's date and display any triggered alerts.

Open tasks past their due date are reported as high severity, tasks due
within the due-soon window as medium, and tasks without a status as low.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if AlertEngine == nil {
			return fmt.Errorf("alert engine not initialized")
		}
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		alerts := AlertEngine.Evaluate(TaskStore.Tasks(), now())

		w := cmd.OutOrStdout()
		if len(alerts) == 0 {
			fmt.Fprintln(w, "No active alerts.")
			return nil
		}

		fmt.Fprintf(w, "%d active alert(s):\n\n", len(alerts))
		for _, alert := range alerts {
			severity := strings.ToUpper(string(alert.Severity))
			fmt.Fprintf(w, "  [%s] %s\n", severity, alert.Message)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}
