package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo/internal/export"
	"github.com/valter-silva-au/todo/pkg/models"
)

var (
	exportFormat string
	exportOut    string
	exportFilter string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as JSON, YAML or PDF",
	Long: `Export the task list to a file or stdout.

Supported formats: json, yaml, pdf. JSON output uses the same field names as
the stored task list. PDF output requires --out.`,
	Example: `  todo export --format json
  todo export --format pdf --out tasks.pdf --filter in-progress`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskStore == nil {
			return fmt.Errorf("task store not initialized")
		}

		status, err := models.ParseFilter(exportFilter)
		if err != nil {
			return err
		}
		var tasks []models.Task
		for t := range TaskStore.Filter(status) {
			tasks = append(tasks, t)
		}

		if strings.EqualFold(exportFormat, "pdf") && exportOut == "" {
			return fmt.Errorf("--out is required for pdf export")
		}

		data, err := export.Export(tasks, exportFormat)
		if err != nil {
			return err
		}

		if exportOut == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("writing export file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", len(tasks), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format ("+strings.Join(export.Formats(), ", ")+")")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to this file instead of stdout")
	exportCmd.Flags().StringVar(&exportFilter, "filter", "all", "Only export tasks with this status")
	_ = exportCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return export.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = exportCmd.RegisterFlagCompletionFunc("filter", completeFilters)
	rootCmd.AddCommand(exportCmd)
}
