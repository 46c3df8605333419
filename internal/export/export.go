// Package export renders a task collection as a downloadable report.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/valter-silva-au/todo/pkg/models"
	"gopkg.in/yaml.v3"
)

// Formats lists the supported export formats.
func Formats() []string {
	return []string{"json", "yaml", "pdf"}
}

// Export renders tasks in the given format. JSON output uses the same field
// names as the persisted collection.
func Export(tasks []models.Task, format string) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}

	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("exporting json: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(tasks)
		if err != nil {
			return nil, fmt.Errorf("exporting yaml: %w", err)
		}
		return data, nil
	case "pdf":
		return exportPDF(tasks)
	default:
		return nil, fmt.Errorf("unknown export format %q (use %s)", format, strings.Join(Formats(), ", "))
	}
}

func exportPDF(tasks []models.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task Management App", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Task Management App")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.Cell(0, 6, "No tasks.")
		pdf.Ln(6)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, t := range tasks {
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s  [%s]", t.Name, t.Status.Label())), "0", "L", false)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(t.Description), "0", "L", false)
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("Due: %s   Assigned to: %s   ID: %d", t.FormattedDueDate(), t.AssignedTo, t.ID)), "0", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("exporting pdf: %w", err)
	}
	return buf.Bytes(), nil
}
