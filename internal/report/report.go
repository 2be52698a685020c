// Package report renders task statistics as a printable PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskmaster/internal/task"
)

const FileName = "taskmaster-stats.pdf"

// WritePDF writes a one page A4 summary of s as computed on today.
func WritePDF(w io.Writer, s task.Stats, today time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("TaskMaster statistics", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "TaskMaster statistics")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "As of "+task.DateOf(today))
	pdf.Ln(10)

	section(pdf, "Summary")
	row(pdf, "Total tasks", fmt.Sprint(s.Total))
	row(pdf, "Completed", fmt.Sprint(s.Completed))
	row(pdf, "Pending", fmt.Sprint(s.Pending))
	row(pdf, "Completion rate", fmt.Sprintf("%d%%", s.CompletionRate))
	pdf.Ln(4)

	section(pdf, "Alerts")
	row(pdf, "Overdue", fmt.Sprint(s.Overdue))
	row(pdf, fmt.Sprintf("Upcoming (%d days)", task.UpcomingDays), fmt.Sprint(s.Upcoming))
	pdf.Ln(4)

	section(pdf, "By priority")
	for _, b := range s.ByPriority {
		row(pdf, task.Priority(b.Name).Label(), breakdown(b))
	}
	pdf.Ln(4)

	section(pdf, "By category")
	if len(s.ByCategory) == 0 {
		row(pdf, "(none)", "")
	}
	for _, b := range s.ByCategory {
		row(pdf, b.Name, breakdown(b))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.CellFormat(70, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func breakdown(b task.Breakdown) string {
	return fmt.Sprintf("%d/%d (%d%%)", b.Completed, b.Total, b.Rate)
}
