// Package export renders the current directory view into files a human can
// hand around.
package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"empdir/internal/domain/directory"
)

// WriteRosterPDF writes the given records as a tabular roster. The caller
// decides what slice to pass, so exports naturally honour the active
// filters.
func WriteRosterPDF(path, title string, records []directory.Employee) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	widths := []float64{80, 22, 40, 75, 28, 22}
	headers := []string{"Name", "Dept.", "Identification", "Email", "Hire date", "Status"}

	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, emp := range records {
		cells := []string{
			emp.FullName(),
			emp.Department,
			fmt.Sprintf("%s %s", emp.IDType, emp.IDNumber),
			emp.Email,
			emp.HireDate,
			emp.Status,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("%d records", len(records)))

	return pdf.OutputFileAndClose(path)
}
