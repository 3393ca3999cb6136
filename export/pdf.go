package export

import (
	"bytes"

	"github.com/expensehub/backend/models"
	"github.com/go-pdf/fpdf"
)

// PDF renders the expenses as a one-table A4 report with a grand total
// row at the bottom.
func PDF(expenses []models.Expense) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Expense report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{28, 88, 40, 24}
	aligns := []string{"L", "L", "L", "R"}

	pdf.SetFont("Helvetica", "B", 10)
	for i, c := range columns {
		pdf.CellFormat(widths[i], 7, c, "B", 0, aligns[i], false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	var total float64
	for _, e := range expenses {
		total += e.Amount
		cells := []string{
			formatDate(e.Date),
			e.Description,
			e.Category,
			formatAmount(e.Amount),
		}
		for i, v := range cells {
			pdf.CellFormat(widths[i], 6, v, "", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(widths[3], 7, formatAmount(total), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
