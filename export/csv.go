// Package export renders expense lists into downloadable CSV, XLSX and
// PDF byte streams. Renderers are pure functions of their input.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/expensehub/backend/models"
)

var columns = []string{"Date", "Description", "Category", "Amount"}

// CSV renders the expenses as UTF-8 CSV with a header row.
func CSV(expenses []models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, e := range expenses {
		record := []string{
			formatDate(e.Date),
			e.Description,
			e.Category,
			formatAmount(e.Amount),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
