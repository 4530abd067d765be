package export

import (
	"encoding/csv"
	"io"
	"strings"

	"employee-directory/internal/domain"
)

// WriteCSV writes the same columns as the spreadsheet export.
func WriteCSV(w io.Writer, records []domain.Employee) error {
	cw := csv.NewWriter(w)
	// match typical spreadsheet imports
	cw.UseCRLF = true

	if err := cw.Write(domain.Columns); err != nil {
		return err
	}

	for _, e := range records {
		row := e.Values()
		for i := range row {
			row[i] = cleanString(row[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// cleanString keeps every record on one line.
func cleanString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
