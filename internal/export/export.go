// Package export renders the loaded employee list to downloadable documents.
// Renderers work from in-memory records only and never reorder or filter them.
package export

import (
	"fmt"
	"io"
	"strings"

	"employee-directory/internal/domain"
)

type Format string

const (
	FormatPDF         Format = "pdf"
	FormatSpreadsheet Format = "xlsx"
	FormatCSV         Format = "csv"
)

const (
	PDFFileName         = "employee-list.pdf"
	SpreadsheetFileName = "employee-list.xlsx"
	CSVFileName         = "employee-list.csv"
)

// Formats lists every supported format.
var Formats = []Format{FormatPDF, FormatSpreadsheet, FormatCSV}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatSpreadsheet, FormatCSV:
		return f, nil
	case "excel", "spreadsheet":
		return FormatSpreadsheet, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// FileName is the fixed name the artifact is saved under.
func (f Format) FileName() string {
	switch f {
	case FormatPDF:
		return PDFFileName
	case FormatSpreadsheet:
		return SpreadsheetFileName
	case FormatCSV:
		return CSVFileName
	}
	return ""
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatSpreadsheet:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv"
	}
	return "application/octet-stream"
}

// Render writes records to w in format f.
func Render(w io.Writer, f Format, records []domain.Employee) error {
	switch f {
	case FormatPDF:
		return WritePDF(w, records)
	case FormatSpreadsheet:
		return WriteSpreadsheet(w, records)
	case FormatCSV:
		return WriteCSV(w, records)
	}
	return fmt.Errorf("export: unknown format %q", string(f))
}
