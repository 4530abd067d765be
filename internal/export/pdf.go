package export

import (
	"fmt"
	"io"

	"employee-directory/internal/domain"

	"github.com/go-pdf/fpdf"
)

const (
	pdfTitle      = "Employee List"
	pdfMarginX    = 14.0
	pdfTitleY     = 20.0
	pdfFirstLineY = 30.0
	pdfLineStep   = 10.0
	// last baseline that still fits above the A4 bottom margin
	pdfBottomY = 280.0
	// continuation pages start where the title would be
	pdfTopY = 20.0
)

// PDFLines returns the text lines of the PDF body, one per record.
func PDFLines(records []domain.Employee) []string {
	lines := make([]string, len(records))
	for i, e := range records {
		lines[i] = fmt.Sprintf("%d. %s - %s - %s", i+1, e.Username, e.PhoneNumber, e.Email)
	}
	return lines
}

type pdfPos struct {
	Page int
	Y    float64
}

// pdfLayout places n body lines, breaking to a new page past pdfBottomY.
func pdfLayout(n int) []pdfPos {
	out := make([]pdfPos, n)
	page, y := 1, pdfFirstLineY
	for i := range out {
		if y > pdfBottomY {
			page++
			y = pdfTopY
		}
		out[i] = pdfPos{Page: page, Y: y}
		y += pdfLineStep
	}
	return out
}

// WritePDF renders an A4 document: the title, then one line per record.
func WritePDF(w io.Writer, records []domain.Employee) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(pdfTitle, true)
	pdf.SetAutoPageBreak(false, 0)
	// core fonts only cover cp1252; other scripts do not render
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 18)
	pdf.Text(pdfMarginX, pdfTitleY, pdfTitle)
	pdf.SetFont("Helvetica", "", 12)

	lines := PDFLines(records)
	page := 1
	for i, pos := range pdfLayout(len(lines)) {
		if pos.Page != page {
			pdf.AddPage()
			page = pos.Page
		}
		pdf.Text(pdfMarginX, pos.Y, tr(lines[i]))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}
