package export

import (
	"bytes"
	"fmt"

	"freight-booking-backend/internal/domain"

	"github.com/phpdave11/gofpdf"
)

// column widths in mm on landscape A4, in header order
var pdfWidths = []float64{20, 22, 34, 24, 24, 24, 22, 22, 22, 20, 43}

func LedgerPDF(report domain.LedgerReport, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated: "+report.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(9)

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(48, 84, 150)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range ledgerHeaders {
			pdf.CellFormat(pdfWidths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 8)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, e := range report.Entries {
		if pdf.GetY()+6 > pageHeight-bottom-6 {
			pdf.AddPage()
			header()
		}
		for i, v := range ledgerRow(e) {
			align := "L"
			if i >= 6 && i <= 8 {
				align = "R"
			}
			pdf.CellFormat(pdfWidths[i], 6, truncate(pdf, v, pdfWidths[i]-2), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	lines := []string{
		"Total Debit: " + report.Summary.TotalDebit.StringFixed(2),
		"Total Credit: " + report.Summary.TotalCredit.StringFixed(2),
		"Closing Balance: " + report.Summary.ClosingBalance.StringFixed(2),
		fmt.Sprintf("Bookings: %d   Entries: %d", report.Summary.Bookings, report.Summary.Entries),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
