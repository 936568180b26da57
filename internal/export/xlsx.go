package export

import (
	"bytes"
	"fmt"

	"freight-booking-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

const ledgerSheet = "Ledger"

// money columns are written as numbers so the sheet can total them
var moneyColumns = map[int]func(domain.LedgerEntry) domain.Amount{
	7: func(e domain.LedgerEntry) domain.Amount { return e.DebitAmount },
	8: func(e domain.LedgerEntry) domain.Amount { return e.CreditAmount },
	9: func(e domain.LedgerEntry) domain.Amount { return e.Balance },
}

// LedgerXLSX writes the report to a single sheet workbook: title, generation
// time, header row, one row per entry and a summary block.
func LedgerXLSX(report domain.LedgerReport, title string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ledgerSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	f.SetCellValue(ledgerSheet, "A1", title)
	f.SetCellStyle(ledgerSheet, "A1", "A1", titleStyle)
	f.SetRowHeight(ledgerSheet, 1, 28)
	f.SetCellValue(ledgerSheet, "A2", fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"305496"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    cellBorder("000000"),
	})
	for col, header := range ledgerHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 4)
		f.SetCellValue(ledgerSheet, cell, header)
		f.SetCellStyle(ledgerSheet, cell, cell, headerStyle)
	}
	f.SetColWidth(ledgerSheet, "A", "K", 16)
	f.SetColWidth(ledgerSheet, "K", "K", 28)

	dataStyle, _ := f.NewStyle(&excelize.Style{Border: cellBorder("CCCCCC")})
	moneyStyle, _ := f.NewStyle(&excelize.Style{Border: cellBorder("CCCCCC"), NumFmt: 4})

	row := 5
	for _, e := range report.Entries {
		values := ledgerRow(e)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if amount, ok := moneyColumns[col+1]; ok {
				f.SetCellValue(ledgerSheet, cell, amount(e).Float64())
				f.SetCellStyle(ledgerSheet, cell, cell, moneyStyle)
				continue
			}
			f.SetCellValue(ledgerSheet, cell, v)
			f.SetCellStyle(ledgerSheet, cell, cell, dataStyle)
		}
		row++
	}

	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E2EFDA"}, Pattern: 1},
	})
	row++
	summary := []struct {
		label string
		value any
	}{
		{"Total Debit", report.Summary.TotalDebit.Float64()},
		{"Total Credit", report.Summary.TotalCredit.Float64()},
		{"Closing Balance", report.Summary.ClosingBalance.Float64()},
		{"Bookings", report.Summary.Bookings},
		{"Entries", report.Summary.Entries},
	}
	for _, s := range summary {
		label, _ := excelize.CoordinatesToCellName(8, row)
		value, _ := excelize.CoordinatesToCellName(9, row)
		f.SetCellValue(ledgerSheet, label, s.label)
		f.SetCellValue(ledgerSheet, value, s.value)
		f.SetCellStyle(ledgerSheet, label, value, summaryStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellBorder(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}
