package export_test

import (
	"bytes"
	"testing"
	"time"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() domain.LedgerReport {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return domain.LedgerReport{
		Entries: []domain.LedgerEntry{
			{Date: date, BookingNo: "BK-1", PartyName: "Acme Traders", DebitAmount: domain.AmountFromInt(10000), Balance: domain.AmountFromInt(10000), Remarks: domain.LedgerRemarkDeal},
			{Date: date, BookingNo: "BK-1", PartyName: "Acme Traders", CreditAmount: domain.AmountFromInt(2000), Balance: domain.AmountFromInt(8000), Remarks: domain.LedgerRemarkAdvance},
		},
		Summary: domain.LedgerSummary{
			TotalDebit:     domain.AmountFromInt(10000),
			TotalCredit:    domain.AmountFromInt(2000),
			ClosingBalance: domain.AmountFromInt(8000),
			Bookings:       1,
			Entries:        2,
		},
		GeneratedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, f)

	f, err = export.ParseFormat("excel")
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, f)

	_, err = export.ParseFormat("csv")
	assert.True(t, domain.IsValidation(err))
}

func TestLedgerXLSX(t *testing.T) {
	file, err := export.Ledger(sampleReport(), export.FormatXLSX, "Ledger - Acme")
	require.NoError(t, err)
	assert.Equal(t, "ledger-20240302-100000.xlsx", file.Name)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Ledger"}, wb.GetSheetList())
	title, _ := wb.GetCellValue("Ledger", "A1")
	assert.Equal(t, "Ledger - Acme", title)
	header, _ := wb.GetCellValue("Ledger", "B4")
	assert.Equal(t, "Booking No", header)
	booking, _ := wb.GetCellValue("Ledger", "B5")
	assert.Equal(t, "BK-1", booking)
	remarks, _ := wb.GetCellValue("Ledger", "K6")
	assert.Equal(t, domain.LedgerRemarkAdvance, remarks)
	label, _ := wb.GetCellValue("Ledger", "H10")
	assert.Equal(t, "Closing Balance", label)
}

func TestLedgerPDF(t *testing.T) {
	file, err := export.Ledger(sampleReport(), export.FormatPDF, "Ledger")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
}

func TestLedgerUnsupportedFormat(t *testing.T) {
	_, err := export.Ledger(sampleReport(), export.Format("doc"), "Ledger")
	assert.True(t, domain.IsValidation(err))
}
