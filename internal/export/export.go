// Package export renders ledger reports as downloadable documents.
package export

import (
	"fmt"
	"strings"
	"time"

	"freight-booking-backend/internal/domain"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// File is a rendered document ready to be written to a response.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatPDF:
		return f, nil
	case "excel":
		return FormatXLSX, nil
	default:
		return "", domain.ValidationError{Field: "format", Msg: "must be one of xlsx, pdf"}
	}
}

// Ledger renders report in the requested format.
func Ledger(report domain.LedgerReport, format Format, title string) (*File, error) {
	name := fmt.Sprintf("ledger-%s.%s", report.GeneratedAt.Format("20060102-150405"), format)
	switch format {
	case FormatXLSX:
		data, err := LedgerXLSX(report, title)
		if err != nil {
			return nil, err
		}
		return &File{Name: name, ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Data: data}, nil
	case FormatPDF:
		data, err := LedgerPDF(report, title)
		if err != nil {
			return nil, err
		}
		return &File{Name: name, ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, domain.ValidationError{Field: "format", Msg: fmt.Sprintf("unsupported export format %q", format)}
	}
}

var ledgerHeaders = []string{
	"Date", "Booking No", "Party", "Vehicle", "From", "To", "Debit", "Credit", "Balance", "Status", "Remarks",
}

// ledgerRow returns the display values of an entry in header order.
func ledgerRow(e domain.LedgerEntry) []string {
	return []string{
		formatDate(e.Date),
		e.BookingNo,
		e.PartyName,
		e.VehicleNo,
		e.FromLocation,
		e.ToLocation,
		formatMoney(e.DebitAmount),
		formatMoney(e.CreditAmount),
		formatMoney(e.Balance),
		string(e.PaymentStatus),
		e.Remarks,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatMoney(a domain.Amount) string {
	if a.IsZero() {
		return ""
	}
	return a.StringFixed(2)
}
