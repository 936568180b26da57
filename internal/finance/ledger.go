package finance

import (
	"fmt"
	"sort"
	"time"

	"freight-booking-backend/internal/domain"
)

// BookingLedger replays one booking into ledger entries with a running
// balance starting at zero: the deal as a debit, each party payment as a
// credit in stored order, then the advance as a credit.
//
// advancePaid already includes every recorded payment, so a booking with
// payment history has its payments subtracted twice. Reports rely on this
// shape, keep it until they are migrated.
func BookingLedger(b domain.Booking) []domain.LedgerEntry {
	var entries []domain.LedgerEntry
	var balance domain.Amount

	entry := func(date time.Time, debit, credit domain.Amount, remarks string) domain.LedgerEntry {
		balance = balance.Add(debit).Sub(credit)
		return domain.LedgerEntry{
			Date:          date,
			BookingNo:     b.BookingNo,
			PartyName:     b.Party.Name,
			VehicleNo:     b.Vehicle.VehicleNo,
			FromLocation:  b.Journey.FromLocation,
			ToLocation:    b.Journey.ToLocation,
			DebitAmount:   debit,
			CreditAmount:  credit,
			Balance:       balance,
			PaymentStatus: b.PaymentStatus.PartyPaymentStatus,
			Remarks:       remarks,
		}
	}

	if b.Charges.DealAmount.IsPositive() {
		entries = append(entries, entry(b.BookingDate, b.Charges.DealAmount, domain.Amount{}, domain.LedgerRemarkDeal))
	}
	for _, p := range b.Charges.PaymentHistory {
		entries = append(entries, entry(p.PaymentDate, domain.Amount{}, p.Amount, fmt.Sprintf("Payment - %s", p.Mode)))
	}
	if b.Charges.AdvancePaid.IsPositive() {
		entries = append(entries, entry(b.BookingDate, domain.Amount{}, b.Charges.AdvancePaid, domain.LedgerRemarkAdvance))
	}
	return entries
}

// BuildLedgerReport concatenates the ledgers of all bookings, orders them by
// date descending and totals them. Entries on the same date keep their
// replay order.
func BuildLedgerReport(bookings []domain.Booking, now time.Time) domain.LedgerReport {
	entries := make([]domain.LedgerEntry, 0, len(bookings)*2)
	for _, b := range bookings {
		entries = append(entries, BookingLedger(b)...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	var summary domain.LedgerSummary
	for _, e := range entries {
		summary.TotalDebit = summary.TotalDebit.Add(e.DebitAmount)
		summary.TotalCredit = summary.TotalCredit.Add(e.CreditAmount)
	}
	summary.ClosingBalance = summary.TotalDebit.Sub(summary.TotalCredit)
	summary.Bookings = len(bookings)
	summary.Entries = len(entries)

	return domain.LedgerReport{Entries: entries, Summary: summary, GeneratedAt: now}
}
