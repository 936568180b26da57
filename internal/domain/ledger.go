package domain

import "time"

const (
	LedgerRemarkDeal    = "Deal Amount"
	LedgerRemarkAdvance = "Advance Payment"
)

// LedgerEntry is one debit or credit line replayed from a booking. Balance is
// the running balance within that booking only.
type LedgerEntry struct {
	Date          time.Time    `json:"date"`
	BookingNo     string       `json:"bookingNo"`
	PartyName     string       `json:"partyName"`
	VehicleNo     string       `json:"vehicleNo"`
	FromLocation  string       `json:"fromLocation"`
	ToLocation    string       `json:"toLocation"`
	DebitAmount   Amount       `json:"debitAmount"`
	CreditAmount  Amount       `json:"creditAmount"`
	Balance       Amount       `json:"balance"`
	PaymentStatus PaymentState `json:"paymentStatus"`
	Remarks       string       `json:"remarks"`
}

type LedgerSummary struct {
	TotalDebit     Amount `json:"totalDebit"`
	TotalCredit    Amount `json:"totalCredit"`
	ClosingBalance Amount `json:"closingBalance"`
	Bookings       int    `json:"bookings"`
	Entries        int    `json:"entries"`
}

type LedgerReport struct {
	Entries     []LedgerEntry `json:"entries"`
	Summary     LedgerSummary `json:"summary"`
	GeneratedAt time.Time     `json:"generatedAt"`
}
