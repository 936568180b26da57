package finance

import (
	"fmt"
	"strings"
	"time"

	"freight-booking-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// PaymentInput is a payment as received from a caller. Amount is left untyped
// so that strings and numbers go through the same parsing.
type PaymentInput struct {
	Amount      any
	Mode        string
	BankName    string
	Remarks     string
	PaymentDate time.Time
}

// toRecord validates the input and builds the history record. It does not
// touch any booking.
func (in PaymentInput) toRecord(now time.Time) (domain.PaymentRecord, error) {
	amount := domain.ParseAmount(in.Amount)
	if amount.Sign() <= 0 {
		return domain.PaymentRecord{}, domain.InvalidAmountError{Value: rawValue(in.Amount)}
	}

	mode := domain.PaymentMode(strings.TrimSpace(in.Mode))
	if mode == "" {
		mode = domain.PaymentModeCash
	}
	if !mode.Valid() {
		return domain.PaymentRecord{}, domain.ValidationError{
			Field: "paymentMode",
			Msg:   fmt.Sprintf("must be one of %s", joinValues(domain.PaymentModes)),
		}
	}

	date := in.PaymentDate
	if date.IsZero() {
		date = now
	}

	return domain.PaymentRecord{
		Amount:      domain.AmountOf(amount),
		PaymentDate: date,
		Mode:        mode,
		BankName:    strings.TrimSpace(in.BankName),
		Remarks:     strings.TrimSpace(in.Remarks),
	}, nil
}

// RecordPartyPayment appends a party payment and recomputes the party side of
// the booking. Invalid input returns an error before anything is changed.
func RecordPartyPayment(b *domain.Booking, in PaymentInput, now time.Time) (domain.PaymentRecord, error) {
	if b == nil {
		return domain.PaymentRecord{}, domain.ValidationError{Msg: "booking is required"}
	}
	record, err := in.toRecord(now)
	if err != nil {
		return domain.PaymentRecord{}, err
	}

	c := &b.Charges
	c.PaymentHistory = append(c.PaymentHistory, record)

	c.AdvancePaid = c.AdvancePaid.Add(record.Amount)

	// Records created before the deal/advance structure only carry the
	// legacy advance and total; those are read for the balance, never stored.
	advance := c.AdvancePaid
	if advance.IsZero() {
		advance = c.PartyAdvance
	}
	deal := c.DealAmount
	if deal.IsZero() {
		deal = c.TotalAmount
	}
	pending := domain.AmountOf(decimal.Max(decimal.Zero, deal.Sub(advance).Decimal))
	c.PendingAmount = pending
	c.FinalPendingAmount = pending

	b.PaymentStatus.PartyPaymentStatus = statusForBalance(pending)
	return record, nil
}

// RecordVehiclePayment appends a payment to the vehicle owner and recomputes
// the vehicle balance, clamped at zero.
func RecordVehiclePayment(b *domain.Booking, in PaymentInput, now time.Time) (domain.PaymentRecord, error) {
	if b == nil {
		return domain.PaymentRecord{}, domain.ValidationError{Msg: "booking is required"}
	}
	record, err := in.toRecord(now)
	if err != nil {
		return domain.PaymentRecord{}, err
	}

	vp := &b.VehiclePayment
	vp.PaymentHistory = append(vp.PaymentHistory, record)
	vp.VehicleAdvance = vp.VehicleAdvance.Add(record.Amount)
	vp.VehicleBalance = domain.AmountOf(decimal.Max(decimal.Zero, vp.ActualVehicleCost.Sub(vp.VehicleAdvance).Decimal))

	b.PaymentStatus.VehiclePaymentStatus = statusForBalance(vp.VehicleBalance)
	return record, nil
}

func rawValue(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
