package finance

import (
	"fmt"

	"freight-booking-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Totals holds the derived figures of a booking together with the normalized
// inputs they were computed from.
type Totals struct {
	DealAmount         domain.Amount
	AdvancePaid        domain.Amount
	PendingAmount      domain.Amount
	SubTotal           domain.Amount
	PreviousAmount     domain.Amount
	FinalPendingAmount domain.Amount
	TotalDeductions    domain.Amount

	VehicleCharges domain.Amount
	Commission     domain.Amount
	LocalCharges   domain.Amount
	Hamali         domain.Amount
	TDS            domain.Amount
	STCharges      domain.Amount
	Other          domain.Amount

	ActualVehicleCost domain.Amount
	VehicleAdvance    domain.Amount
	VehicleBalance    domain.Amount
}

// ComputeTotals derives pending amount, deductions, sub total and vehicle
// balance. Nil inputs are treated as empty and results are not clamped, so an
// overpaid booking yields a negative pending amount.
func ComputeTotals(charges *domain.Charges, vp *domain.VehiclePayment) (totals Totals, err error) {
	defer func() {
		if r := recover(); r != nil {
			totals = Totals{}
			err = domain.ComputationError{Msg: "cannot compute totals", Err: fmt.Errorf("%v", r)}
		}
	}()

	if charges == nil {
		charges = &domain.Charges{}
	}
	if vp == nil {
		vp = &domain.VehiclePayment{}
	}

	deal := domain.ParseAmount(charges.DealAmount)
	advance := domain.ParseAmount(charges.AdvancePaid)

	deductions := []decimal.Decimal{
		domain.ParseAmount(charges.VehicleCharges),
		domain.ParseAmount(charges.Commission),
		domain.ParseAmount(charges.LocalCharges),
		domain.ParseAmount(charges.Hamali),
		domain.ParseAmount(charges.TDS),
		domain.ParseAmount(charges.STCharges),
		domain.ParseAmount(charges.Other),
	}
	totalDeductions := decimal.Sum(decimal.Zero, deductions...)

	cost := domain.ParseAmount(vp.ActualVehicleCost)
	vehicleAdvance := domain.ParseAmount(vp.VehicleAdvance)

	pending := deal.Sub(advance)

	return Totals{
		DealAmount:         domain.AmountOf(deal),
		AdvancePaid:        domain.AmountOf(advance),
		PendingAmount:      domain.AmountOf(pending),
		SubTotal:           domain.AmountOf(deal.Sub(totalDeductions)),
		PreviousAmount:     domain.AmountOf(deal),
		FinalPendingAmount: domain.AmountOf(pending),
		TotalDeductions:    domain.AmountOf(totalDeductions),

		VehicleCharges: domain.AmountOf(deductions[0]),
		Commission:     domain.AmountOf(deductions[1]),
		LocalCharges:   domain.AmountOf(deductions[2]),
		Hamali:         domain.AmountOf(deductions[3]),
		TDS:            domain.AmountOf(deductions[4]),
		STCharges:      domain.AmountOf(deductions[5]),
		Other:          domain.AmountOf(deductions[6]),

		ActualVehicleCost: domain.AmountOf(cost),
		VehicleAdvance:    domain.AmountOf(vehicleAdvance),
		VehicleBalance:    domain.AmountOf(cost.Sub(vehicleAdvance)),
	}, nil
}

// ApplyTo writes the derived fields back onto the booking.
func (t Totals) ApplyTo(b *domain.Booking) {
	if b == nil {
		return
	}
	b.Charges.PendingAmount = t.PendingAmount
	b.Charges.SubTotal = t.SubTotal
	b.Charges.PreviousAmount = t.PreviousAmount
	b.Charges.FinalPendingAmount = t.FinalPendingAmount
	b.VehiclePayment.VehicleBalance = t.VehicleBalance
}

// DeriveBooking recomputes totals and statuses of b in place. It is the
// shared step of the create, update and migration flows.
func DeriveBooking(b *domain.Booking) error {
	totals, err := ComputeTotals(&b.Charges, &b.VehiclePayment)
	if err != nil {
		return err
	}
	totals.ApplyTo(b)
	b.PaymentStatus = ResolvePaymentStatus(totals.PendingAmount, totals.VehicleBalance, totals.AdvancePaid, totals.VehicleAdvance)
	return nil
}
