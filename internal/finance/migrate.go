package finance

import "freight-booking-backend/internal/domain"

// IsLegacyCharges reports whether charges still use the pre deal/advance
// structure: no deal amount and at least one legacy field set.
func IsLegacyCharges(c domain.Charges) bool {
	if !c.DealAmount.IsZero() {
		return false
	}
	for _, v := range []domain.Amount{c.VehicleCostParty, c.OtherCharges, c.TotalAmount, c.PartyAdvance, c.PartyBalance} {
		if !v.IsZero() {
			return true
		}
	}
	return false
}

// MigrateLegacyCharges rewrites legacy charge fields into the current
// structure. Bookings that are not in the legacy shape are returned unchanged
// with false, which makes the migration idempotent.
func MigrateLegacyCharges(b domain.Booking) (domain.Booking, bool) {
	c := b.Charges
	if !IsLegacyCharges(c) {
		return b, false
	}

	c.DealAmount = c.VehicleCostParty
	c.AdvancePaid = c.PartyAdvance
	c.VehicleCharges = domain.Amount{}
	c.LocalCharges = domain.Amount{}
	c.Other = c.OtherCharges
	c.PendingAmount = c.VehicleCostParty.Sub(c.PartyAdvance)
	c.SubTotal = c.TotalAmount
	c.PreviousAmount = c.VehicleCostParty
	c.FinalPendingAmount = c.PartyBalance

	b.Charges = c
	return b, true
}

// MigrationReport aggregates the outcome of a migration pass.
type MigrationReport struct {
	Total    int              `json:"total"`
	Migrated int              `json:"migrated"`
	Skipped  int              `json:"skipped"`
	Failed   int              `json:"failed"`
	Errors   []MigrationError `json:"errors"`
}

type MigrationError struct {
	BookingID int64  `json:"bookingId"`
	BookingNo string `json:"bookingNo"`
	Error     string `json:"error"`
}

func (r *MigrationReport) Fail(b domain.Booking, err error) {
	r.Failed++
	r.Errors = append(r.Errors, MigrationError{BookingID: b.ID, BookingNo: b.BookingNo, Error: err.Error()})
}
