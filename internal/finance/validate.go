package finance

import (
	"fmt"
	"strings"

	"freight-booking-backend/internal/domain"
)

type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Err returns a ValidationError carrying every violation, or nil.
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return domain.ValidationError{Msg: "booking is invalid", Problems: r.Errors}
}

// ValidateBooking checks required fields and enumerated values. It reports
// each violation once and never panics, including for a nil booking.
func ValidateBooking(b *domain.Booking) ValidationResult {
	if b == nil {
		b = &domain.Booking{}
	}

	var problems []string
	seen := make(map[string]bool)
	add := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			problems = append(problems, msg)
		}
	}

	required := []struct {
		field string
		value string
	}{
		{"bookingNo", b.BookingNo},
		{"party.name", b.Party.Name},
		{"vehicle.vehicleNo", b.Vehicle.VehicleNo},
		{"journey.fromLocation", b.Journey.FromLocation},
		{"journey.toLocation", b.Journey.ToLocation},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			add(fmt.Sprintf("%s is required", r.field))
		}
	}

	if s := b.Delivery.Status; s != "" && !s.Valid() {
		add(fmt.Sprintf("delivery.status must be one of %s", joinValues(domain.DeliveryStatuses)))
	}
	if s := b.PaymentStatus.PartyPaymentStatus; s != "" && !s.Valid() {
		add(fmt.Sprintf("paymentStatus.partyPaymentStatus must be one of %s", joinValues(domain.PaymentStates)))
	}
	if s := b.PaymentStatus.VehiclePaymentStatus; s != "" && !s.Valid() {
		add(fmt.Sprintf("paymentStatus.vehiclePaymentStatus must be one of %s", joinValues(domain.PaymentStates)))
	}

	return ValidationResult{IsValid: len(problems) == 0, Errors: problems}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
