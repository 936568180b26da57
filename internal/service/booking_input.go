package service

import (
	"strings"
	"time"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/storage"
)

// BookingInput carries the parts of a booking present in a request. Nil parts
// keep their stored value on update and stay empty on create.
type BookingInput struct {
	BookingNo      *string
	BookingDate    *time.Time
	GSTIN          *string
	Party          *domain.PartySnapshot
	Vehicle        *domain.VehicleSnapshot
	Journey        *domain.Journey
	Delivery       *domain.Delivery
	Charges        *domain.Charges
	VehiclePayment *domain.VehiclePayment
	PaymentStatus  *domain.PaymentStatus

	// Master data ids. The snapshot is copied from the stored party or
	// vehicle when the request does not carry one.
	PartyID   *int64
	VehicleID *int64
}

type DeliveryInput struct {
	Status  *domain.DeliveryStatus
	Remarks *string
	Proof   *storage.Upload
}

// applyTo merges the input into b. Payment histories are append-only and
// the proof image only changes through an upload, so neither is taken from
// the input of an existing booking.
func (in BookingInput) applyTo(b *domain.Booking) {
	existing := b.ID != 0

	if in.BookingNo != nil {
		b.BookingNo = strings.TrimSpace(*in.BookingNo)
	}
	if in.BookingDate != nil && !in.BookingDate.IsZero() {
		b.BookingDate = *in.BookingDate
	}
	if in.GSTIN != nil {
		b.GSTIN = strings.TrimSpace(*in.GSTIN)
	}
	if in.Party != nil {
		b.Party = trimParty(*in.Party)
	}
	if in.Vehicle != nil {
		b.Vehicle = trimVehicle(*in.Vehicle)
	}
	if in.Journey != nil {
		b.Journey = domain.Journey{
			FromLocation: strings.TrimSpace(in.Journey.FromLocation),
			ToLocation:   strings.TrimSpace(in.Journey.ToLocation),
		}
	}
	if in.Delivery != nil {
		if in.Delivery.Status != "" {
			b.Delivery.Status = in.Delivery.Status
		}
		b.Delivery.Remarks = in.Delivery.Remarks
	}
	if in.Charges != nil {
		history := b.Charges.PaymentHistory
		b.Charges = *in.Charges
		if existing {
			b.Charges.PaymentHistory = history
		}
	}
	if in.VehiclePayment != nil {
		history := b.VehiclePayment.PaymentHistory
		b.VehiclePayment = *in.VehiclePayment
		if existing {
			b.VehiclePayment.PaymentHistory = history
		}
	}
	if in.PaymentStatus != nil {
		b.PaymentStatus = *in.PaymentStatus
	}
}

func trimParty(p domain.PartySnapshot) domain.PartySnapshot {
	return domain.PartySnapshot{
		Name:      strings.TrimSpace(p.Name),
		Address:   strings.TrimSpace(p.Address),
		Contact:   strings.TrimSpace(p.Contact),
		GSTNumber: strings.TrimSpace(p.GSTNumber),
	}
}

func trimVehicle(v domain.VehicleSnapshot) domain.VehicleSnapshot {
	return domain.VehicleSnapshot{
		VehicleNo:    strings.TrimSpace(v.VehicleNo),
		OwnerName:    strings.TrimSpace(v.OwnerName),
		OwnerContact: strings.TrimSpace(v.OwnerContact),
		VehicleType:  strings.TrimSpace(v.VehicleType),
	}
}
