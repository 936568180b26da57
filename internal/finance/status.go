package finance

import "freight-booking-backend/internal/domain"

// ResolvePaymentStatus maps balances to statuses. A balance at or below zero
// is completed; anything else is pending. The advance amounts are accepted
// but not consulted, so partial is never produced here.
func ResolvePaymentStatus(partyBalance, vehicleBalance, partyAdvance, vehicleAdvance domain.Amount) domain.PaymentStatus {
	return domain.PaymentStatus{
		PartyPaymentStatus:   statusForBalance(partyBalance),
		VehiclePaymentStatus: statusForBalance(vehicleBalance),
	}
}

func statusForBalance(balance domain.Amount) domain.PaymentState {
	if balance.Sign() <= 0 {
		return domain.PaymentStateCompleted
	}
	return domain.PaymentStatePending
}
