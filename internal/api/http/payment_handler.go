package http

import (
	"context"
	"net/http"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/finance"
	"freight-booking-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) RecordParty(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.payments.RecordPartyPayment)
}

func (h *PaymentHandler) RecordVehicle(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.payments.RecordVehiclePayment)
}

type recordPayment func(ctx context.Context, bookingID int64, in finance.PaymentInput) (*domain.Booking, error)

func (h *PaymentHandler) record(w http.ResponseWriter, r *http.Request, record recordPayment) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	var req paymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}

	b, err := record(r.Context(), id, in)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
