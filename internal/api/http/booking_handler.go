package http

import (
	"net/http"
	"strings"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/service"
)

const maxPageSize = 500

type BookingHandler struct {
	bookings  service.BookingService
	maxUpload int64
}

func NewBookingHandler(bookings service.BookingService, maxUpload int64) *BookingHandler {
	return &BookingHandler{bookings: bookings, maxUpload: maxUpload}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBookingFilter(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	bookings, total, err := h.bookings.ListBookings(r.Context(), filter)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(bookings, total, filter.Page, filter.PageSize))
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBookingRequest(w, r, h.maxUpload)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	defer req.Close()

	b, err := h.bookings.CreateBooking(r.Context(), req.Input, req.Proof)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	b, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	req, err := decodeBookingRequest(w, r, h.maxUpload)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	defer req.Close()

	b, err := h.bookings.UpdateBooking(r.Context(), id, req.Input, req.Proof)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	if err := h.bookings.DeleteBooking(r.Context(), id); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateDelivery accepts JSON or a multipart form carrying status, remarks
// and an optional proofImage file.
func (h *BookingHandler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}

	var in service.DeliveryInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, err := decodeBookingRequest(w, r, h.maxUpload)
		if err != nil {
			RespondDomainError(w, r, err)
			return
		}
		defer req.Close()
		if s := req.fields.str("status"); s != nil {
			status := domain.DeliveryStatus(strings.TrimSpace(*s))
			in.Status = &status
		}
		in.Remarks = req.fields.str("remarks")
		in.Proof = req.Proof
	} else {
		var body deliveryRequest
		if err := decodeJSON(w, r, &body); err != nil {
			RespondDomainError(w, r, err)
			return
		}
		in.Status = body.Status
		in.Remarks = body.Remarks
	}

	b, err := h.bookings.UpdateDelivery(r.Context(), id, in)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) MigrateStructure(w http.ResponseWriter, r *http.Request) {
	report, err := h.bookings.MigrateBookingStructures(r.Context())
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// parseBookingFilter reads list filters from the query string. Dates accept
// YYYY-MM-DD or RFC 3339; "to" on a bare date covers that whole day.
func parseBookingFilter(r *http.Request) (domain.BookingFilter, error) {
	q := r.URL.Query()
	filter := domain.BookingFilter{
		PartyName:          strings.TrimSpace(q.Get("party")),
		VehicleNo:          strings.TrimSpace(q.Get("vehicle")),
		DeliveryStatus:     domain.DeliveryStatus(strings.TrimSpace(q.Get("deliveryStatus"))),
		PartyPaymentStatus: domain.PaymentState(strings.TrimSpace(q.Get("partyPaymentStatus"))),
		Query:              strings.TrimSpace(q.Get("q")),
		SortBy:             q.Get("sort"),
		Order:              q.Get("order"),
	}

	if filter.DeliveryStatus != "" && !filter.DeliveryStatus.Valid() {
		return filter, domain.ValidationError{Field: "deliveryStatus", Msg: "unknown delivery status"}
	}
	if filter.PartyPaymentStatus != "" && !filter.PartyPaymentStatus.Valid() {
		return filter, domain.ValidationError{Field: "partyPaymentStatus", Msg: "unknown payment status"}
	}

	if raw := q.Get("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return filter, domain.ValidationError{Field: "from", Msg: "must be a date"}
		}
		filter.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return filter, domain.ValidationError{Field: "to", Msg: "must be a date"}
		}
		if len(strings.TrimSpace(raw)) == len("2006-01-02") {
			to = to.AddDate(0, 0, 1).Add(-1)
		}
		filter.To = &to
	}

	var err error
	if filter.Page, err = queryInt(r, "page", 1); err != nil {
		return filter, err
	}
	if filter.PageSize, err = queryInt(r, "pageSize", 0); err != nil {
		return filter, err
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	return filter, nil
}
