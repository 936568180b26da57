package http

import (
	"fmt"
	"net/http"
	"strings"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/export"
	"freight-booking-backend/internal/service"
)

type LedgerHandler struct {
	ledger service.LedgerService
}

func NewLedgerHandler(ledger service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

func (h *LedgerHandler) Booking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	entries, err := h.ledger.GetBookingLedger(r.Context(), id)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Report returns the ledger over every booking matching the list filters,
// as JSON or as an xlsx/pdf download depending on ?format.
func (h *LedgerHandler) Report(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBookingFilter(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}

	format := strings.TrimSpace(r.URL.Query().Get("format"))
	if format == "" || strings.EqualFold(format, "json") {
		report, err := h.ledger.GetLedgerReport(r.Context(), filter)
		if err != nil {
			RespondDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
		return
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	file, err := h.ledger.ExportLedgerReport(r.Context(), filter, f)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", fmt.Sprint(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}
