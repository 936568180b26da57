package http

import (
	"net/http"

	"freight-booking-backend/internal/service"
)

type PartyHandler struct {
	parties service.PartyService
}

func NewPartyHandler(parties service.PartyService) *PartyHandler {
	return &PartyHandler{parties: parties}
}

func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pagination(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	parties, total, err := h.parties.ListParties(r.Context(), r.URL.Query().Get("q"), page, pageSize)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(parties, total, page, pageSize))
}

func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req partyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	party := req.toParty(0)
	if err := h.parties.CreateParty(r.Context(), party); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, party)
}

func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	party, err := h.parties.GetParty(r.Context(), id)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, party)
}

func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	var req partyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	party := req.toParty(id)
	if err := h.parties.UpdateParty(r.Context(), party); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, party)
}

func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	if err := h.parties.DeleteParty(r.Context(), id); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pagination(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	vehicles, total, err := h.vehicles.ListVehicles(r.Context(), r.URL.Query().Get("q"), page, pageSize)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(vehicles, total, page, pageSize))
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	vehicle := req.toVehicle(0)
	if err := h.vehicles.CreateVehicle(r.Context(), vehicle); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	vehicle, err := h.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	var req vehicleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	vehicle := req.toVehicle(id)
	if err := h.vehicles.UpdateVehicle(r.Context(), vehicle); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		RespondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pagination(r *http.Request) (int32, int32, error) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := queryInt(r, "pageSize", 20)
	if err != nil {
		return 0, 0, err
	}
	if page == 0 {
		page = 1
	}
	if pageSize == 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, nil
}
