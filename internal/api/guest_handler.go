package api

import (
	"encoding/json"
	"net/http"

	"hosteria/internal/db"
	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
	"hosteria/internal/repository"
)

type GuestHandler struct {
	Guests *repository.GuestRepository
}

func NewGuestHandler(guests *repository.GuestRepository) *GuestHandler {
	return &GuestHandler{Guests: guests}
}

func guestResponse(g *db.Guest) entities.GuestResponse {
	return entities.GuestResponse{
		IDHuesped: g.ID,
		Nombre:    g.FirstName,
		Apellido:  g.LastName,
		DNI:       g.DocumentID,
		Telefono:  g.Phone,
		Email:     g.Email,
		Origen:    g.Origin,
	}
}

func (h *GuestHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.Guests.ListGuests()
	if err != nil {
		respondError(w, err)
		return
	}
	resp := []entities.GuestResponse{}
	for i := range guests {
		resp = append(resp, guestResponse(&guests[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *GuestHandler) GetGuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	guest, err := h.Guests.GetGuestByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, guestResponse(guest))
}

func (h *GuestHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req entities.GuestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	if req.Nombre == "" || req.Apellido == "" || req.DNI == "" ||
		req.Telefono == "" || req.Email == "" || req.Origen == "" {
		respondError(w, apperrors.NewValidationError("Todos los datos del huésped son obligatorios"))
		return
	}
	guest := &db.Guest{
		FirstName:  req.Nombre,
		LastName:   req.Apellido,
		DocumentID: req.DNI,
		Phone:      req.Telefono,
		Email:      req.Email,
		Origin:     req.Origen,
	}
	if err := h.Guests.CreateGuest(guest); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, guestResponse(guest))
}

func (h *GuestHandler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	current, err := h.Guests.GetGuestByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	var req entities.GuestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	if req.Nombre != "" {
		current.FirstName = req.Nombre
	}
	if req.Apellido != "" {
		current.LastName = req.Apellido
	}
	if req.DNI != "" {
		current.DocumentID = req.DNI
	}
	if req.Telefono != "" {
		current.Phone = req.Telefono
	}
	if req.Email != "" {
		current.Email = req.Email
	}
	if req.Origen != "" {
		current.Origin = req.Origen
	}
	if err := h.Guests.UpdateGuest(current); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, guestResponse(current))
}

func (h *GuestHandler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Guests.DeleteGuest(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Huésped eliminado"})
}
