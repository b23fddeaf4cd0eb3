package api

import (
	"encoding/json"
	"net/http"

	"hosteria/internal/db"
	apperrors "hosteria/internal/errors"
	"hosteria/internal/repository"
)

type RoomHandler struct {
	Rooms *repository.RoomRepository
}

func NewRoomHandler(rooms *repository.RoomRepository) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

type roomRequest struct {
	Numero             int   `json:"numero"`
	IDTipoHabitacion   int   `json:"idTipoHabitacion"`
	IDEstadoHabitacion int   `json:"idEstadoHabitacion"`
	Habilitada         *bool `json:"habilitada,omitempty"`
}

func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Rooms.ListRooms()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	if req.Numero <= 0 || req.IDTipoHabitacion <= 0 || req.IDEstadoHabitacion <= 0 {
		respondError(w, apperrors.NewValidationError("Número, tipo y estado de habitación son obligatorios"))
		return
	}
	enabled := true
	if req.Habilitada != nil {
		enabled = *req.Habilitada
	}
	room := &db.Room{
		Number:      req.Numero,
		RoomTypeID:  req.IDTipoHabitacion,
		RoomStateID: req.IDEstadoHabitacion,
		Enabled:     enabled,
	}
	if err := h.Rooms.CreateRoom(room); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int{"idHabitacion": room.ID})
}

func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	current, err := h.Rooms.GetRoomByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	if req.Numero > 0 {
		current.Number = req.Numero
	}
	if req.IDTipoHabitacion > 0 {
		current.RoomTypeID = req.IDTipoHabitacion
	}
	if req.IDEstadoHabitacion > 0 {
		current.RoomStateID = req.IDEstadoHabitacion
	}
	if req.Habilitada != nil {
		current.Enabled = *req.Habilitada
	}
	if err := h.Rooms.UpdateRoom(current); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Habitación actualizada"})
}

func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Rooms.DeleteRoom(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Habitación eliminada"})
}
