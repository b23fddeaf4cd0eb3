package api

import (
	"encoding/json"
	"net/http"

	"hosteria/internal/db"
	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
	"hosteria/internal/repository"
)

// CatalogHandler serves the small lookup tables: room types, room states and
// reservation states.
type CatalogHandler struct {
	Rooms  *repository.RoomRepository
	States *repository.StateRepository
}

func NewCatalogHandler(rooms *repository.RoomRepository, states *repository.StateRepository) *CatalogHandler {
	return &CatalogHandler{Rooms: rooms, States: states}
}

func (h *CatalogHandler) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Rooms.ListRoomTypes()
	if err != nil {
		respondError(w, err)
		return
	}
	resp := []entities.RoomTypeResponse{}
	for _, t := range types {
		resp = append(resp, entities.RoomTypeResponse{
			IDTipoHabitacion: t.ID, Nombre: t.Name, Precio: t.Price,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) CreateRoomType(w http.ResponseWriter, r *http.Request) {
	var req entities.RoomTypeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	if req.Nombre == "" || req.Precio < 0 {
		respondError(w, apperrors.NewValidationError("Nombre y precio válidos son obligatorios"))
		return
	}
	roomType := &db.RoomType{Name: req.Nombre, Price: req.Precio}
	if err := h.Rooms.CreateRoomType(roomType); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entities.RoomTypeResponse{
		IDTipoHabitacion: roomType.ID, Nombre: roomType.Name, Precio: roomType.Price,
	})
}

// UpdateRoomType changes a type's name or nightly rate. Existing reservations
// keep their snapshotted totals; only future bookings pick up the new price.
func (h *CatalogHandler) UpdateRoomType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	current, err := h.Rooms.GetRoomTypeByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	var req entities.RoomTypeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	if req.Nombre != "" {
		current.Name = req.Nombre
	}
	if req.Precio > 0 {
		current.Price = req.Precio
	}
	if err := h.Rooms.UpdateRoomType(current); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entities.RoomTypeResponse{
		IDTipoHabitacion: current.ID, Nombre: current.Name, Precio: current.Price,
	})
}

func (h *CatalogHandler) ListRoomStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.Rooms.ListRoomStates()
	if err != nil {
		respondError(w, err)
		return
	}
	resp := []entities.RoomStateResponse{}
	for _, s := range states {
		resp = append(resp, entities.RoomStateResponse{IDEstadoHabitacion: s.ID, Estado: s.Name})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) CreateRoomState(w http.ResponseWriter, r *http.Request) {
	var req entities.RoomStateResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	if req.Estado == "" {
		respondError(w, apperrors.NewValidationError("El estado es obligatorio"))
		return
	}
	state := &db.RoomState{Name: req.Estado}
	if err := h.Rooms.CreateRoomState(state); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entities.RoomStateResponse{IDEstadoHabitacion: state.ID, Estado: state.Name})
}

func (h *CatalogHandler) ListReservationStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.States.ListStates()
	if err != nil {
		respondError(w, err)
		return
	}
	resp := []entities.ReservationStateResponse{}
	for _, s := range states {
		resp = append(resp, entities.ReservationStateResponse{
			IDEstadoReserva: s.ID,
			Nombre:          s.Name,
			Descripcion:     s.Description,
			Prioridad:       s.Priority,
			EsDefault:       s.IsDefault,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}
