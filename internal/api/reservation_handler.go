package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
	"hosteria/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, apperrors.NewValidationError("Id inválido")
	}
	return id, nil
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListReservations()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	detail, err := h.Service.GetReservationDetail(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	detail, err := h.Service.CreateReservation(&req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, detail)
}

func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req entities.UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	detail, err := h.Service.UpdateReservation(id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Service.DeleteReservation(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Reserva eliminada"})
}

// Calendar answers GET /reservas/calendario with the fully booked days of the
// requested window.
func (h *ReservationHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := h.Service.Calendar(
		query.Get("desde"), query.Get("hasta"), query.Get("habitacionesIds"), time.Now(),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// AvailableRooms answers GET /habitaciones/disponibles for a single day.
func (h *ReservationHandler) AvailableRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Service.AvailableRooms(r.URL.Query().Get("date"), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rooms)
}
