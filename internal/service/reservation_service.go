package service

import (
	"errors"
	"math"
	"time"

	"hosteria/internal/db"
	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
	"hosteria/internal/repository"
	"hosteria/internal/utils"
)

// Notifier sends best-effort booking notifications. A nil Notifier disables
// them without touching the booking flow.
type Notifier interface {
	NotifyReservationCreated(detail *entities.ReservationDetail, email, phone string)
}

type ReservationService struct {
	reservations *repository.ReservationRepository
	rooms        *repository.RoomRepository
	guests       *repository.GuestRepository
	states       *repository.StateRepository
	notifier     Notifier
}

func NewReservationService(
	reservations *repository.ReservationRepository,
	rooms *repository.RoomRepository,
	guests *repository.GuestRepository,
	states *repository.StateRepository,
	notifier Notifier,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		guests:       guests,
		states:       states,
		notifier:     notifier,
	}
}

func (s *ReservationService) ListReservations() ([]entities.ReservationListItem, error) {
	return s.reservations.ListReservations()
}

func (s *ReservationService) GetReservationDetail(id int) (*entities.ReservationDetail, error) {
	return s.reservations.GetReservationDetail(id)
}

// parseStay validates a date pair and returns the parsed bounds plus the
// number of nights. Check-out must be strictly after check-in.
func parseStay(desde, hasta string) (time.Time, time.Time, int, error) {
	checkIn, err := utils.ParseISODate(desde)
	if err != nil {
		return time.Time{}, time.Time{}, 0, apperrors.NewValidationError("Fecha desde inválida")
	}
	checkOut, err := utils.ParseISODate(hasta)
	if err != nil {
		return time.Time{}, time.Time{}, 0, apperrors.NewValidationError("Fecha hasta inválida")
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		return time.Time{}, time.Time{}, 0, apperrors.NewValidationError("Rango de fechas inválido")
	}
	return checkIn, checkOut, nights, nil
}

// totalForStay snapshots the price at booking time: nightly rate times nights,
// rounded to cents. The client never supplies the total.
func totalForStay(nightlyRate float64, nights int) float64 {
	return math.Round(nightlyRate*float64(nights)*100) / 100
}

// resolveGuest validates the guest reference without persisting anything.
// An inline guest comes back with ID 0 and is inserted by the repository in
// the same transaction as the reservation, so a failed booking never leaves
// an orphan guest row. Every guest field is required.
func (s *ReservationService) resolveGuest(req *entities.CreateReservationRequest) (*db.Guest, error) {
	if req.IDHuesped != nil {
		guest, err := s.guests.GetGuestByID(*req.IDHuesped)
		if err != nil {
			var httpErr *apperrors.HTTPError
			if errors.As(err, &httpErr) && httpErr.Code == 404 {
				return nil, apperrors.NewValidationError("Huésped no válido")
			}
			return nil, err
		}
		return guest, nil
	}
	if req.Huesped == nil {
		return nil, apperrors.NewValidationError("Debe indicar un huésped")
	}
	p := req.Huesped
	if p.Nombre == "" || p.Apellido == "" || p.DNI == "" ||
		p.Telefono == "" || p.Email == "" || p.Origen == "" {
		return nil, apperrors.NewValidationError("Datos de huésped incompletos")
	}
	return &db.Guest{
		FirstName:  p.Nombre,
		LastName:   p.Apellido,
		DocumentID: p.DNI,
		Phone:      p.Telefono,
		Email:      p.Email,
		Origin:     p.Origen,
	}, nil
}

func (s *ReservationService) resolveState(stateID int) (int, error) {
	if stateID != 0 {
		state, err := s.states.GetStateByID(stateID)
		if err != nil {
			var httpErr *apperrors.HTTPError
			if errors.As(err, &httpErr) && httpErr.Code == 404 {
				return 0, apperrors.NewValidationError("Estado de reserva no válido")
			}
			return 0, err
		}
		return state.ID, nil
	}
	state, err := s.states.GetDefaultState()
	if err != nil {
		return 0, err
	}
	return state.ID, nil
}

// CreateReservation validates the booking, snapshots the total from the
// room's nightly rate and persists it, rejecting overlaps on the same room.
func (s *ReservationService) CreateReservation(req *entities.CreateReservationRequest) (*entities.ReservationDetail, error) {
	checkIn, checkOut, nights, err := parseStay(req.FechaDesde, req.FechaHasta)
	if err != nil {
		return nil, err
	}

	rate, err := s.rooms.GetNightlyRate(req.IDHabitacion)
	if err != nil {
		return nil, err
	}
	total := totalForStay(rate, nights)
	if req.MontoPagado < 0 {
		return nil, apperrors.NewValidationError("El monto pagado no puede ser negativo")
	}
	if req.MontoPagado > total {
		return nil, apperrors.NewValidationError("La seña no puede ser mayor al monto total")
	}

	stateID, err := s.resolveState(req.IDEstadoReserva)
	if err != nil {
		return nil, err
	}
	guest, err := s.resolveGuest(req)
	if err != nil {
		return nil, err
	}
	var newGuest *db.Guest
	if guest.ID == 0 {
		newGuest = guest
	}

	res := &db.Reservation{
		GuestID:     guest.ID,
		RoomID:      req.IDHabitacion,
		StateID:     stateID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		AmountPaid:  req.MontoPagado,
		AmountTotal: total,
	}
	if err := s.reservations.CreateReservation(res, newGuest); err != nil {
		return nil, err
	}

	detail, err := s.reservations.GetReservationDetail(res.ID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyReservationCreated(detail, guest.Email, guest.Phone)
	}
	return detail, nil
}

// UpdateReservation applies a partial update and re-runs every creation
// check against the resulting row: the total is recomputed from the final
// room and dates, never carried over blindly.
func (s *ReservationService) UpdateReservation(id int, req *entities.UpdateReservationRequest) (*entities.ReservationDetail, error) {
	current, err := s.reservations.GetReservationByID(id)
	if err != nil {
		return nil, err
	}

	desde := current.CheckIn.Format(utils.ISODate)
	hasta := current.CheckOut.Format(utils.ISODate)
	if req.FechaDesde != nil {
		desde = *req.FechaDesde
	}
	if req.FechaHasta != nil {
		hasta = *req.FechaHasta
	}
	checkIn, checkOut, nights, err := parseStay(desde, hasta)
	if err != nil {
		return nil, err
	}

	roomID := current.RoomID
	if req.IDHabitacion != nil {
		roomID = *req.IDHabitacion
	}
	rate, err := s.rooms.GetNightlyRate(roomID)
	if err != nil {
		return nil, err
	}
	total := totalForStay(rate, nights)

	paid := current.AmountPaid
	if req.MontoPagado != nil {
		paid = *req.MontoPagado
	}
	if paid < 0 {
		return nil, apperrors.NewValidationError("El monto pagado no puede ser negativo")
	}
	if paid > total {
		return nil, apperrors.NewValidationError("La seña no puede ser mayor al monto total")
	}

	guestID := current.GuestID
	if req.IDHuesped != nil {
		guest, err := s.guests.GetGuestByID(*req.IDHuesped)
		if err != nil {
			var httpErr *apperrors.HTTPError
			if errors.As(err, &httpErr) && httpErr.Code == 404 {
				return nil, apperrors.NewValidationError("Huésped no válido")
			}
			return nil, err
		}
		guestID = guest.ID
	}

	stateID := current.StateID
	if req.IDEstadoReserva != nil {
		stateID, err = s.resolveState(*req.IDEstadoReserva)
		if err != nil {
			return nil, err
		}
	}

	updated := &db.Reservation{
		ID:          id,
		GuestID:     guestID,
		RoomID:      roomID,
		StateID:     stateID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		AmountPaid:  paid,
		AmountTotal: total,
	}
	if err := s.reservations.UpdateReservation(updated); err != nil {
		return nil, err
	}
	return s.reservations.GetReservationDetail(id)
}

func (s *ReservationService) DeleteReservation(id int) error {
	return s.reservations.DeleteReservation(id)
}

// Calendar returns the fully booked days of the requested window over the
// requested room subset (all enabled rooms when none is given).
func (s *ReservationService) Calendar(fromStr, toStr, roomIDsRaw string, now time.Time) (*entities.CalendarResponse, error) {
	start, end := utils.DefaultCalendarRange(now)
	if fromStr != "" {
		parsed, err := utils.ParseISODate(fromStr)
		if err != nil {
			return nil, apperrors.NewValidationError("Fecha desde inválida")
		}
		start = parsed
	}
	if toStr != "" {
		parsed, err := utils.ParseISODate(toStr)
		if err != nil {
			return nil, apperrors.NewValidationError("Fecha hasta inválida")
		}
		end = parsed
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("Rango de fechas inválido")
	}

	roomIDs, err := s.rooms.ListEnabledRoomIDs(utils.ParseIDList(roomIDsRaw))
	if err != nil {
		return nil, err
	}
	stays, err := s.reservations.ListStaysOverlapping(start, end, roomIDs)
	if err != nil {
		return nil, err
	}
	return &entities.CalendarResponse{
		FullyBookedDates: fullyBookedDays(stays, roomIDs, start, end),
	}, nil
}

// AvailableRooms lists the enabled rooms free on the given day (today when
// the day is empty).
func (s *ReservationService) AvailableRooms(dateStr string, now time.Time) ([]entities.RoomResponse, error) {
	day := utils.TruncateToDay(now)
	if dateStr != "" {
		parsed, err := utils.ParseISODate(dateStr)
		if err != nil {
			return nil, apperrors.NewValidationError("Fecha inválida")
		}
		day = parsed
	}

	rooms, err := s.rooms.ListEnabledRooms()
	if err != nil {
		return nil, err
	}
	roomIDs := make([]int, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.IDHabitacion)
	}
	stays, err := s.reservations.ListStaysOverlapping(day, day, roomIDs)
	if err != nil {
		return nil, err
	}

	free := freeRoomIDs(stays, roomIDs, day)
	available := []entities.RoomResponse{}
	for _, room := range rooms {
		if free[room.IDHabitacion] {
			available = append(available, room)
		}
	}
	return available, nil
}
