package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"hosteria/internal/db"
	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

// isOverlapViolation reports whether err is the exclusion constraint on
// (id_habitacion, daterange) firing, i.e. a concurrent double booking.
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23P01"
}

func (r *ReservationRepository) ListReservations() ([]entities.ReservationListItem, error) {
	query := `
	SELECT r.id, h.numero, r.fecha_desde, r.fecha_hasta,
	       g.nombre, g.apellido, g.telefono, g.dni, g.email,
	       r.monto_pagado, r.monto_total, r.id_estado_reserva
	FROM reservas r
	JOIN habitaciones h ON h.id = r.id_habitacion
	JOIN huespedes g ON g.id = r.id_huesped
	ORDER BY r.fecha_desde DESC`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	items := []entities.ReservationListItem{}
	for rows.Next() {
		var it entities.ReservationListItem
		var desde, hasta time.Time
		var nombre, apellido string
		if err := rows.Scan(
			&it.ID, &it.NumeroHab, &desde, &hasta,
			&nombre, &apellido, &it.TelefonoHuesped, &it.DNIHuesped, &it.EmailHuesped,
			&it.MontoPagado, &it.Total, &it.EstadoDeReserva,
		); err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		it.Ingreso = desde.Format("2006-01-02")
		it.Egreso = hasta.Format("2006-01-02")
		it.HuespedNombre = nombre + " " + apellido
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return items, nil
}

func (r *ReservationRepository) GetReservationByID(id int) (*db.Reservation, error) {
	var res db.Reservation
	err := r.DB.QueryRow(`
		SELECT id, id_huesped, id_habitacion, id_estado_reserva,
		       fecha_desde, fecha_hasta, monto_pagado, monto_total, cancelada
		FROM reservas WHERE id = $1`, id).Scan(
		&res.ID, &res.GuestID, &res.RoomID, &res.StateID,
		&res.CheckIn, &res.CheckOut, &res.AmountPaid, &res.AmountTotal, &res.Cancelled,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe reserva")
		}
		return nil, fmt.Errorf("error querying reservation %d: %w", id, err)
	}
	return &res, nil
}

// CreateReservation re-checks the room for an overlapping non-cancelled stay
// and inserts inside one transaction. The exclusion constraint on
// (id_habitacion, daterange) is the authoritative guard against concurrent
// writes; the explicit check just produces a friendlier error in the common
// sequential case. When newGuest is non-nil the guest row is inserted in the
// same transaction, so a rejected booking rolls it back too.
func (r *ReservationRepository) CreateReservation(res *db.Reservation, newGuest *db.Guest) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var overlapping int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM reservas
		WHERE id_habitacion = $1 AND NOT cancelada
		  AND fecha_desde < $3 AND fecha_hasta > $2`,
		res.RoomID, res.CheckIn, res.CheckOut,
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("error checking for overlapping reservations: %w", err)
	}
	if overlapping > 0 {
		return apperrors.NewConflictError("La habitación ya está reservada en ese rango de fechas")
	}

	if newGuest != nil {
		err = tx.QueryRow(`
			INSERT INTO huespedes (nombre, apellido, dni, telefono, email, origen)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			newGuest.FirstName, newGuest.LastName, newGuest.DocumentID,
			newGuest.Phone, newGuest.Email, newGuest.Origin,
		).Scan(&newGuest.ID)
		if err != nil {
			return fmt.Errorf("error inserting guest: %w", err)
		}
		res.GuestID = newGuest.ID
	}

	err = tx.QueryRow(`
		INSERT INTO reservas
		(id_huesped, id_habitacion, id_estado_reserva, fecha_desde, fecha_hasta, monto_pagado, monto_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, cancelada`,
		res.GuestID, res.RoomID, res.StateID,
		res.CheckIn, res.CheckOut, res.AmountPaid, res.AmountTotal,
	).Scan(&res.ID, &res.Cancelled)
	if err != nil {
		if isOverlapViolation(err) {
			return apperrors.NewConflictError("La habitación ya está reservada en ese rango de fechas")
		}
		return fmt.Errorf("error inserting reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isOverlapViolation(err) {
			return apperrors.NewConflictError("La habitación ya está reservada en ese rango de fechas")
		}
		return fmt.Errorf("error committing reservation: %w", err)
	}
	return nil
}

// UpdateReservation persists the full updated row, running the same overlap
// guard as creation but ignoring the reservation's own interval.
func (r *ReservationRepository) UpdateReservation(res *db.Reservation) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var overlapping int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM reservas
		WHERE id_habitacion = $1 AND NOT cancelada AND id <> $2
		  AND fecha_desde < $4 AND fecha_hasta > $3`,
		res.RoomID, res.ID, res.CheckIn, res.CheckOut,
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("error checking for overlapping reservations: %w", err)
	}
	if overlapping > 0 {
		return apperrors.NewConflictError("La habitación ya está reservada en ese rango de fechas")
	}

	result, err := tx.Exec(`
		UPDATE reservas
		SET id_huesped = $1, id_habitacion = $2, id_estado_reserva = $3,
		    fecha_desde = $4, fecha_hasta = $5, monto_pagado = $6, monto_total = $7
		WHERE id = $8`,
		res.GuestID, res.RoomID, res.StateID,
		res.CheckIn, res.CheckOut, res.AmountPaid, res.AmountTotal, res.ID,
	)
	if err != nil {
		if isOverlapViolation(err) {
			return apperrors.NewConflictError("La habitación ya está reservada en ese rango de fechas")
		}
		return fmt.Errorf("error updating reservation %d: %w", res.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading update result: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("No existe reserva")
	}

	if err := tx.Commit(); err != nil {
		if isOverlapViolation(err) {
			return apperrors.NewConflictError("La habitación ya está reservada en ese rango de fechas")
		}
		return fmt.Errorf("error committing reservation update: %w", err)
	}
	return nil
}

func (r *ReservationRepository) DeleteReservation(id int) error {
	result, err := r.DB.Exec(`DELETE FROM reservas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting reservation %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("No existe reserva")
	}
	return nil
}

func (r *ReservationRepository) GetReservationDetail(id int) (*entities.ReservationDetail, error) {
	var det entities.ReservationDetail
	var desde, hasta time.Time
	err := r.DB.QueryRow(`
		SELECT r.id, r.fecha_desde, r.fecha_hasta, r.monto_pagado, r.monto_total,
		       g.dni, g.telefono, g.email, g.origen,
		       h.numero, t.precio
		FROM reservas r
		JOIN huespedes g ON g.id = r.id_huesped
		JOIN habitaciones h ON h.id = r.id_habitacion
		JOIN tipos_habitacion t ON t.id = h.id_tipo_habitacion
		WHERE r.id = $1`, id).Scan(
		&det.IDReserva, &desde, &hasta, &det.MontoPagado, &det.MontoTotal,
		&det.Huesped.DNI, &det.Huesped.Telefono, &det.Huesped.Email, &det.Huesped.Origen,
		&det.Habitacion.Numero, &det.Habitacion.TipoHabitacion.Precio,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe reserva")
		}
		return nil, fmt.Errorf("error querying reservation detail %d: %w", id, err)
	}
	det.FechaDesde = desde.Format("2006-01-02")
	det.FechaHasta = hasta.Format("2006-01-02")
	return &det, nil
}

// ListStaysOverlapping fetches the non-cancelled reservations touching any day
// of the inclusive range [start, end], optionally restricted to roomIDs. The
// service derives per-day occupancy from these rows.
func (r *ReservationRepository) ListStaysOverlapping(start, end time.Time, roomIDs []int) ([]db.Reservation, error) {
	query := `
		SELECT id, id_huesped, id_habitacion, id_estado_reserva,
		       fecha_desde, fecha_hasta, monto_pagado, monto_total, cancelada
		FROM reservas
		WHERE NOT cancelada AND fecha_desde <= $2 AND fecha_hasta > $1`
	args := []interface{}{start, end}
	if len(roomIDs) > 0 {
		query += ` AND id_habitacion = ANY($3)`
		args = append(args, pq.Array(roomIDs))
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying overlapping stays: %w", err)
	}
	defer rows.Close()

	var stays []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := rows.Scan(
			&res.ID, &res.GuestID, &res.RoomID, &res.StateID,
			&res.CheckIn, &res.CheckOut, &res.AmountPaid, &res.AmountTotal, &res.Cancelled,
		); err != nil {
			return nil, fmt.Errorf("error scanning stay: %w", err)
		}
		stays = append(stays, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating stays: %w", err)
	}
	return stays, nil
}

// CurrentlyOccupiedCount counts distinct rooms with a stay covering the
// instant now (check-in inclusive, check-out exclusive).
func (r *ReservationRepository) CurrentlyOccupiedCount(now time.Time) (int, error) {
	var count int
	err := r.DB.QueryRow(`
		SELECT COUNT(DISTINCT id_habitacion) FROM reservas
		WHERE NOT cancelada AND fecha_desde <= $1 AND fecha_hasta > $1`, now,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting occupied rooms: %w", err)
	}
	return count, nil
}
