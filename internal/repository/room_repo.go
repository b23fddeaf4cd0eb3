package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"hosteria/internal/db"
	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
)

// RoomRepository covers the room catalog: habitaciones plus their reference
// tables (tipos_habitacion, estados_habitacion).
type RoomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(database *sql.DB) *RoomRepository {
	return &RoomRepository{DB: database}
}

func (r *RoomRepository) ListRooms() ([]entities.RoomResponse, error) {
	rows, err := r.DB.Query(`
		SELECT h.id, h.numero, t.nombre, t.precio, e.estado, h.habilitada
		FROM habitaciones h
		JOIN tipos_habitacion t ON t.id = h.id_tipo_habitacion
		JOIN estados_habitacion e ON e.id = h.id_estado_habitacion
		ORDER BY h.numero`)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	list := []entities.RoomResponse{}
	for rows.Next() {
		var room entities.RoomResponse
		if err := rows.Scan(&room.IDHabitacion, &room.Numero, &room.Tipo, &room.Precio, &room.Estado, &room.Habilitada); err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		list = append(list, room)
	}
	return list, rows.Err()
}

func (r *RoomRepository) GetRoomByID(id int) (*db.Room, error) {
	var room db.Room
	err := r.DB.QueryRow(`
		SELECT id, numero, id_tipo_habitacion, id_estado_habitacion, habilitada
		FROM habitaciones WHERE id = $1`, id).Scan(
		&room.ID, &room.Number, &room.RoomTypeID, &room.RoomStateID, &room.Enabled,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe habitación")
		}
		return nil, fmt.Errorf("error querying room %d: %w", id, err)
	}
	return &room, nil
}

// GetNightlyRate reads the room's current rate from its type. Used once at
// booking time to snapshot the price into monto_total.
func (r *RoomRepository) GetNightlyRate(roomID int) (float64, error) {
	var rate float64
	err := r.DB.QueryRow(`
		SELECT t.precio FROM habitaciones h
		JOIN tipos_habitacion t ON t.id = h.id_tipo_habitacion
		WHERE h.id = $1`, roomID).Scan(&rate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperrors.NewValidationError("Habitación no válida")
		}
		return 0, fmt.Errorf("error querying nightly rate for room %d: %w", roomID, err)
	}
	return rate, nil
}

// ListEnabledRoomIDs resolves the room universe for calendar queries: all
// enabled rooms, or the enabled subset of the given ids.
func (r *RoomRepository) ListEnabledRoomIDs(subset []int) ([]int, error) {
	query := `SELECT id FROM habitaciones WHERE habilitada`
	args := []interface{}{}
	if len(subset) > 0 {
		query += ` AND id = ANY($1)`
		args = append(args, pq.Array(subset))
	}
	query += ` ORDER BY id`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying enabled rooms: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning room id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListEnabledRooms returns the enabled rooms with display fields, for the
// single-day availability endpoint.
func (r *RoomRepository) ListEnabledRooms() ([]entities.RoomResponse, error) {
	rows, err := r.DB.Query(`
		SELECT h.id, h.numero, t.nombre, t.precio, e.estado, h.habilitada
		FROM habitaciones h
		JOIN tipos_habitacion t ON t.id = h.id_tipo_habitacion
		JOIN estados_habitacion e ON e.id = h.id_estado_habitacion
		WHERE h.habilitada
		ORDER BY h.numero`)
	if err != nil {
		return nil, fmt.Errorf("error querying enabled rooms: %w", err)
	}
	defer rows.Close()

	list := []entities.RoomResponse{}
	for rows.Next() {
		var room entities.RoomResponse
		if err := rows.Scan(&room.IDHabitacion, &room.Numero, &room.Tipo, &room.Precio, &room.Estado, &room.Habilitada); err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		list = append(list, room)
	}
	return list, rows.Err()
}

func (r *RoomRepository) CountEnabledRooms() (int, error) {
	var count int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM habitaciones WHERE habilitada`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting rooms: %w", err)
	}
	return count, nil
}

func (r *RoomRepository) CreateRoom(room *db.Room) error {
	err := r.DB.QueryRow(`
		INSERT INTO habitaciones (numero, id_tipo_habitacion, id_estado_habitacion, habilitada)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		room.Number, room.RoomTypeID, room.RoomStateID, room.Enabled,
	).Scan(&room.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.NewValidationError("Ya existe una habitación con ese número")
		}
		return fmt.Errorf("error inserting room: %w", err)
	}
	return nil
}

func (r *RoomRepository) UpdateRoom(room *db.Room) error {
	result, err := r.DB.Exec(`
		UPDATE habitaciones
		SET numero = $1, id_tipo_habitacion = $2, id_estado_habitacion = $3, habilitada = $4
		WHERE id = $5`,
		room.Number, room.RoomTypeID, room.RoomStateID, room.Enabled, room.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.NewValidationError("Ya existe una habitación con ese número")
		}
		return fmt.Errorf("error updating room %d: %w", room.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading result: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("No existe habitación")
	}
	return nil
}

// DeleteRoom hard-deletes a room. Rooms referenced by reservations are
// protected by the foreign key; surface that as a validation error.
func (r *RoomRepository) DeleteRoom(id int) error {
	result, err := r.DB.Exec(`DELETE FROM habitaciones WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return apperrors.NewValidationError("La habitación tiene reservas asociadas")
		}
		return fmt.Errorf("error deleting room %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading result: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("No existe habitación")
	}
	return nil
}

// ---- tipos_habitacion ----

func (r *RoomRepository) ListRoomTypes() ([]db.RoomType, error) {
	rows, err := r.DB.Query(`SELECT id, nombre, precio FROM tipos_habitacion ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("error querying room types: %w", err)
	}
	defer rows.Close()

	var types []db.RoomType
	for rows.Next() {
		var t db.RoomType
		if err := rows.Scan(&t.ID, &t.Name, &t.Price); err != nil {
			return nil, fmt.Errorf("error scanning room type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *RoomRepository) GetRoomTypeByID(id int) (*db.RoomType, error) {
	var t db.RoomType
	err := r.DB.QueryRow(`SELECT id, nombre, precio FROM tipos_habitacion WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe tipo de habitación")
		}
		return nil, fmt.Errorf("error querying room type %d: %w", id, err)
	}
	return &t, nil
}

func (r *RoomRepository) CreateRoomType(t *db.RoomType) error {
	err := r.DB.QueryRow(`INSERT INTO tipos_habitacion (nombre, precio) VALUES ($1, $2) RETURNING id`,
		t.Name, t.Price).Scan(&t.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.NewValidationError("Ya existe un tipo de habitación con ese nombre")
		}
		return fmt.Errorf("error inserting room type: %w", err)
	}
	return nil
}

func (r *RoomRepository) UpdateRoomType(t *db.RoomType) error {
	result, err := r.DB.Exec(`UPDATE tipos_habitacion SET nombre = $1, precio = $2 WHERE id = $3`,
		t.Name, t.Price, t.ID)
	if err != nil {
		return fmt.Errorf("error updating room type %d: %w", t.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading result: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("No existe tipo de habitación")
	}
	return nil
}

// ---- estados_habitacion ----

func (r *RoomRepository) ListRoomStates() ([]db.RoomState, error) {
	rows, err := r.DB.Query(`SELECT id, estado FROM estados_habitacion ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying room states: %w", err)
	}
	defer rows.Close()

	var states []db.RoomState
	for rows.Next() {
		var s db.RoomState
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("error scanning room state: %w", err)
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

func (r *RoomRepository) GetRoomStateByID(id int) (*db.RoomState, error) {
	var s db.RoomState
	err := r.DB.QueryRow(`SELECT id, estado FROM estados_habitacion WHERE id = $1`, id).
		Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe estado de habitación")
		}
		return nil, fmt.Errorf("error querying room state %d: %w", id, err)
	}
	return &s, nil
}

func (r *RoomRepository) CreateRoomState(s *db.RoomState) error {
	err := r.DB.QueryRow(`INSERT INTO estados_habitacion (estado) VALUES ($1) RETURNING id`, s.Name).
		Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error inserting room state: %w", err)
	}
	return nil
}
