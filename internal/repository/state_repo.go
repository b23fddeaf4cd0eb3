package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"hosteria/internal/db"
	apperrors "hosteria/internal/errors"
)

// StateRepository manages the ordered reservation state set
// (estados_reserva). Exactly one state is the default for new bookings,
// enforced by a partial unique index.
type StateRepository struct {
	DB *sql.DB
}

func NewStateRepository(database *sql.DB) *StateRepository {
	return &StateRepository{DB: database}
}

func (r *StateRepository) ListStates() ([]db.ReservationState, error) {
	rows, err := r.DB.Query(`
		SELECT id, nombre, descripcion, prioridad, es_default
		FROM estados_reserva ORDER BY prioridad DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying reservation states: %w", err)
	}
	defer rows.Close()

	var states []db.ReservationState
	for rows.Next() {
		var s db.ReservationState
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Priority, &s.IsDefault); err != nil {
			return nil, fmt.Errorf("error scanning reservation state: %w", err)
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

func (r *StateRepository) GetStateByID(id int) (*db.ReservationState, error) {
	var s db.ReservationState
	err := r.DB.QueryRow(`
		SELECT id, nombre, descripcion, prioridad, es_default
		FROM estados_reserva WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.Priority, &s.IsDefault,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe estado de reserva")
		}
		return nil, fmt.Errorf("error querying reservation state %d: %w", id, err)
	}
	return &s, nil
}

func (r *StateRepository) GetStateByName(name string) (*db.ReservationState, error) {
	var s db.ReservationState
	err := r.DB.QueryRow(`
		SELECT id, nombre, descripcion, prioridad, es_default
		FROM estados_reserva WHERE nombre = $1`, name).Scan(
		&s.ID, &s.Name, &s.Description, &s.Priority, &s.IsDefault,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe estado de reserva")
		}
		return nil, fmt.Errorf("error querying reservation state %q: %w", name, err)
	}
	return &s, nil
}

// GetDefaultState returns the state new bookings start in.
func (r *StateRepository) GetDefaultState() (*db.ReservationState, error) {
	var s db.ReservationState
	err := r.DB.QueryRow(`
		SELECT id, nombre, descripcion, prioridad, es_default
		FROM estados_reserva WHERE es_default LIMIT 1`).Scan(
		&s.ID, &s.Name, &s.Description, &s.Priority, &s.IsDefault,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no default reservation state seeded")
		}
		return nil, fmt.Errorf("error querying default reservation state: %w", err)
	}
	return &s, nil
}

func (r *StateRepository) CreateState(s *db.ReservationState) error {
	err := r.DB.QueryRow(`
		INSERT INTO estados_reserva (nombre, descripcion, prioridad, es_default)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		s.Name, s.Description, s.Priority, s.IsDefault,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error inserting reservation state: %w", err)
	}
	return nil
}

// EnsureDefaultStates seeds the fixed ordered state set on boot, leaving any
// existing rows untouched.
func (r *StateRepository) EnsureDefaultStates() error {
	defaults := []db.ReservationState{
		{Name: "pendiente", Description: "Reserva creada, esperando confirmación/garantía", Priority: 100, IsDefault: true},
		{Name: "confirmada", Description: "Reserva garantizada (tarjeta/depósito)", Priority: 90},
		{Name: "checkin", Description: "Huésped ingresó (estancia en curso)", Priority: 80},
		{Name: "checkout", Description: "Estadía finalizada (salida realizada)", Priority: 70},
		{Name: "cancelada", Description: "Reserva anulada antes del inicio", Priority: 60},
	}
	for _, s := range defaults {
		_, err := r.DB.Exec(`
			INSERT INTO estados_reserva (nombre, descripcion, prioridad, es_default)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (nombre) DO NOTHING`,
			s.Name, s.Description, s.Priority, s.IsDefault,
		)
		if err != nil {
			return fmt.Errorf("error seeding reservation state %q: %w", s.Name, err)
		}
	}
	return nil
}
