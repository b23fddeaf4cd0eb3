package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"hosteria/internal/db"
	apperrors "hosteria/internal/errors"
)

type GuestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(database *sql.DB) *GuestRepository {
	return &GuestRepository{DB: database}
}

func (r *GuestRepository) ListGuests() ([]db.Guest, error) {
	rows, err := r.DB.Query(`
		SELECT id, nombre, apellido, dni, telefono, email, origen
		FROM huespedes ORDER BY apellido, nombre`)
	if err != nil {
		return nil, fmt.Errorf("error querying guests: %w", err)
	}
	defer rows.Close()

	var guests []db.Guest
	for rows.Next() {
		var g db.Guest
		if err := rows.Scan(&g.ID, &g.FirstName, &g.LastName, &g.DocumentID, &g.Phone, &g.Email, &g.Origin); err != nil {
			return nil, fmt.Errorf("error scanning guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *GuestRepository) GetGuestByID(id int) (*db.Guest, error) {
	var g db.Guest
	err := r.DB.QueryRow(`
		SELECT id, nombre, apellido, dni, telefono, email, origen
		FROM huespedes WHERE id = $1`, id).Scan(
		&g.ID, &g.FirstName, &g.LastName, &g.DocumentID, &g.Phone, &g.Email, &g.Origin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("No existe huésped")
		}
		return nil, fmt.Errorf("error querying guest %d: %w", id, err)
	}
	return &g, nil
}

func (r *GuestRepository) CreateGuest(g *db.Guest) error {
	err := r.DB.QueryRow(`
		INSERT INTO huespedes (nombre, apellido, dni, telefono, email, origen)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		g.FirstName, g.LastName, g.DocumentID, g.Phone, g.Email, g.Origin,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("error inserting guest: %w", err)
	}
	return nil
}

func (r *GuestRepository) UpdateGuest(g *db.Guest) error {
	result, err := r.DB.Exec(`
		UPDATE huespedes
		SET nombre = $1, apellido = $2, dni = $3, telefono = $4, email = $5, origen = $6
		WHERE id = $7`,
		g.FirstName, g.LastName, g.DocumentID, g.Phone, g.Email, g.Origin, g.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating guest %d: %w", g.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading result: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("No existe huésped")
	}
	return nil
}

func (r *GuestRepository) DeleteGuest(id int) error {
	result, err := r.DB.Exec(`DELETE FROM huespedes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting guest %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading result: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("No existe huésped")
	}
	return nil
}
