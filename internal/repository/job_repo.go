package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// JobRepository backs the cron sweeps that keep reservation states honest.
type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// ListOverdueCheckins returns reservations still marked checkin after their
// stay has ended.
func (r *JobRepository) ListOverdueCheckins(now time.Time) ([]int, error) {
	rows, err := r.DB.Query(`
		SELECT res.id
		FROM reservas res
		JOIN estados_reserva e ON e.id = res.id_estado_reserva
		WHERE e.nombre = 'checkin' AND res.fecha_hasta <= $1`, now)
	if err != nil {
		return nil, fmt.Errorf("error querying overdue checkins: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateReservationStates moves the given reservations to the named state.
func (r *JobRepository) UpdateReservationStates(ids []int, stateName string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.DB.Exec(`
		UPDATE reservas
		SET id_estado_reserva = (SELECT id FROM estados_reserva WHERE nombre = $1)
		WHERE id = ANY($2)`, stateName, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error updating reservation states: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected, nil
}

// DeleteStalePending removes pending reservations whose stay already ended
// without any payment on record.
func (r *JobRepository) DeleteStalePending(now time.Time) (int64, error) {
	result, err := r.DB.Exec(`
		DELETE FROM reservas res
		USING estados_reserva e
		WHERE e.id = res.id_estado_reserva
		  AND e.nombre = 'pendiente'
		  AND res.monto_pagado = 0
		  AND res.fecha_hasta <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending reservations: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected, nil
}
