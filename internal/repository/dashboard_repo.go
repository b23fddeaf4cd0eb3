package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// DashboardStay is the slice of a reservation the dashboard aggregates over.
type DashboardStay struct {
	CheckIn     time.Time
	CheckOut    time.Time
	AmountPaid  float64
	AmountTotal float64
	StateID     int
	Cancelled   bool
}

type DashboardRepository struct {
	DB *sql.DB
}

func NewDashboardRepository(database *sql.DB) *DashboardRepository {
	return &DashboardRepository{DB: database}
}

// ListStaysOverlapping fetches every reservation that touches [from, to).
// Totals and telemetry buckets are derived in the service so the grouping
// logic stays testable.
func (r *DashboardRepository) ListStaysOverlapping(from, to time.Time) ([]DashboardStay, error) {
	rows, err := r.DB.Query(`
		SELECT fecha_desde, fecha_hasta, monto_pagado, monto_total, id_estado_reserva, cancelada
		FROM reservas
		WHERE fecha_desde < $2 AND fecha_hasta > $1
		ORDER BY fecha_desde`, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard stays: %w", err)
	}
	defer rows.Close()

	var stays []DashboardStay
	for rows.Next() {
		var s DashboardStay
		if err := rows.Scan(&s.CheckIn, &s.CheckOut, &s.AmountPaid, &s.AmountTotal,
			&s.StateID, &s.Cancelled); err != nil {
			return nil, fmt.Errorf("error scanning dashboard stay: %w", err)
		}
		stays = append(stays, s)
	}
	return stays, rows.Err()
}
