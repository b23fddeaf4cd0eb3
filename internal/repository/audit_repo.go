package repository

import (
	"database/sql"
	"fmt"

	"hosteria/internal/db"
	"hosteria/internal/entities"
)

type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(database *sql.DB) *AuditRepository {
	return &AuditRepository{DB: database}
}

func (r *AuditRepository) InsertEntry(entry *db.AuditEntry) error {
	err := r.DB.QueryRow(`
		INSERT INTO auditorias (id_usuario, status, ruta, metodo, accion, fecha, datos)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		entry.UserID, entry.Status, entry.Route, entry.Method, entry.Action, entry.Date, entry.Data,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("error inserting audit entry: %w", err)
	}
	return nil
}

// ListEntries returns the newest entries first, capped at limit.
func (r *AuditRepository) ListEntries(limit int) ([]entities.AuditListItem, error) {
	rows, err := r.DB.Query(`
		SELECT a.id, a.id_usuario, COALESCE(u.email, ''), a.status, a.ruta, a.metodo, a.accion,
		       to_char(a.fecha, 'YYYY-MM-DD"T"HH24:MI:SSOF'), COALESCE(a.datos, '{}')
		FROM auditorias a
		LEFT JOIN usuarios u ON u.id = a.id_usuario
		ORDER BY a.fecha DESC, a.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying audit entries: %w", err)
	}
	defer rows.Close()

	var items []entities.AuditListItem
	for rows.Next() {
		var item entities.AuditListItem
		var userID sql.NullInt64
		if err := rows.Scan(&item.ID, &userID, &item.Usuario, &item.Status, &item.Ruta,
			&item.Metodo, &item.Accion, &item.Fecha, &item.Datos); err != nil {
			return nil, fmt.Errorf("error scanning audit entry: %w", err)
		}
		if userID.Valid {
			id := int(userID.Int64)
			item.IDUsuario = &id
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
