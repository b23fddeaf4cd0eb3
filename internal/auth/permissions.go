package auth

import (
	"encoding/json"
	"fmt"
)

// Actions holds the CRUD flags a role has over one resource.
type Actions struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// PermissionSet maps a resource tag (usuario, habitacion, reserva, ...) to its
// allowed actions. It is decoded once from the role's JSONB blob and treated
// as immutable afterwards; a role change is picked up on the next request,
// never by mutating a loaded set.
type PermissionSet map[string]Actions

// Resource tags and action names used across routes and seeded roles.
const (
	ResourceUsuario          = "usuario"
	ResourceTipoHabitacion   = "tipoHabitacion"
	ResourceHabitacion       = "habitacion"
	ResourceReserva          = "reserva"
	ResourceHuesped          = "huesped"
	ResourceEstadoReserva    = "estadoReserva"
	ResourceEstadoHabitacion = "estadoHabitacion"
	ResourceAuditoria        = "auditoria"
	ResourceDashboard        = "dashboard"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ParsePermissions decodes a role's JSONB permission blob. An empty blob
// yields an empty set (deny everything).
func ParsePermissions(raw []byte) (PermissionSet, error) {
	if len(raw) == 0 {
		return PermissionSet{}, nil
	}
	var set PermissionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("error decoding role permissions: %w", err)
	}
	return set, nil
}

// Allowed reports whether the set grants `action` over `resource`. Unknown
// resources and actions are denied.
func (p PermissionSet) Allowed(resource, action string) bool {
	acts, ok := p[resource]
	if !ok {
		return false
	}
	switch action {
	case ActionCreate:
		return acts.Create
	case ActionRead:
		return acts.Read
	case ActionUpdate:
		return acts.Update
	case ActionDelete:
		return acts.Delete
	}
	return false
}

// AllActions grants full CRUD over a resource; used by role seeding.
func AllActions() Actions {
	return Actions{Create: true, Read: true, Update: true, Delete: true}
}

// ReadOnly grants only read.
func ReadOnly() Actions {
	return Actions{Read: true}
}
