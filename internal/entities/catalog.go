package entities

import "encoding/json"

type GuestResponse struct {
	IDHuesped int    `json:"idHuesped"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	DNI       string `json:"dni"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Origen    string `json:"origen"`
}

type RoomTypeResponse struct {
	IDTipoHabitacion int     `json:"idTipoHabitacion"`
	Nombre           string  `json:"nombre"`
	Precio           float64 `json:"precio"`
}

type RoomStateResponse struct {
	IDEstadoHabitacion int    `json:"idEstadoHabitacion"`
	Estado             string `json:"estado"`
}

type ReservationStateResponse struct {
	IDEstadoReserva int    `json:"idEstadoReserva"`
	Nombre          string `json:"nombre"`
	Descripcion     string `json:"descripcion"`
	Prioridad       int    `json:"prioridad"`
	EsDefault       bool   `json:"esDefault"`
}

type RoleResponse struct {
	IDTipoUsuario int             `json:"idTipoUsuario"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion"`
	Permisos      json.RawMessage `json:"permisos"`
	EsSistema     bool            `json:"esSistema"`
	Activo        bool            `json:"activo"`
	Prioridad     int             `json:"prioridad"`
}

// UserResponse never exposes the password hash or verification token.
type UserResponse struct {
	IDUsuario     int    `json:"idUsuario"`
	Email         string `json:"email"`
	Nombre        string `json:"nombre"`
	IDTipoUsuario int    `json:"idTipoUsuario"`
	Verificado    bool   `json:"verificado"`
}
