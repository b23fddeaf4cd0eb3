package entities

// GuestPayload carries the fields needed to create a guest inline with a
// booking. All fields are required when no idHuesped is given.
type GuestPayload struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	DNI      string `json:"dni"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
	Origen   string `json:"origen"`
}

type CreateReservationRequest struct {
	IDHuesped       *int          `json:"idHuesped,omitempty"`
	Huesped         *GuestPayload `json:"huesped,omitempty"`
	IDHabitacion    int           `json:"idHabitacion"`
	IDEstadoReserva int           `json:"idEstadoReserva"`
	FechaDesde      string        `json:"fechaDesde"`
	FechaHasta      string        `json:"fechaHasta"`
	MontoPagado     float64       `json:"montoPagado"`
}

// UpdateReservationRequest is a partial update; nil fields are left untouched.
// The client cannot set montoTotal, it is always recomputed server side when
// the dates or the room change.
type UpdateReservationRequest struct {
	IDHuesped       *int     `json:"idHuesped,omitempty"`
	IDHabitacion    *int     `json:"idHabitacion,omitempty"`
	IDEstadoReserva *int     `json:"idEstadoReserva,omitempty"`
	FechaDesde      *string  `json:"fechaDesde,omitempty"`
	FechaHasta      *string  `json:"fechaHasta,omitempty"`
	MontoPagado     *float64 `json:"montoPagado,omitempty"`
}

// ReservationListItem is the row shape of GET /reservas, with the guest and
// room display fields already joined in.
type ReservationListItem struct {
	ID              int     `json:"id"`
	NumeroHab       int     `json:"numeroHab"`
	Ingreso         string  `json:"ingreso"`
	Egreso          string  `json:"egreso"`
	HuespedNombre   string  `json:"huespedNombre"`
	TelefonoHuesped string  `json:"telefonoHuesped"`
	DNIHuesped      string  `json:"dniHuesped"`
	EmailHuesped    string  `json:"emailHuesped"`
	MontoPagado     float64 `json:"montoPagado"`
	Total           float64 `json:"total"`
	EstadoDeReserva int     `json:"estadoDeReserva"`
}

// ReservationDetail is returned by POST /reservas: the created row joined
// with the guest contact fields and the room pricing fields.
type ReservationDetail struct {
	IDReserva   int     `json:"idReserva"`
	FechaDesde  string  `json:"fechaDesde"`
	FechaHasta  string  `json:"fechaHasta"`
	MontoPagado float64 `json:"montoPagado"`
	MontoTotal  float64 `json:"montoTotal"`
	Huesped     struct {
		DNI      string `json:"dni"`
		Telefono string `json:"telefono"`
		Email    string `json:"email"`
		Origen   string `json:"origen"`
	} `json:"huesped"`
	Habitacion struct {
		Numero         int `json:"numero"`
		TipoHabitacion struct {
			Precio float64 `json:"precio"`
		} `json:"tipoHabitacion"`
	} `json:"habitacion"`
}
