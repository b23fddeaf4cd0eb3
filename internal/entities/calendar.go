package entities

// CalendarResponse lists the days (YYYY-MM-DD, ascending) on which every room
// of the evaluated subset has at least one overlapping reservation.
type CalendarResponse struct {
	FullyBookedDates []string `json:"fullyBookedDates"`
}

// RoomResponse is the display shape for room listings and the single-day
// availability endpoint.
type RoomResponse struct {
	IDHabitacion int     `json:"idHabitacion"`
	Numero       int     `json:"numero"`
	Tipo         string  `json:"tipo"`
	Precio       float64 `json:"precio"`
	Estado       string  `json:"estado"`
	Habilitada   bool    `json:"habilitada"`
}
