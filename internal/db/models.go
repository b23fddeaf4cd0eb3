package db

import (
	"database/sql"
	"time"
)

type RoomType struct {
	ID    int
	Name  string
	Price float64
}

type RoomState struct {
	ID   int
	Name string
}

type Room struct {
	ID          int
	Number      int
	RoomTypeID  int
	RoomStateID int
	Enabled     bool
}

type Guest struct {
	ID         int
	FirstName  string
	LastName   string
	DocumentID string
	Phone      string
	Email      string
	Origin     string
}

type ReservationState struct {
	ID          int
	Name        string
	Description string
	Priority    int
	IsDefault   bool
}

// Reservation dates follow hotel semantics: CheckIn inclusive, CheckOut
// exclusive, so a stay [D, D+1) occupies exactly day D.
type Reservation struct {
	ID          int
	GuestID     int
	RoomID      int
	StateID     int
	CheckIn     time.Time
	CheckOut    time.Time
	AmountPaid  float64
	AmountTotal float64
	Cancelled   bool
}

type Role struct {
	ID          int
	Name        string
	Description string
	Permissions []byte // raw JSONB, decoded by the auth package
	IsSystem    bool
	Active      bool
	Priority    int
}

type User struct {
	ID                 int
	Email              string
	Name               string
	PasswordHash       string
	RoleID             int
	Verified           bool
	VerifyToken        sql.NullString
	VerifyTokenExpires sql.NullTime
}

type AuditEntry struct {
	ID     int
	UserID sql.NullInt64
	Status int
	Route  string
	Method string
	Action string
	Date   time.Time
	Data   []byte // JSONB payload (sanitized request body/params)
}
