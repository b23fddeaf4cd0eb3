package repository

import (
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosteria/internal/db"
	apperrors "hosteria/internal/errors"
)

func stayDates() (time.Time, time.Time) {
	return time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 13, 0, 0, 0, 0, time.UTC)
}

func TestCreateReservationInsertsInlineGuestInSameTransaction(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO huespedes").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery("INSERT INTO reservas").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cancelada"}).AddRow(7, false))
	mock.ExpectCommit()

	checkIn, checkOut := stayDates()
	res := &db.Reservation{RoomID: 3, StateID: 1, CheckIn: checkIn, CheckOut: checkOut, AmountTotal: 300}
	guest := &db.Guest{
		FirstName: "Ana", LastName: "Paz", DocumentID: "30111222",
		Phone: "123", Email: "a@b.com", Origin: "web",
	}

	repo := NewReservationRepository(conn)
	require.NoError(t, repo.CreateReservation(res, guest))
	assert.Equal(t, 42, guest.ID)
	assert.Equal(t, 42, res.GuestID)
	assert.Equal(t, 7, res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A booking rejected by the overlap guard rolls the transaction back before
// the inline guest is ever written, so no orphan guest row remains.
func TestCreateReservationOverlapLeavesNoGuestRow(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	checkIn, checkOut := stayDates()
	res := &db.Reservation{RoomID: 3, StateID: 1, CheckIn: checkIn, CheckOut: checkOut}
	guest := &db.Guest{
		FirstName: "Ana", LastName: "Paz", DocumentID: "30111222",
		Phone: "123", Email: "a@b.com", Origin: "web",
	}

	repo := NewReservationRepository(conn)
	err = repo.CreateReservation(res, guest)
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
	assert.Equal(t, 0, guest.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationPropagatesRowsAffectedError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	resultErr := errors.New("driver does not report rows affected")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE reservas").
		WillReturnResult(sqlmock.NewErrorResult(resultErr))

	checkIn, checkOut := stayDates()
	repo := NewReservationRepository(conn)
	err = repo.UpdateReservation(&db.Reservation{
		ID: 7, GuestID: 1, RoomID: 3, StateID: 1,
		CheckIn: checkIn, CheckOut: checkOut,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, resultErr)
}
