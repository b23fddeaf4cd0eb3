package repository

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosteria/internal/db"
	apperrors "hosteria/internal/errors"
)

func TestDeleteGuestNotFound(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("DELETE FROM huespedes").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewGuestRepository(conn)
	err = repo.DeleteGuest(7)
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}

func TestUpdateGuestPropagatesRowsAffectedError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	resultErr := errors.New("driver does not report rows affected")
	mock.ExpectExec("UPDATE huespedes").
		WillReturnResult(sqlmock.NewErrorResult(resultErr))

	repo := NewGuestRepository(conn)
	err = repo.UpdateGuest(&db.Guest{ID: 7, FirstName: "Ana"})
	require.Error(t, err)
	assert.ErrorIs(t, err, resultErr)
}
