package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
)

func TestParseStay(t *testing.T) {
	checkIn, checkOut, nights, err := parseStay("2026-01-10", "2026-01-13")
	require.NoError(t, err)
	assert.Equal(t, 3, nights)
	assert.Equal(t, day(10), checkIn)
	assert.Equal(t, day(13), checkOut)
}

func TestParseStaySingleNight(t *testing.T) {
	_, _, nights, err := parseStay("2026-01-10", "2026-01-11")
	require.NoError(t, err)
	assert.Equal(t, 1, nights)
}

func TestParseStayRejectsEmptyRange(t *testing.T) {
	_, _, _, err := parseStay("2026-01-10", "2026-01-10")
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestParseStayRejectsInvertedRange(t *testing.T) {
	_, _, _, err := parseStay("2026-01-13", "2026-01-10")
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestParseStayRejectsMalformedDates(t *testing.T) {
	_, _, _, err := parseStay("10/01/2026", "2026-01-13")
	assert.Error(t, err)

	_, _, _, err = parseStay("2026-01-10", "not-a-date")
	assert.Error(t, err)
}

func TestTotalForStay(t *testing.T) {
	assert.Equal(t, 300.0, totalForStay(100, 3))
	assert.Equal(t, 150.0, totalForStay(150, 1))
	assert.Equal(t, 0.0, totalForStay(0, 5))
}

func TestTotalForStayRoundsToCents(t *testing.T) {
	assert.Equal(t, 100.0, totalForStay(33.333333, 3))
}

func TestResolveGuestRequiresEveryField(t *testing.T) {
	svc := &ReservationService{}
	incomplete := []entities.GuestPayload{
		{Apellido: "Paz", DNI: "30111222", Telefono: "123", Email: "a@b.com", Origen: "web"},
		{Nombre: "Ana", DNI: "30111222", Telefono: "123", Email: "a@b.com", Origen: "web"},
		{Nombre: "Ana", Apellido: "Paz", Telefono: "123", Email: "a@b.com", Origen: "web"},
		{Nombre: "Ana", Apellido: "Paz", DNI: "30111222", Email: "a@b.com", Origen: "web"},
		{Nombre: "Ana", Apellido: "Paz", DNI: "30111222", Telefono: "123", Origen: "web"},
		{Nombre: "Ana", Apellido: "Paz", DNI: "30111222", Telefono: "123", Email: "a@b.com"},
	}
	for _, p := range incomplete {
		payload := p
		_, err := svc.resolveGuest(&entities.CreateReservationRequest{Huesped: &payload})
		var httpErr *apperrors.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
		assert.Equal(t, "Datos de huésped incompletos", httpErr.Message)
	}
}

func TestResolveGuestRequiresSomeGuest(t *testing.T) {
	svc := &ReservationService{}
	_, err := svc.resolveGuest(&entities.CreateReservationRequest{})
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

// An inline guest must not be persisted during validation. It comes back with
// ID 0 and only gets inserted inside the reservation transaction, which keeps
// a rejected booking from leaving a guest row behind.
func TestResolveGuestDoesNotPersistInlineGuest(t *testing.T) {
	svc := &ReservationService{}
	guest, err := svc.resolveGuest(&entities.CreateReservationRequest{
		Huesped: &entities.GuestPayload{
			Nombre: "Ana", Apellido: "Paz", DNI: "30111222",
			Telefono: "123", Email: "a@b.com", Origen: "web",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, guest.ID)
	assert.Equal(t, "Ana", guest.FirstName)
	assert.Equal(t, "a@b.com", guest.Email)
}
