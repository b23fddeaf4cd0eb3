package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hosteria/internal/db"
)

func day(dayOfMonth int) time.Time {
	return time.Date(2026, time.January, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func stay(roomID, from, to int) db.Reservation {
	return db.Reservation{RoomID: roomID, CheckIn: day(from), CheckOut: day(to)}
}

func TestCoversDayCheckoutExclusive(t *testing.T) {
	s := stay(1, 10, 12)

	assert.True(t, coversDay(s, day(10)))
	assert.True(t, coversDay(s, day(11)))
	assert.False(t, coversDay(s, day(12)), "checkout day must be free for the next guest")
	assert.False(t, coversDay(s, day(9)))
}

func TestCoversDaySingleNight(t *testing.T) {
	s := stay(1, 5, 6)

	assert.True(t, coversDay(s, day(5)))
	assert.False(t, coversDay(s, day(6)))
}

func TestFullyBookedDaysOverlapScenario(t *testing.T) {
	// Room 1 booked Jan 1-3, room 2 booked Jan 2-4. Only Jan 2 has both
	// rooms taken: Jan 1 leaves room 2 free, Jan 3 leaves room 1 free.
	stays := []db.Reservation{stay(1, 1, 3), stay(2, 2, 4)}

	booked := fullyBookedDays(stays, []int{1, 2}, day(1), day(4))
	assert.Equal(t, []string{"2026-01-02"}, booked)
}

func TestFullyBookedDaysSingleRoomSubset(t *testing.T) {
	stays := []db.Reservation{stay(1, 1, 3), stay(2, 2, 4)}

	booked := fullyBookedDays(stays, []int{1}, day(1), day(4))
	assert.Equal(t, []string{"2026-01-01", "2026-01-02"}, booked)
}

func TestFullyBookedDaysEmptyRoomSet(t *testing.T) {
	stays := []db.Reservation{stay(1, 1, 3)}

	booked := fullyBookedDays(stays, nil, day(1), day(4))
	assert.Empty(t, booked)
}

func TestFullyBookedDaysNoStays(t *testing.T) {
	booked := fullyBookedDays(nil, []int{1, 2}, day(1), day(3))
	assert.Empty(t, booked)
}

func TestFreeRoomIDs(t *testing.T) {
	stays := []db.Reservation{stay(1, 1, 3), stay(2, 2, 4)}

	free := freeRoomIDs(stays, []int{1, 2, 3}, day(1))
	assert.False(t, free[1])
	assert.True(t, free[2])
	assert.True(t, free[3])

	// On the checkout day of room 1 the room is available again.
	free = freeRoomIDs(stays, []int{1, 2, 3}, day(3))
	assert.True(t, free[1])
	assert.False(t, free[2])
}
