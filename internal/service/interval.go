package service

import (
	"time"

	"hosteria/internal/db"
	"hosteria/internal/utils"
)

// coversDay reports whether the stay occupies the given day. Check-in is
// inclusive and check-out exclusive, so a stay [D, D+1) occupies exactly D.
func coversDay(stay db.Reservation, day time.Time) bool {
	return !stay.CheckIn.After(day) && day.Before(stay.CheckOut)
}

// occupiedRoomSet collects the room ids with at least one stay covering day.
func occupiedRoomSet(stays []db.Reservation, day time.Time) map[int]bool {
	occupied := make(map[int]bool)
	for _, stay := range stays {
		if coversDay(stay, day) {
			occupied[stay.RoomID] = true
		}
	}
	return occupied
}

// fullyBookedDays walks the inclusive day range [start, end] and returns the
// days (YYYY-MM-DD, ascending) on which every room of roomIDs is occupied.
// An empty roomIDs slice yields no days: with no rooms to fill, no day
// qualifies as fully booked.
func fullyBookedDays(stays []db.Reservation, roomIDs []int, start, end time.Time) []string {
	days := []string{}
	if len(roomIDs) == 0 {
		return days
	}
	start = utils.TruncateToDay(start)
	end = utils.TruncateToDay(end)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		occupied := occupiedRoomSet(stays, day)
		full := true
		for _, id := range roomIDs {
			if !occupied[id] {
				full = false
				break
			}
		}
		if full {
			days = append(days, day.Format(utils.ISODate))
		}
	}
	return days
}

// freeRoomIDs filters roomIDs down to those with no stay covering day.
func freeRoomIDs(stays []db.Reservation, roomIDs []int, day time.Time) map[int]bool {
	occupied := occupiedRoomSet(stays, utils.TruncateToDay(day))
	free := make(map[int]bool, len(roomIDs))
	for _, id := range roomIDs {
		if !occupied[id] {
			free[id] = true
		}
	}
	return free
}
