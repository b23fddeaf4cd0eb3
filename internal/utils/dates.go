package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const ISODate = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD string into a UTC date at midnight.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// TruncateToDay drops the time-of-day component, keeping the UTC date.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DefaultCalendarRange returns the window the booking calendar covers when the
// caller gives none: the first day of the current month through the last day
// of the fourth following month.
func DefaultCalendarRange(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of month+5 is the last day of month+4.
	end := time.Date(now.Year(), now.Month()+5, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}

// NormalizeRange resolves the dashboard date range: `to` defaults to today,
// `from` to 29 days before `to`, and the bounds expand to cover the whole
// days in UTC (start 00:00:00, end 23:59:59).
func NormalizeRange(fromStr, toStr string, now time.Time) (time.Time, time.Time) {
	to, err := ParseISODate(toStr)
	if err != nil {
		to = TruncateToDay(now)
	}
	from, err := ParseISODate(fromStr)
	if err != nil {
		from = to.AddDate(0, 0, -29)
	}
	start := TruncateToDay(from)
	end := TruncateToDay(to).Add(24*time.Hour - time.Second)
	return start, end
}

// ParseIDList parses a comma separated id list ("1,2,3") into unique ints,
// skipping anything that is not a number.
func ParseIDList(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[int]bool)
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		ids = append(ids, n)
	}
	return ids
}
