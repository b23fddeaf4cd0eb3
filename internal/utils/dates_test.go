package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	parsed, err := ParseISODate(" 2026-08-15 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseISODate("15/08/2026")
	assert.Error(t, err)
}

func TestDefaultCalendarRange(t *testing.T) {
	now := time.Date(2026, time.August, 31, 14, 30, 0, 0, time.UTC)

	start, end := DefaultCalendarRange(now)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestDefaultCalendarRangeCrossesYear(t *testing.T) {
	now := time.Date(2026, time.November, 2, 0, 0, 0, 0, time.UTC)

	start, end := DefaultCalendarRange(now)
	assert.Equal(t, time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, time.March, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestNormalizeRangeExplicit(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

	from, to := NormalizeRange("2026-08-01", "2026-08-10", now)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.August, 10, 23, 59, 59, 0, time.UTC), to)
}

func TestNormalizeRangeDefaultsToLast30Days(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

	from, to := NormalizeRange("", "", now)
	assert.Equal(t, time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.August, 31, 23, 59, 59, 0, time.UTC), to)
}

func TestTruncateToDay(t *testing.T) {
	ts := time.Date(2026, time.August, 31, 23, 59, 59, 123, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), TruncateToDay(ts))
}

func TestParseIDList(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, ParseIDList("1, 2,3"))
	assert.Equal(t, []int{1, 2}, ParseIDList("1,2,1"), "duplicates are dropped")
	assert.Equal(t, []int{5}, ParseIDList("5,abc, "))
	assert.Nil(t, ParseIDList(""))
	assert.Nil(t, ParseIDList("   "))
}
