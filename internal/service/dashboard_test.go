package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosteria/internal/repository"
)

func dashStay(checkInDay int, paid, total float64, stateID int, cancelled bool) repository.DashboardStay {
	return repository.DashboardStay{
		CheckIn:     day(checkInDay),
		CheckOut:    day(checkInDay + 2),
		AmountPaid:  paid,
		AmountTotal: total,
		StateID:     stateID,
		Cancelled:   cancelled,
	}
}

func TestComputeTotalsVentaByPagado(t *testing.T) {
	stays := []repository.DashboardStay{
		dashStay(1, 100, 300, 1, false),
		dashStay(2, 0, 200, 1, false),
		dashStay(3, 50, 150, 1, true),
	}
	sale := SaleCriterion{By: VentaByPagado}

	totals := computeTotals(stays, sale)
	assert.Equal(t, 2, totals.Reservas, "cancelled stays do not count")
	assert.Equal(t, 1, totals.Ventas, "only the paid stay is a sale")
	assert.Equal(t, 100.0, totals.MontoPagado)
	assert.Equal(t, 300.0, totals.MontoTotal)
}

func TestComputeTotalsVentaByEstado(t *testing.T) {
	stays := []repository.DashboardStay{
		dashStay(1, 0, 300, 2, false),
		dashStay(2, 100, 200, 5, false),
	}
	sale := SaleCriterion{By: VentaByEstado, StateIDs: map[int]bool{2: true}}

	totals := computeTotals(stays, sale)
	assert.Equal(t, 2, totals.Reservas)
	assert.Equal(t, 1, totals.Ventas)
	assert.Equal(t, 300.0, totals.MontoTotal)
}

// Without configured sale states the estado criterion falls back to counting
// paid stays, instead of marking nothing as a sale.
func TestComputeTotalsVentaByEstadoWithoutStatesFallsBackToPagado(t *testing.T) {
	stays := []repository.DashboardStay{
		dashStay(1, 0, 300, 2, false),
		dashStay(2, 100, 200, 5, false),
	}
	sale := SaleCriterion{By: VentaByEstado}

	totals := computeTotals(stays, sale)
	assert.Equal(t, 1, totals.Ventas)
}

func TestComputeTelemetryGroupsByDay(t *testing.T) {
	stays := []repository.DashboardStay{
		dashStay(1, 100, 100, 1, false),
		dashStay(1, 0, 200, 1, false),
		dashStay(3, 50, 300, 1, false),
	}
	sale := SaleCriterion{By: VentaByPagado}

	tel := computeTelemetry(stays, sale, GroupByDay, 0, "", "", day(1), day(5))
	require.Len(t, tel.Reservas, 2)
	assert.Equal(t, "2026-01-01", tel.Reservas[0].Bucket)
	assert.Equal(t, 2, tel.Reservas[0].Count)
	assert.Equal(t, 1, tel.Ventas[0].Count)
	require.NotNil(t, tel.Ventas[0].Sum)
	assert.Equal(t, 100.0, *tel.Ventas[0].Sum)
	assert.Equal(t, "2026-01-03", tel.Reservas[1].Bucket)
}

func TestComputeTelemetrySkipsCheckInsOutsideRange(t *testing.T) {
	stays := []repository.DashboardStay{
		dashStay(1, 0, 100, 1, false),
		dashStay(20, 0, 100, 1, false),
	}
	sale := SaleCriterion{By: VentaByPagado}

	tel := computeTelemetry(stays, sale, GroupByDay, 0, "", "", day(1), day(10))
	assert.Len(t, tel.Reservas, 1)
}

func TestBucketStartWeekStartsMonday(t *testing.T) {
	// 2026-01-07 is a Wednesday; its ISO week starts Monday the 5th.
	assert.Equal(t, day(5), bucketStart(day(7), GroupByWeek, time.Time{}, 0))
	assert.Equal(t, day(5), bucketStart(day(5), GroupByWeek, time.Time{}, 0))
	// Sunday the 11th still belongs to the week of the 5th.
	assert.Equal(t, day(5), bucketStart(day(11), GroupByWeek, time.Time{}, 0))
}

func TestBucketStartMonthAndYear(t *testing.T) {
	d := time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), bucketStart(d, GroupByMonth, time.Time{}, 0))
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), bucketStart(d, GroupByYear, time.Time{}, 0))
}

func TestBucketStartCustomAnchoredAtRangeStart(t *testing.T) {
	anchor := day(1)
	assert.Equal(t, day(1), bucketStart(day(1), GroupByCustom, anchor, 7))
	assert.Equal(t, day(1), bucketStart(day(7), GroupByCustom, anchor, 7))
	assert.Equal(t, day(8), bucketStart(day(8), GroupByCustom, anchor, 7))
	assert.Equal(t, day(15), bucketStart(day(16), GroupByCustom, anchor, 7))
}

func TestBucketEnd(t *testing.T) {
	assert.Equal(t, day(11), bucketEnd(day(5), GroupByWeek, 0))
	assert.Equal(t, time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC), bucketEnd(day(1), GroupByMonth, 0))
	assert.Equal(t, day(7), bucketEnd(day(1), GroupByCustom, 7))
	assert.Equal(t, day(5), bucketEnd(day(5), GroupByDay, 0))
}

func TestBucketLabelModes(t *testing.T) {
	start := day(5)
	end := day(11)

	assert.Equal(t, "enero 2026", bucketLabel(LabelMonth, "", GroupByMonth, start, end))
	assert.Equal(t, "January 2026", bucketLabel(LabelMonth, "en", GroupByMonth, start, end))
	assert.Equal(t, "ene 2026", bucketLabel(LabelMonthShort, "", GroupByMonth, start, end))
	assert.Equal(t, "Jan 2026", bucketLabel(LabelMonthShort, "en", GroupByMonth, start, end))
	assert.Equal(t, "2026", bucketLabel(LabelYear, "", GroupByYear, start, end))
	assert.Equal(t, "05/01/2026", bucketLabel(LabelDate, "", GroupByDay, start, end))
	assert.Equal(t, "01/05/2026", bucketLabel(LabelDate, "en", GroupByDay, start, end))
	assert.Equal(t, "05/01 - 11/01", bucketLabel(LabelWeekRange, "", GroupByWeek, start, end))
}

func TestBucketLabelAutoFollowsGrouping(t *testing.T) {
	start := day(5)
	end := day(11)

	assert.Equal(t, "05/01", bucketLabel(LabelAuto, "", GroupByDay, start, start))
	assert.Equal(t, "05/01 - 11/01", bucketLabel(LabelAuto, "", GroupByWeek, start, end))
	assert.Equal(t, "ene 2026", bucketLabel(LabelAuto, "", GroupByMonth, start, end))
	assert.Equal(t, "2026", bucketLabel(LabelAuto, "", GroupByYear, start, end))
	assert.Equal(t, "05/01 - 11/01", bucketLabel("", "", GroupByCustom, start, end))
}

func TestOccupancySnapshotZeroRooms(t *testing.T) {
	snap := occupancySnapshot(0, 0)
	assert.Equal(t, 0.0, snap.Tasa)

	snap = occupancySnapshot(3, 10)
	assert.Equal(t, 0.3, snap.Tasa)
	assert.Equal(t, 3, snap.Ocupadas)
	assert.Equal(t, 10, snap.TotalHabitaciones)
}
