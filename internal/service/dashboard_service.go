package service

import (
	"math"
	"sort"
	"time"

	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
	"hosteria/internal/repository"
	"hosteria/internal/utils"
)

// Sale criteria: a reservation counts as a sale either because something was
// paid on it or because it sits in one of the configured sale states.
const (
	VentaByPagado = "pagado"
	VentaByEstado = "estado"
)

// SaleCriterion is resolved once at startup from configuration and passed in
// here; it is never mutated afterwards.
type SaleCriterion struct {
	By       string
	StateIDs map[int]bool
}

func (c SaleCriterion) isSale(stay repository.DashboardStay) bool {
	if c.By == VentaByEstado && len(c.StateIDs) > 0 {
		return c.StateIDs[stay.StateID]
	}
	// Without configured sale states, fall back to the payment criterion.
	return stay.AmountPaid > 0
}

// DashboardQuery carries the parsed query string of GET /dashboards/summary.
type DashboardQuery struct {
	From       string
	To         string
	GroupBy    string
	BucketDays int
	LabelMode  string
	Locale     string
	VentaBy    string
}

type DashboardService struct {
	dashboards   *repository.DashboardRepository
	reservations *repository.ReservationRepository
	rooms        *repository.RoomRepository
	sale         SaleCriterion
}

func NewDashboardService(
	dashboards *repository.DashboardRepository,
	reservations *repository.ReservationRepository,
	rooms *repository.RoomRepository,
	sale SaleCriterion,
) *DashboardService {
	return &DashboardService{
		dashboards:   dashboards,
		reservations: reservations,
		rooms:        rooms,
		sale:         sale,
	}
}

// Summary builds the whole dashboard payload. Totals run over reservations
// overlapping the range; telemetry buckets by check-in day only.
func (s *DashboardService) Summary(q DashboardQuery, now time.Time) (*entities.DashboardSummary, error) {
	groupBy := q.GroupBy
	if groupBy == "" && q.BucketDays > 0 {
		groupBy = GroupByCustom
	}
	switch groupBy {
	case "", GroupByDay, GroupByWeek, GroupByMonth, GroupByYear:
		if groupBy == "" {
			groupBy = GroupByDay
		}
	case GroupByCustom:
		if q.BucketDays < 1 {
			return nil, apperrors.NewValidationError("bucketDays debe ser mayor a cero")
		}
	default:
		return nil, apperrors.NewValidationError("agruparPor no válido")
	}

	sale := s.sale
	switch q.VentaBy {
	case "":
	case VentaByPagado, VentaByEstado:
		sale.By = q.VentaBy
	default:
		return nil, apperrors.NewValidationError("ventaBy no válido")
	}

	from, to := utils.NormalizeRange(q.From, q.To, now)
	stays, err := s.dashboards.ListStaysOverlapping(from, to)
	if err != nil {
		return nil, err
	}

	summary := &entities.DashboardSummary{
		Range: entities.DashboardRange{
			From: from.Format(utils.ISODate),
			To:   utils.TruncateToDay(to).Format(utils.ISODate),
		},
		Totals:    computeTotals(stays, sale),
		Telemetry: computeTelemetry(stays, sale, groupBy, q.BucketDays, q.LabelMode, q.Locale, from, to),
	}

	occupied, err := s.reservations.CurrentlyOccupiedCount(now)
	if err != nil {
		return nil, err
	}
	totalRooms, err := s.rooms.CountEnabledRooms()
	if err != nil {
		return nil, err
	}
	summary.Ocupacion = occupancySnapshot(occupied, totalRooms)
	return summary, nil
}

// computeTotals counts the non-cancelled reservations overlapping the range
// and sums the configured sale subset.
func computeTotals(stays []repository.DashboardStay, sale SaleCriterion) entities.DashboardTotals {
	var totals entities.DashboardTotals
	for _, stay := range stays {
		if stay.Cancelled {
			continue
		}
		totals.Reservas++
		if sale.isSale(stay) {
			totals.Ventas++
			totals.MontoPagado += stay.AmountPaid
			totals.MontoTotal += stay.AmountTotal
		}
	}
	totals.MontoPagado = roundCents(totals.MontoPagado)
	totals.MontoTotal = roundCents(totals.MontoTotal)
	return totals
}

// computeTelemetry buckets by check-in day; stays whose check-in falls
// outside [from, to] contribute to totals but not to the series.
func computeTelemetry(
	stays []repository.DashboardStay,
	sale SaleCriterion,
	groupBy string, bucketDays int,
	labelMode, locale string,
	from, to time.Time,
) entities.DashboardTelemetry {
	type bucketAgg struct {
		start    time.Time
		reservas int
		ventas   int
		sum      float64
	}
	buckets := make(map[string]*bucketAgg)

	for _, stay := range stays {
		if stay.Cancelled {
			continue
		}
		day := utils.TruncateToDay(stay.CheckIn)
		if day.Before(utils.TruncateToDay(from)) || day.After(to) {
			continue
		}
		start := bucketStart(day, groupBy, from, bucketDays)
		key := start.Format(utils.ISODate)
		agg, ok := buckets[key]
		if !ok {
			agg = &bucketAgg{start: start}
			buckets[key] = agg
		}
		agg.reservas++
		if sale.isSale(stay) {
			agg.ventas++
			agg.sum += stay.AmountTotal
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	telemetry := entities.DashboardTelemetry{
		AgruparPor: groupBy,
		Reservas:   []entities.BucketPoint{},
		Ventas:     []entities.BucketPoint{},
	}
	for _, key := range keys {
		agg := buckets[key]
		end := bucketEnd(agg.start, groupBy, bucketDays)
		label := bucketLabel(labelMode, locale, groupBy, agg.start, end)
		telemetry.Reservas = append(telemetry.Reservas, entities.BucketPoint{
			Bucket: key, Label: label, Count: agg.reservas,
		})
		sum := roundCents(agg.sum)
		telemetry.Ventas = append(telemetry.Ventas, entities.BucketPoint{
			Bucket: key, Label: label, Count: agg.ventas, Sum: &sum,
		})
	}
	return telemetry
}

// occupancySnapshot guards against a property with no enabled rooms: the
// rate is 0 instead of a division by zero.
func occupancySnapshot(occupied, totalRooms int) entities.OccupancySnapshot {
	snap := entities.OccupancySnapshot{
		Ocupadas:          occupied,
		TotalHabitaciones: totalRooms,
	}
	if totalRooms > 0 {
		snap.Tasa = math.Round(float64(occupied)/float64(totalRooms)*10000) / 10000
	}
	return snap
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
