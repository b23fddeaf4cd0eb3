package entities

// DashboardTotals aggregates reservations overlapping the requested range.
// Ventas counts only the subset matching the sale criterion; MontoTotal and
// MontoPagado sum over that same subset.
type DashboardTotals struct {
	Reservas    int     `json:"reservas"`
	Ventas      int     `json:"ventas"`
	MontoPagado float64 `json:"montoPagado"`
	MontoTotal  float64 `json:"montoTotal"`
}

// BucketPoint is one telemetry bucket. Sum is present only on the sale series.
type BucketPoint struct {
	Bucket string   `json:"bucket"`
	Label  string   `json:"label"`
	Count  int      `json:"count"`
	Sum    *float64 `json:"sum,omitempty"`
}

type DashboardTelemetry struct {
	AgruparPor string        `json:"agruparPor"`
	Reservas   []BucketPoint `json:"reservas"`
	Ventas     []BucketPoint `json:"ventas"`
}

type DashboardRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type OccupancySnapshot struct {
	Ocupadas          int     `json:"ocupadas"`
	TotalHabitaciones int     `json:"totalHabitaciones"`
	Tasa              float64 `json:"tasa"`
}

type DashboardSummary struct {
	Range     DashboardRange     `json:"range"`
	Totals    DashboardTotals    `json:"totals"`
	Telemetry DashboardTelemetry `json:"telemetry"`
	Ocupacion OccupancySnapshot  `json:"ocupacion"`
}
