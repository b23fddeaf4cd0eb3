package api

import (
	"net/http"
	"strconv"
	"time"

	"hosteria/internal/service"
)

type DashboardHandler struct {
	Service *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: svc}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	bucketDays, _ := strconv.Atoi(query.Get("bucketDays"))
	q := service.DashboardQuery{
		From:       query.Get("from"),
		To:         query.Get("to"),
		GroupBy:    query.Get("agruparPor"),
		BucketDays: bucketDays,
		LabelMode:  query.Get("label"),
		Locale:     query.Get("locale"),
		VentaBy:    query.Get("ventaBy"),
	}
	summary, err := h.Service.Summary(q, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
