package api

import (
	"net/http"
	"strconv"

	"hosteria/internal/service"
)

type AuditHandler struct {
	Service *service.AuditService
}

func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{Service: svc}
}

func (h *AuditHandler) ListAudits(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.Service.ListEntries(limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
