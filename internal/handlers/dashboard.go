package handlers

import (
	"log/slog"
	"net/http"

	"github.com/diewo77/go-hr/httpx"
	"github.com/diewo77/go-hr/internal/services"
)

type DashboardHandler struct {
	reports *services.ReportService
	log     *slog.Logger
}

func NewDashboardHandler(reports *services.ReportService, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{reports: reports, log: log}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}
