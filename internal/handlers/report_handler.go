package handlers

import (
	"fmt"
	"net/http"

	"payfam-backend/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// GetMonthlyReport returns the report as JSON for in-app rendering
func (h *ReportHandler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	report, err := h.Service.BuildMonthlyReport(r.Context(), month, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ExportMonthlyReport streams the report as a CSV or PDF download.
// Format comes from ?format=csv|pdf, defaulting to CSV.
func (h *ReportHandler) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")

	data, filename, contentType, err := h.Service.ExportMonthlyReport(r.Context(), month, year, format)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}
