package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"spscan/infrastructure/reportstore"
	"spscan/logging"
)

// ReportHandlers serves stored scan reports over HTTP.
type ReportHandlers struct {
	store  *reportstore.Store
	logger *logging.Logger
}

// NewReportHandlers creates the handler set over a report store.
func NewReportHandlers(store *reportstore.Store) *ReportHandlers {
	return &ReportHandlers{
		store:  store,
		logger: logging.Default().WithComponent("report_handlers"),
	}
}

// RegisterRoutes mounts the scan-history routes.
func (h *ReportHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/scans", h.ListScans)
	r.Get("/scans/{id}", h.GetScan)
}

// ListScans returns scan summaries, most recent first.
func (h *ReportHandlers) ListScans(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list scans", "error", err.Error())
		http.Error(w, "failed to list scans", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, summaries)
}

// GetScan returns one stored report as JSON.
func (h *ReportHandlers) GetScan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid scan id", http.StatusBadRequest)
		return
	}

	report, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.logger.Warn("Scan lookup failed", "scan_id", id, "error", err.Error())
		http.Error(w, "scan not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, report)
}

func (h *ReportHandlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err.Error())
	}
}
