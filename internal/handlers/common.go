package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/wayfinder/internal/hostprobe"
	"github.com/lehigh-university-libraries/wayfinder/internal/shelf"
)

type Handler struct {
	table *shelf.Table
	probe *hostprobe.Probe
}

// New creates a handler serving lookups against the given range table.
// probe may be nil when no discovery host is configured; the labels
// endpoint then reports service unavailable.
func New(table *shelf.Table, probe *hostprobe.Probe) *Handler {
	return &Handler{
		table: table,
		probe: probe,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
