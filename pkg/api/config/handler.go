// Package config exposes the platform defaults over HTTP: the injected
// tariff/irradiation tables and an upload endpoint for refreshed
// distributor rate pages.
package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"solarfin/pkg/core/tariff"
)

// Handler holds dependencies for config endpoints.
type Handler struct {
	mu       sync.RWMutex
	defaults *tariff.Defaults
}

// NewHandler creates a config handler over the loaded defaults.
func NewHandler(defaults *tariff.Defaults) *Handler {
	return &Handler{defaults: defaults}
}

// Defaults returns the current defaults snapshot.
func (h *Handler) Defaults() *tariff.Defaults {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.defaults
}

// HandleDefaults serves GET /api/config/defaults.
func (h *Handler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	h.mu.RLock()
	defer h.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.defaults)
}

// HandleTariffUpload serves POST /api/config/tariff. The body is a raw
// distributor rate page (HTML); parsed rows are merged into the defaults.
func (h *Handler) HandleTariffUpload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	rows, err := tariff.ParseTariffTable(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.defaults.MergeDistributors(rows)
	total := len(h.defaults.Distributors)
	h.mu.Unlock()

	fmt.Printf("[CONFIG] Merged %d tariff rows (%d distributors known)\n", len(rows), total)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"linhas_importadas": len(rows), "distribuidoras": total})
}
