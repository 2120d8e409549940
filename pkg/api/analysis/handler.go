// Package analysis exposes the financial engine over HTTP. Authorization is
// the gateway's concern: requests arriving here are assumed to be already
// permitted, mirroring how the engine itself performs no checks.
package analysis

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"solarfin/pkg/core/finance"
	"solarfin/pkg/core/pipeline"
	"solarfin/pkg/core/report"
	"solarfin/pkg/core/store"
	"solarfin/pkg/core/tariff"
	"solarfin/pkg/core/validate"
)

// Request is the wire input of the run endpoint. The three trailing fields
// are optional: when absent, platform defaults fill them.
type Request struct {
	ProjectID string `json:"projeto_id,omitempty"`
	Name      string `json:"nome,omitempty"`

	InitialInvestment  float64   `json:"investimento_inicial"`
	MonthlyGeneration  []float64 `json:"geracao_mensal"`
	MonthlyConsumption []float64 `json:"consumo_mensal"`
	EnergyTariff       float64   `json:"tarifa_energia"`
	WireCharge         float64   `json:"custo_fio_b"`
	UsefulLife         int       `json:"vida_util"`
	DiscountRate       float64   `json:"taxa_desconto"`
	EnergyInflation    float64   `json:"inflacao_energia"`

	ModuleDegradation      *float64 `json:"degradacao_modulos,omitempty"`
	OperatingCost          float64  `json:"custo_om,omitempty"`
	OperatingCostInflation *float64 `json:"inflacao_om,omitempty"`
}

// Handler holds the dependencies of the analysis endpoints.
type Handler struct {
	Orch     *pipeline.Orchestrator
	Repo     store.ProjectRepository
	Defaults *tariff.Defaults
}

// NewHandler creates an analysis handler. Repo may be nil when running
// without persistence; project endpoints then return 503.
func NewHandler(orch *pipeline.Orchestrator, repo store.ProjectRepository, defaults *tariff.Defaults) *Handler {
	return &Handler{Orch: orch, Repo: repo, Defaults: defaults}
}

// resolve converts the wire request into an engine input plus an optional
// project id, applying defaults to absent fields.
func (h *Handler) resolve(req Request) (pipeline.Request, error) {
	input := finance.FinancialInput{
		InitialInvestment:      req.InitialInvestment,
		MonthlyGeneration:      req.MonthlyGeneration,
		MonthlyConsumption:     req.MonthlyConsumption,
		EnergyTariff:           req.EnergyTariff,
		WireCharge:             req.WireCharge,
		UsefulLife:             req.UsefulLife,
		DiscountRate:           req.DiscountRate,
		EnergyInflation:        req.EnergyInflation,
		ModuleDegradation:      h.Defaults.OrDegradation(req.ModuleDegradation),
		OperatingCost:          req.OperatingCost,
		OperatingCostInflation: h.Defaults.OrOMInflation(req.OperatingCostInflation),
	}

	job := pipeline.Request{Name: req.Name, Input: input}
	if req.ProjectID != "" {
		id, err := uuid.Parse(req.ProjectID)
		if err != nil {
			return job, fmt.Errorf("invalid projeto_id %q: %w", req.ProjectID, err)
		}
		job.ProjectID = &id
	}
	return job, nil
}

// HandleRun serves POST /api/analysis/run.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if !allowCORS(w, r, "POST, OPTIONS") {
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	job, err := h.resolve(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := h.Orch.Analyze(r.Context(), job)
	if err != nil {
		status := http.StatusInternalServerError
		if _, ok := err.(*validate.InputError); ok {
			// All violations travel in one message so the form can show
			// every wrong field at once.
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}
	fmt.Printf("[ANALYSIS] %d-year run served in %s\n", job.Input.UsefulLife, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleProject serves GET /api/analysis/project?id=<uuid>.
func (h *Handler) HandleProject(w http.ResponseWriter, r *http.Request) {
	if !allowCORS(w, r, "GET, OPTIONS") {
		return
	}
	if h.Repo == nil {
		http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
		return
	}

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "missing or invalid id parameter", http.StatusBadRequest)
		return
	}

	record, err := h.Repo.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// HandleReport serves POST /api/analysis/report. Accepts the same body as
// the run endpoint and returns the proposal report; ?formato=html renders
// HTML, anything else returns Markdown.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !allowCORS(w, r, "POST, OPTIONS") {
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	job, err := h.resolve(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Orch.Analyze(r.Context(), job)
	if err != nil {
		status := http.StatusInternalServerError
		if _, ok := err.(*validate.InputError); ok {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	opts := report.DefaultOptions(req.Name)
	if r.URL.Query().Get("formato") == "html" {
		html, err := report.HTML(job.Input, *result, opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, report.Markdown(job.Input, *result, opts))
}

// allowCORS writes the permissive dev headers and answers preflight.
// Returns false when the request was fully handled.
func allowCORS(w http.ResponseWriter, r *http.Request, methods string) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return false
	}
	return true
}
