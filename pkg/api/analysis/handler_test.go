package analysis

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"solarfin/pkg/core/finance"
	"solarfin/pkg/core/pipeline"
	"solarfin/pkg/core/store"
	"solarfin/pkg/core/tariff"
)

func newTestHandler() (*Handler, *store.MemoryRepo) {
	repo := store.NewMemoryRepo()
	orch := pipeline.NewOrchestrator()
	orch.SetRepository(repo)
	return NewHandler(orch, repo, tariff.Builtin()), repo
}

func wireRequest() map[string]interface{} {
	gen := make([]float64, 12)
	cons := make([]float64, 12)
	for i := range gen {
		gen[i] = 800
		cons[i] = 600
	}
	return map[string]interface{}{
		"investimento_inicial": 30000,
		"geracao_mensal":       gen,
		"consumo_mensal":       cons,
		"tarifa_energia":       0.90,
		"custo_fio_b":          0.30,
		"vida_util":            25,
		"taxa_desconto":        8,
		"inflacao_energia":     4.5,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleRun(t *testing.T) {
	h, _ := newTestHandler()
	rec := postJSON(t, h.HandleRun, "/api/analysis/run", wireRequest())

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var result finance.FinancialResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.CashFlow) != 25 {
		t.Errorf("cash flow has %d years, want 25", len(result.CashFlow))
	}
	if len(result.Sensitivity.DiscountCurve) != 17 {
		t.Errorf("discount curve has %d points, want 17", len(result.Sensitivity.DiscountCurve))
	}

	// Optional fields absent: platform defaults must have been applied,
	// so year-2 generation is degraded by the default 0.5%.
	if result.CashFlow[1].AnnualGeneration >= result.CashFlow[0].AnnualGeneration {
		t.Error("default degradation was not applied")
	}
}

func TestHandleRunExplicitZeroDegradation(t *testing.T) {
	h, _ := newTestHandler()
	body := wireRequest()
	body["degradacao_modulos"] = 0

	rec := postJSON(t, h.HandleRun, "/api/analysis/run", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var result finance.FinancialResult
	json.Unmarshal(rec.Body.Bytes(), &result)
	// An explicit zero must survive, not be replaced by the default.
	if result.CashFlow[1].AnnualGeneration != result.CashFlow[0].AnnualGeneration {
		t.Error("explicit zero degradation was overridden by the default")
	}
}

func TestHandleRunValidation(t *testing.T) {
	h, _ := newTestHandler()
	body := wireRequest()
	body["investimento_inicial"] = 0
	body["vida_util"] = 99

	rec := postJSON(t, h.HandleRun, "/api/analysis/run", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}
	msg := rec.Body.String()
	// Both violations in one response.
	if !strings.Contains(msg, "investimento_inicial") || !strings.Contains(msg, "vida_util") {
		t.Errorf("response does not list all violations: %s", msg)
	}
}

func TestHandleRunPersistsProject(t *testing.T) {
	h, repo := newTestHandler()
	id := uuid.New()
	body := wireRequest()
	body["projeto_id"] = id.String()
	body["nome"] = "Fazenda Gama"

	rec := postJSON(t, h.HandleRun, "/api/analysis/run", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest("GET", "/api/analysis/project?id="+id.String(), nil)
	getRec := httptest.NewRecorder()
	h.HandleProject(getRec, req)
	if getRec.Code != http.StatusOK {
		t.Fatalf("project fetch status %d", getRec.Code)
	}

	var record store.ProjectRecord
	if err := json.Unmarshal(getRec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.Name != "Fazenda Gama" {
		t.Errorf("stored name = %q", record.Name)
	}
	_ = repo
}

func TestHandleProjectNotFound(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest("GET", "/api/analysis/project?id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	h.HandleProject(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestHandleReportValidation(t *testing.T) {
	// The report endpoint classifies errors like the run endpoint:
	// validation failures are 422, not a blanket client error.
	h, _ := newTestHandler()
	body := wireRequest()
	body["investimento_inicial"] = -100

	rec := postJSON(t, h.HandleReport, "/api/analysis/report", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "investimento_inicial") {
		t.Errorf("response does not name the violated field: %s", rec.Body.String())
	}
}

func TestHandleReportHTML(t *testing.T) {
	h, _ := newTestHandler()
	raw, _ := json.Marshal(wireRequest())

	req := httptest.NewRequest("POST", "/api/analysis/report?formato=html", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.HandleReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<table") {
		t.Error("HTML report missing tables")
	}
}
