package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"solarfin/pkg/core/tariff"
)

func TestHandleDefaults(t *testing.T) {
	h := NewHandler(tariff.Builtin())

	req := httptest.NewRequest("GET", "/api/config/defaults", nil)
	rec := httptest.NewRecorder()
	h.HandleDefaults(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var d tariff.Defaults
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.ModuleDegradation != 0.5 {
		t.Errorf("degradation = %.2f, want builtin 0.5", d.ModuleDegradation)
	}
}

func TestHandleTariffUpload(t *testing.T) {
	h := NewHandler(tariff.Builtin())

	html := `<table>
	<tr><td>Enel SP</td><td>SP</td><td>0,89</td><td>0,28</td></tr>
	</table>`
	req := httptest.NewRequest("POST", "/api/config/tariff", strings.NewReader(html))
	rec := httptest.NewRecorder()
	h.HandleTariffUpload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := h.Defaults().LookupDistributor("Enel SP"); !ok {
		t.Error("uploaded distributor not merged into defaults")
	}
}

func TestHandleTariffUploadRejectsGarbage(t *testing.T) {
	h := NewHandler(tariff.Builtin())

	req := httptest.NewRequest("POST", "/api/config/tariff", strings.NewReader("<p>nada</p>"))
	rec := httptest.NewRecorder()
	h.HandleTariffUpload(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}
