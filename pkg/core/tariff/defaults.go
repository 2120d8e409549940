// Package tariff holds the engine's injected default tables: module
// degradation, O&M inflation, per-state irradiation and per-distributor
// tariffs. Earlier versions of the platform scattered these as module-level
// constant maps; they now live in one configuration object loaded at startup
// and passed to whoever needs it, keeping the engine pure and testable with
// arbitrary inputs.
package tariff

import (
	"fmt"
	"os"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
)

// DistributorTariff is one row of the distributor rate table.
type DistributorTariff struct {
	Distributor string  `json:"distribuidora"`
	State       string  `json:"uf"`
	EnergyKWh   float64 `json:"tarifa_kwh"`   // BRL/kWh, retail
	WireKWh     float64 `json:"fio_b_kwh"`    // BRL/kWh, compensation
	UpdatedAt   string  `json:"atualizado_em"`
}

// Defaults is the configuration object injected into handlers and the CLI.
type Defaults struct {
	ModuleDegradation      float64 `json:"degradacao_modulos"` // % per year
	OperatingCostInflation float64 `json:"inflacao_om"`        // % per year
	DiscountRate           float64 `json:"taxa_desconto"`      // % per year
	EnergyInflation        float64 `json:"inflacao_energia"`   // % per year
	SystemLosses           float64 `json:"perdas_sistema"`     // % of generation

	// Irradiation maps a state code (UF) to average kWh/m²/day.
	Irradiation map[string]float64 `json:"irradiacao"`

	Distributors []DistributorTariff `json:"distribuidoras"`
}

// Builtin returns the compiled-in fallback used when no config file is
// available. Values track the 2024 ANEEL reference tables.
func Builtin() *Defaults {
	return &Defaults{
		ModuleDegradation:      0.5,
		OperatingCostInflation: 4.0,
		DiscountRate:           8.0,
		EnergyInflation:        4.5,
		SystemLosses:           18.0,
		Irradiation: map[string]float64{
			"SP": 4.6, "MG": 5.3, "BA": 5.5, "CE": 5.7, "RS": 4.8, "PR": 4.9,
		},
	}
}

// Load reads an HJSON defaults file. Missing scalar fields fall back to the
// builtin values so a partial file is still usable.
func Load(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults file: %w", err)
	}
	return Parse(data)
}

// Parse decodes HJSON defaults content.
func Parse(data []byte) (*Defaults, error) {
	d := Builtin()
	if err := hjson.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("parse defaults: %w", err)
	}
	return d, nil
}

// OrDegradation resolves an optional wire field against the default.
func (d *Defaults) OrDegradation(v *float64) float64 {
	if v != nil {
		return *v
	}
	return d.ModuleDegradation
}

// OrOMInflation resolves an optional wire field against the default.
func (d *Defaults) OrOMInflation(v *float64) float64 {
	if v != nil {
		return *v
	}
	return d.OperatingCostInflation
}

// LookupDistributor finds a distributor tariff by name, case-insensitive.
func (d *Defaults) LookupDistributor(name string) (DistributorTariff, bool) {
	for _, dist := range d.Distributors {
		if strings.EqualFold(dist.Distributor, name) {
			return dist, true
		}
	}
	return DistributorTariff{}, false
}

// LookupIrradiation returns the average irradiation for a state code.
func (d *Defaults) LookupIrradiation(uf string) (float64, bool) {
	v, ok := d.Irradiation[strings.ToUpper(uf)]
	return v, ok
}

// MergeDistributors replaces or appends scraped distributor rows, keyed by
// distributor name.
func (d *Defaults) MergeDistributors(rows []DistributorTariff) {
	for _, row := range rows {
		replaced := false
		for i, existing := range d.Distributors {
			if strings.EqualFold(existing.Distributor, row.Distributor) {
				d.Distributors[i] = row
				replaced = true
				break
			}
		}
		if !replaced {
			d.Distributors = append(d.Distributors, row)
		}
	}
}
