// Package finance implements the financial viability engine for solar PV
// proposals: multi-year cash-flow projection, discounted indicators (NPV,
// IRR, payback, LCOE) and sensitivity analysis.
//
// Every function in this package is pure and deterministic: no I/O, no
// shared state across calls. Numeric degeneracy (zero generation, zero
// denominators, non-convergent IRR) produces sentinel values, never a panic,
// so a failed computation still yields a complete, well-typed result.
package finance

// FinancialInput is the immutable input record for one viability analysis.
// JSON tags follow the wire contract used by the proposal frontend, which is
// why they are in Portuguese while the Go names are not.
type FinancialInput struct {
	// InitialInvestment is the upfront capital outlay in BRL. Must be > 0.
	InitialInvestment float64 `json:"investimento_inicial"`

	// MonthlyGeneration and MonthlyConsumption hold year-1 energy per
	// calendar month in kWh. Both must have exactly 12 non-negative entries.
	MonthlyGeneration  []float64 `json:"geracao_mensal"`
	MonthlyConsumption []float64 `json:"consumo_mensal"`

	// EnergyTariff is the retail tariff in BRL/kWh applied to self-consumed
	// energy. WireCharge (fio B) is the lower compensation rate in BRL/kWh
	// applied to exported surplus under the net-metering scheme.
	EnergyTariff float64 `json:"tarifa_energia"`
	WireCharge   float64 `json:"custo_fio_b"`

	// UsefulLife is the projection horizon in years, 1..50.
	UsefulLife int `json:"vida_util"`

	// Rates below are percentages per year (e.g. 8.0 means 8%).
	DiscountRate    float64 `json:"taxa_desconto"`
	EnergyInflation float64 `json:"inflacao_energia"`

	// ModuleDegradation is the annual reduction of generation capability.
	ModuleDegradation float64 `json:"degradacao_modulos"`

	// OperatingCost is year-1 O&M in BRL, inflated annually by
	// OperatingCostInflation.
	OperatingCost          float64 `json:"custo_om"`
	OperatingCostInflation float64 `json:"inflacao_om"`
}

// CashFlowYear is one row of the projection, immutable once computed.
type CashFlowYear struct {
	Year               int     `json:"ano"`
	AnnualGeneration   float64 `json:"geracaoAnual"`
	SelfConsumedEnergy float64 `json:"energiaAutoconsumida"`
	ExportedEnergy     float64 `json:"energiaInjetada"`
	EnergySaving       float64 `json:"economiaEnergia"`
	OperatingCosts     float64 `json:"custosOM"`
	NetCashFlow        float64 `json:"fluxoLiquido"`
	CumulativeCashFlow float64 `json:"fluxoAcumulado"`
	PresentValue       float64 `json:"valorPresente"`
}

// IRRResult carries the internal rate of return together with an explicit
// convergence flag. The solver always returns the last rate tried; callers
// must check Converged before treating Value as meaningful.
type IRRResult struct {
	Value      float64 `json:"valor"` // decimal rate, e.g. 0.151
	Converged  bool    `json:"convergiu"`
	Iterations int     `json:"iteracoes"`
}

// Indicators groups the derived scalar indicators.
type Indicators struct {
	// SpecificYield is year-1 generation per thousand BRL invested.
	SpecificYield float64 `json:"yieldEspecifico"`
	// LCOE is the levelized cost of energy in BRL/kWh (0 when generation
	// is zero over the whole horizon).
	LCOE float64 `json:"custoNiveladoEnergia"`
	// InvestmentEfficiency is average annual saving over investment, in %.
	InvestmentEfficiency float64 `json:"eficienciaInvestimento"`
	// ROI is lifetime savings net of investment over investment, in %.
	ROI float64 `json:"retornoSobreInvestimento"`
}

// SweepPoint is one point of a sensitivity response curve. Param is the
// swept parameter value: a percentage variation for the tariff curve, an
// absolute rate for the inflation and discount curves.
type SweepPoint struct {
	Param float64 `json:"parametro"`
	NPV   float64 `json:"vpl"`
}

// Sensitivity holds the three NPV response curves of the sweep analysis.
type Sensitivity struct {
	TariffCurve    []SweepPoint `json:"vplVariacaoTarifa"`
	InflationCurve []SweepPoint `json:"vplVariacaoInflacao"`
	DiscountCurve  []SweepPoint `json:"vplVariacaoDesconto"`
}

// ScenarioResult is the outcome of one named scenario run.
type ScenarioResult struct {
	Scenario      string  `json:"cenario"`
	NPV           float64 `json:"vpl"`
	IRR           float64 `json:"tir"` // percent
	IRRConverged  bool    `json:"tir_convergiu"`
	SimplePayback float64 `json:"payback_simples"`
}

// FinancialResult is the complete output of an analysis. It is always fully
// populated: degenerate inputs yield sentinel fields (see package doc), so
// the presentation layer can render "N/A" without branching on errors.
//
// NPV here is the true net present value, i.e. the discounted inflows minus
// the initial investment (see NPV for the underlying convention).
type FinancialResult struct {
	NPV               float64 `json:"vpl"`
	IRR               float64 `json:"tir"` // percent
	IRRConverged      bool    `json:"tir_convergiu"`
	SimplePayback     float64 `json:"payback_simples"`
	DiscountedPayback float64 `json:"payback_descontado"`
	// The recovery flags distinguish a payback landing exactly on the
	// horizon from the never-recovered sentinel. They move independently:
	// at positive discount rates the simple payback often recovers while
	// the discounted one does not.
	PaybackRecovered           bool             `json:"payback_recuperado"`
	DiscountedPaybackRecovered bool             `json:"payback_descontado_recuperado"`
	TotalSavings               float64          `json:"economia_total_25_anos"`
	AverageAnnualSaving        float64          `json:"economia_anual_media"`
	ProfitabilityIndex         float64          `json:"lucratividade_index"`
	CashFlow                   []CashFlowYear   `json:"cash_flow"`
	Indicators                 Indicators       `json:"indicadores"`
	Sensitivity                Sensitivity      `json:"sensibilidade"`
	Scenarios                  []ScenarioResult `json:"cenarios"`
}
