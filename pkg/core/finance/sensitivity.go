package finance

import "sync"

// Sweep grids. Tariff points are percentage variations applied to the base
// tariff; inflation and discount points are absolute rates replacing the
// base value.
var (
	tariffVariations = steps(-20, 20, 5)
	inflationRates   = steps(2.0, 8.0, 0.5)
	discountRates    = steps(4.0, 12.0, 0.5)
)

func steps(lo, hi, step float64) []float64 {
	var out []float64
	// Epsilon absorbs float drift so the upper bound is always included.
	for v := lo; v <= hi+step/1e6; v += step {
		out = append(out, v)
	}
	return out
}

// npvForInput is the true NPV (net of the initial outlay) of a single
// pipeline run, the quantity every sweep point reports.
func npvForInput(input FinancialInput) float64 {
	return NPV(BuildCashFlow(input)) - input.InitialInvestment
}

// AnalyzeSensitivity re-runs the cash-flow builder and NPV under parameter
// perturbations, holding all other inputs at base value. Each point is an
// independent pure computation, so the sweeps fan out across goroutines and
// join on a WaitGroup; results land at fixed indices, no locking needed.
func AnalyzeSensitivity(base FinancialInput) Sensitivity {
	return Sensitivity{
		TariffCurve: sweep(tariffVariations, func(p float64) float64 {
			in := base
			in.EnergyTariff = base.EnergyTariff * (1 + p/100)
			return npvForInput(in)
		}),
		InflationCurve: sweep(inflationRates, func(p float64) float64 {
			in := base
			in.EnergyInflation = p
			return npvForInput(in)
		}),
		DiscountCurve: sweep(discountRates, func(p float64) float64 {
			in := base
			in.DiscountRate = p
			return npvForInput(in)
		}),
	}
}

func sweep(points []float64, eval func(p float64) float64) []SweepPoint {
	out := make([]SweepPoint, len(points))
	var wg sync.WaitGroup
	for i, p := range points {
		wg.Add(1)
		go func(i int, p float64) {
			defer wg.Done()
			out[i] = SweepPoint{Param: p, NPV: eval(p)}
		}(i, p)
	}
	wg.Wait()
	return out
}

// Scenario identifies one named parameter set of the scenario analysis.
type Scenario int

const (
	ScenarioBase Scenario = iota
	ScenarioOptimistic
	ScenarioConservative
	ScenarioPessimistic
)

func (s Scenario) String() string {
	switch s {
	case ScenarioOptimistic:
		return "otimista"
	case ScenarioConservative:
		return "conservador"
	case ScenarioPessimistic:
		return "pessimista"
	default:
		return "base"
	}
}

// apply returns the base input with this scenario's adjustments. Tariff and
// O&M move multiplicatively, energy inflation additively (percentage
// points), degradation multiplicatively.
func (s Scenario) apply(base FinancialInput) FinancialInput {
	in := base
	switch s {
	case ScenarioOptimistic:
		in.EnergyTariff *= 1.10
		in.EnergyInflation += 1.0
		in.OperatingCost *= 0.90
		in.ModuleDegradation *= 0.80
	case ScenarioConservative:
		in.EnergyTariff *= 0.95
		in.EnergyInflation -= 0.5
		in.OperatingCost *= 1.10
		in.ModuleDegradation *= 1.20
	case ScenarioPessimistic:
		in.EnergyTariff *= 0.90
		in.EnergyInflation -= 1.0
		in.OperatingCost *= 1.25
		in.ModuleDegradation *= 1.50
	}
	return in
}

// RunScenarios evaluates the four named scenarios, full pipeline each.
// Order is fixed: base, optimistic, conservative, pessimistic.
func RunScenarios(base FinancialInput) []ScenarioResult {
	scenarios := []Scenario{ScenarioBase, ScenarioOptimistic, ScenarioConservative, ScenarioPessimistic}
	out := make([]ScenarioResult, len(scenarios))

	var wg sync.WaitGroup
	for i, s := range scenarios {
		wg.Add(1)
		go func(i int, s Scenario) {
			defer wg.Done()
			in := s.apply(base)
			cf := BuildCashFlow(in)
			npv := NPV(cf) - in.InitialInvestment
			irr := IRR(cf, in.InitialInvestment)
			payback, _ := SimplePayback(cf, in.InitialInvestment)
			out[i] = ScenarioResult{
				Scenario:      s.String(),
				NPV:           npv,
				IRR:           irr.Value * 100,
				IRRConverged:  irr.Converged,
				SimplePayback: payback,
			}
		}(i, s)
	}
	wg.Wait()
	return out
}
