package finance

import (
	"math"
	"testing"
)

func sensitivityInput() FinancialInput {
	gen := make([]float64, 12)
	cons := make([]float64, 12)
	for i := range gen {
		gen[i] = 800
		cons[i] = 600
	}
	return FinancialInput{
		InitialInvestment:      30000,
		MonthlyGeneration:      gen,
		MonthlyConsumption:     cons,
		EnergyTariff:           0.90,
		WireCharge:             0.30,
		UsefulLife:             25,
		DiscountRate:           8,
		EnergyInflation:        4.5,
		ModuleDegradation:      0.5,
		OperatingCost:          300,
		OperatingCostInflation: 4,
	}
}

func TestSweepGrids(t *testing.T) {
	s := AnalyzeSensitivity(sensitivityInput())

	if got := len(s.TariffCurve); got != 9 {
		t.Errorf("tariff curve has %d points, want 9 (-20..+20 step 5)", got)
	}
	if got := len(s.InflationCurve); got != 13 {
		t.Errorf("inflation curve has %d points, want 13 (2.0..8.0 step 0.5)", got)
	}
	if got := len(s.DiscountCurve); got != 17 {
		t.Errorf("discount curve has %d points, want 17 (4.0..12.0 step 0.5)", got)
	}

	if s.TariffCurve[0].Param != -20 || s.TariffCurve[8].Param != 20 {
		t.Errorf("tariff sweep bounds wrong: %.1f..%.1f", s.TariffCurve[0].Param, s.TariffCurve[8].Param)
	}
	if math.Abs(s.DiscountCurve[16].Param-12.0) > 1e-9 {
		t.Errorf("discount sweep upper bound = %.3f, want 12.0", s.DiscountCurve[16].Param)
	}
}

func TestTariffCurveMonotonicity(t *testing.T) {
	s := AnalyzeSensitivity(sensitivityInput())
	for i := 1; i < len(s.TariffCurve); i++ {
		if s.TariffCurve[i].NPV < s.TariffCurve[i-1].NPV {
			t.Errorf("NPV decreased from %.2f to %.2f as tariff rose",
				s.TariffCurve[i-1].NPV, s.TariffCurve[i].NPV)
		}
	}
}

func TestDiscountCurveMonotonicity(t *testing.T) {
	// Higher discounting always shrinks positive future flows.
	s := AnalyzeSensitivity(sensitivityInput())
	for i := 1; i < len(s.DiscountCurve); i++ {
		if s.DiscountCurve[i].NPV > s.DiscountCurve[i-1].NPV {
			t.Errorf("NPV increased from %.2f to %.2f as discount rate rose",
				s.DiscountCurve[i-1].NPV, s.DiscountCurve[i].NPV)
		}
	}
}

func TestSweepPointMatchesDirectRun(t *testing.T) {
	base := sensitivityInput()
	s := AnalyzeSensitivity(base)

	// The +10% tariff point must equal an independent run at that tariff.
	in := base
	in.EnergyTariff = base.EnergyTariff * 1.10
	want := NPV(BuildCashFlow(in)) - in.InitialInvestment

	var got float64
	for _, p := range s.TariffCurve {
		if p.Param == 10 {
			got = p.NPV
		}
	}
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("sweep point NPV = %.4f, direct run = %.4f", got, want)
	}
}

func TestScenarios(t *testing.T) {
	results := RunScenarios(sensitivityInput())
	if len(results) != 4 {
		t.Fatalf("got %d scenarios, want 4", len(results))
	}

	byName := map[string]ScenarioResult{}
	for _, r := range results {
		byName[r.Scenario] = r
	}
	for _, name := range []string{"base", "otimista", "conservador", "pessimista"} {
		if _, ok := byName[name]; !ok {
			t.Fatalf("missing scenario %q", name)
		}
	}

	if byName["otimista"].NPV < byName["base"].NPV {
		t.Error("optimistic NPV below base")
	}
	if byName["pessimista"].NPV > byName["base"].NPV {
		t.Error("pessimistic NPV above base")
	}
	if byName["conservador"].NPV > byName["base"].NPV {
		t.Error("conservative NPV above base")
	}
}

func TestScenarioApplyDoesNotMutateBase(t *testing.T) {
	base := sensitivityInput()
	tariffBefore := base.EnergyTariff

	ScenarioPessimistic.apply(base)
	if base.EnergyTariff != tariffBefore {
		t.Error("apply mutated the base input")
	}
}
