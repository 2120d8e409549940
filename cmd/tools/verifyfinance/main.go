// Command verifyfinance exercises the engine against a hand-checked
// reference case and prints PASS/FAIL per invariant. Useful as a smoke test
// after touching the numeric core, without spinning up the API.
package main

import (
	"fmt"
	"math"
	"os"

	"solarfin/pkg/core/finance"
)

// Reference case: 10,000 BRL investment, flat 2,000 BRL/year savings over
// 10 years, no inflation, no degradation, no O&M, 0% discount.
// Known answers: gross NPV 20,000; true NPV 10,000; IRR ~15.1%; payback 5.0.
func referenceInput() finance.FinancialInput {
	months := make([]float64, 12)
	consumption := make([]float64, 12)
	for i := range months {
		months[i] = 10000.0 / 12 // 10 MWh/year generated
		consumption[i] = 2000    // always above generation: full self-consumption
	}
	return finance.FinancialInput{
		InitialInvestment:  10000,
		MonthlyGeneration:  months,
		MonthlyConsumption: consumption,
		EnergyTariff:       0.20, // 10,000 kWh * 0.20 = 2,000/year
		WireCharge:         0.10,
		UsefulLife:         10,
		DiscountRate:       0,
		EnergyInflation:    0,
		ModuleDegradation:  0,
	}
}

func main() {
	input := referenceInput()
	cf := finance.BuildCashFlow(input)

	failed := 0
	check := func(name string, got, want, tol float64) {
		if math.Abs(got-want) <= tol {
			fmt.Printf("PASS  %-28s got %.4f\n", name, got)
			return
		}
		fmt.Printf("FAIL  %-28s got %.4f want %.4f\n", name, got, want)
		failed++
	}

	check("gross NPV @0%", finance.NPV(cf), 20000, 1e-6)
	check("true NPV @0%", finance.NPV(cf)-input.InitialInvestment, 10000, 1e-6)

	irr := finance.IRR(cf, input.InitialInvestment)
	if !irr.Converged {
		fmt.Println("FAIL  IRR did not converge")
		failed++
	}
	check("IRR", irr.Value, 0.1510, 0.002)

	payback, recovered := finance.SimplePayback(cf, input.InitialInvestment)
	if !recovered {
		fmt.Println("FAIL  payback not recovered")
		failed++
	}
	check("simple payback", payback, 5.0, 1e-9)

	lcoe := finance.LCOE(input.InitialInvestment, cf, input.DiscountRate)
	check("LCOE @0%", lcoe, 10000.0/100000.0, 1e-9) // 0.10 BRL/kWh

	// Cumulative conservation across the projection.
	cum := -input.InitialInvestment
	for _, year := range cf {
		cum += year.NetCashFlow
		if math.Abs(year.CumulativeCashFlow-cum) > 1e-9 {
			fmt.Printf("FAIL  cumulative flow broken at year %d\n", year.Year)
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d check(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("\nAll checks passed.")
}
