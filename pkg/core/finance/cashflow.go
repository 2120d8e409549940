package finance

import "math"

// BuildCashFlow projects the yearly cash flow over the input's useful life.
// Pure and deterministic: identical inputs produce identical output.
//
// Per year y (1-based):
//   - generation degrades by (1 - degradation)^(y-1); consumption volume is
//     constant across years, only its price inflates;
//   - self-consumed energy (min of generation, consumption) is valued at the
//     full retail tariff, exported surplus at the lower wire charge. The
//     asymmetry models the net-metering compensation scheme and must never
//     collapse into a single rate;
//   - O&M costs inflate independently of the energy tariff;
//   - the cumulative flow is seeded at -initialInvestment before year 1.
//
// A useful life of 0 yields an empty slice; rejecting that is the input
// validator's job, not this function's.
func BuildCashFlow(input FinancialInput) []CashFlowYear {
	baseGeneration := sum(input.MonthlyGeneration)
	annualConsumption := sum(input.MonthlyConsumption)

	degradation := input.ModuleDegradation / 100
	inflation := input.EnergyInflation / 100
	omInflation := input.OperatingCostInflation / 100
	discount := input.DiscountRate / 100

	flows := make([]CashFlowYear, 0, input.UsefulLife)
	cumulative := -input.InitialInvestment

	for y := 1; y <= input.UsefulLife; y++ {
		degradationFactor := math.Pow(1-degradation, float64(y-1))
		annualGeneration := baseGeneration * degradationFactor

		selfConsumed := math.Min(annualGeneration, annualConsumption)
		exported := math.Max(0, annualGeneration-annualConsumption)

		inflationFactor := math.Pow(1+inflation, float64(y-1))
		consumptionSaving := selfConsumed * input.EnergyTariff * inflationFactor
		exportCompensation := exported * input.WireCharge * inflationFactor
		energySaving := consumptionSaving + exportCompensation

		operatingCosts := input.OperatingCost * math.Pow(1+omInflation, float64(y-1))

		netCashFlow := energySaving - operatingCosts
		cumulative += netCashFlow

		flows = append(flows, CashFlowYear{
			Year:               y,
			AnnualGeneration:   annualGeneration,
			SelfConsumedEnergy: selfConsumed,
			ExportedEnergy:     exported,
			EnergySaving:       energySaving,
			OperatingCosts:     operatingCosts,
			NetCashFlow:        netCashFlow,
			CumulativeCashFlow: cumulative,
			PresentValue:       netCashFlow / math.Pow(1+discount, float64(y)),
		})
	}

	return flows
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
