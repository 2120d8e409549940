package finance

// Analyze runs the full engine on one input: cash-flow projection, scalar
// metrics, sensitivity curves and named scenarios. Inputs are assumed to
// have passed validation (see pkg/core/validate); degenerate numerics still
// produce a complete result with sentinel fields.
func Analyze(input FinancialInput) FinancialResult {
	cashFlow := BuildCashFlow(input)

	// NPV() excludes the outlay by convention; subtract it here, once.
	npv := NPV(cashFlow) - input.InitialInvestment
	irr := IRR(cashFlow, input.InitialInvestment)
	simplePayback, recovered := SimplePayback(cashFlow, input.InitialInvestment)
	discountedPayback, discountedRecovered := DiscountedPayback(cashFlow, input.InitialInvestment)

	var totalSavings float64
	for _, cf := range cashFlow {
		totalSavings += cf.EnergySaving
	}
	averageSaving := 0.0
	if len(cashFlow) > 0 {
		averageSaving = totalSavings / float64(len(cashFlow))
	}

	return FinancialResult{
		NPV:                        npv,
		IRR:                        irr.Value * 100,
		IRRConverged:               irr.Converged,
		SimplePayback:              simplePayback,
		DiscountedPayback:          discountedPayback,
		PaybackRecovered:           recovered,
		DiscountedPaybackRecovered: discountedRecovered,
		TotalSavings:               totalSavings,
		AverageAnnualSaving:        averageSaving,
		ProfitabilityIndex:         ProfitabilityIndex(npv, input.InitialInvestment),
		CashFlow:                   cashFlow,
		Indicators:                 ComputeIndicators(input, cashFlow),
		Sensitivity:                AnalyzeSensitivity(input),
		Scenarios:                  RunScenarios(input),
	}
}
