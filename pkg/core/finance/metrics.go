package finance

import "math"

// IRR solver parameters. The clamp bounds keep Newton-Raphson from diverging
// on pathological flows; the residual tolerance is in currency units.
const (
	irrInitialGuess  = 0.10
	irrMaxIterations = 100
	irrTolerance     = 1e-4
	irrRateFloor     = -0.99
	irrRateCeiling   = 10.0
)

// NPV sums the present value of every projected year.
//
// Convention: the value returned here EXCLUDES the initial outlay; callers
// subtract initialInvestment themselves to obtain the true net present
// value. Every call site in this repository follows this convention.
func NPV(cashFlow []CashFlowYear) float64 {
	var total float64
	for _, cf := range cashFlow {
		total += cf.PresentValue
	}
	return total
}

// npvAtRate evaluates -initialInvestment + sum(netCashFlow_y / (1+r)^y),
// the residual whose root is the IRR, together with its derivative in r.
func npvAtRate(cashFlow []CashFlowYear, initialInvestment, rate float64) (residual, derivative float64) {
	residual = -initialInvestment
	for _, cf := range cashFlow {
		y := float64(cf.Year)
		discount := math.Pow(1+rate, y)
		residual += cf.NetCashFlow / discount
		derivative -= y * cf.NetCashFlow / (discount * (1 + rate))
	}
	return residual, derivative
}

// IRR finds the discount rate at which the net present value of the flow,
// including the initial outlay, is zero. Newton-Raphson with a fixed guess,
// bounded iterations and a per-iteration clamp; it always terminates.
//
// When the solver cannot converge (flat derivative, iteration budget
// exhausted) the result carries the last rate tried with Converged=false.
// Callers must not display an unconverged value as a valid rate.
func IRR(cashFlow []CashFlowYear, initialInvestment float64) IRRResult {
	rate := irrInitialGuess

	for i := 1; i <= irrMaxIterations; i++ {
		residual, derivative := npvAtRate(cashFlow, initialInvestment, rate)
		if math.Abs(residual) < irrTolerance {
			return IRRResult{Value: rate, Converged: true, Iterations: i}
		}
		if derivative == 0 {
			// No slope to follow; bail out with the last rate tried.
			return IRRResult{Value: rate, Converged: false, Iterations: i}
		}
		rate -= residual / derivative
		if rate < irrRateFloor {
			rate = irrRateFloor
		} else if rate > irrRateCeiling {
			rate = irrRateCeiling
		}
	}

	return IRRResult{Value: rate, Converged: false, Iterations: irrMaxIterations}
}

// SimplePayback returns the fractional year at which the cumulative
// undiscounted flow first crosses zero, linearly interpolated inside the
// crossing year.
//
// When the investment is never recovered within the horizon it returns
// (usefulLife, false): the horizon itself is the sentinel, and the boolean
// distinguishes it from a payback that lands exactly on the horizon.
func SimplePayback(cashFlow []CashFlowYear, initialInvestment float64) (float64, bool) {
	previous := -initialInvestment
	for _, cf := range cashFlow {
		if cf.CumulativeCashFlow >= 0 {
			if cf.NetCashFlow <= 0 {
				return float64(cf.Year), true
			}
			return float64(cf.Year-1) + (-previous)/cf.NetCashFlow, true
		}
		previous = cf.CumulativeCashFlow
	}
	return float64(len(cashFlow)), false
}

// DiscountedPayback is SimplePayback against the cumulative discounted flow.
func DiscountedPayback(cashFlow []CashFlowYear, initialInvestment float64) (float64, bool) {
	cumulative := -initialInvestment
	for _, cf := range cashFlow {
		previous := cumulative
		cumulative += cf.PresentValue
		if cumulative >= 0 {
			if cf.PresentValue <= 0 {
				return float64(cf.Year), true
			}
			return float64(cf.Year-1) + (-previous)/cf.PresentValue, true
		}
	}
	return float64(len(cashFlow)), false
}

// LCOE is the levelized cost of energy: total discounted lifecycle cost over
// total discounted generation, in BRL/kWh. Zero lifetime generation yields 0
// (the project is unviable, not an error).
func LCOE(initialInvestment float64, cashFlow []CashFlowYear, discountRate float64) float64 {
	discount := discountRate / 100
	var discountedCosts, discountedGeneration float64
	for _, cf := range cashFlow {
		factor := math.Pow(1+discount, float64(cf.Year))
		discountedCosts += cf.OperatingCosts / factor
		discountedGeneration += cf.AnnualGeneration / factor
	}
	if discountedGeneration == 0 {
		return 0
	}
	return (initialInvestment + discountedCosts) / discountedGeneration
}

// ProfitabilityIndex is discounted inflows over the initial outlay,
// expressed from the true NPV: (npv + investment) / investment.
func ProfitabilityIndex(npv, initialInvestment float64) float64 {
	if initialInvestment == 0 {
		return 0
	}
	return (npv + initialInvestment) / initialInvestment
}

// ComputeIndicators derives the scalar indicators block from a built flow.
// All divisions are guarded; degenerate inputs produce zeros.
func ComputeIndicators(input FinancialInput, cashFlow []CashFlowYear) Indicators {
	ind := Indicators{
		LCOE: LCOE(input.InitialInvestment, cashFlow, input.DiscountRate),
	}
	if input.InitialInvestment == 0 || len(cashFlow) == 0 {
		return ind
	}

	var totalSavings float64
	for _, cf := range cashFlow {
		totalSavings += cf.EnergySaving
	}
	averageSaving := totalSavings / float64(len(cashFlow))

	ind.SpecificYield = cashFlow[0].AnnualGeneration / (input.InitialInvestment / 1000)
	ind.InvestmentEfficiency = averageSaving / input.InitialInvestment * 100
	ind.ROI = (totalSavings - input.InitialInvestment) / input.InitialInvestment * 100
	return ind
}
