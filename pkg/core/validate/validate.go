// Package validate checks FinancialInput records before they reach the
// engine. Hand-entered proposal forms usually have several fields wrong at
// once, so validation collects every violation instead of stopping at the
// first one.
package validate

import (
	"fmt"
	"strings"

	"solarfin/pkg/core/finance"
)

// MonthsPerYear is the required length of the monthly series.
const MonthsPerYear = 12

// MaxUsefulLife bounds the projection horizon in years.
const MaxUsefulLife = 50

// InputError aggregates every violation found in one input.
type InputError struct {
	Violations []string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid financial input: %s", strings.Join(e.Violations, "; "))
}

// Input returns nil when the record satisfies every invariant, or an
// *InputError listing all violations otherwise.
func Input(in finance.FinancialInput) error {
	var violations []string

	if in.InitialInvestment <= 0 {
		violations = append(violations, fmt.Sprintf("investimento_inicial must be > 0, got %.2f", in.InitialInvestment))
	}

	violations = append(violations, checkMonthly("geracao_mensal", in.MonthlyGeneration)...)
	violations = append(violations, checkMonthly("consumo_mensal", in.MonthlyConsumption)...)

	if in.UsefulLife <= 0 || in.UsefulLife > MaxUsefulLife {
		violations = append(violations, fmt.Sprintf("vida_util must be in 1..%d years, got %d", MaxUsefulLife, in.UsefulLife))
	}
	if in.DiscountRate < 0 {
		violations = append(violations, fmt.Sprintf("taxa_desconto must be >= 0, got %.2f", in.DiscountRate))
	}
	if in.EnergyTariff < 0 {
		violations = append(violations, fmt.Sprintf("tarifa_energia must be >= 0, got %.4f", in.EnergyTariff))
	}
	if in.WireCharge < 0 {
		violations = append(violations, fmt.Sprintf("custo_fio_b must be >= 0, got %.4f", in.WireCharge))
	}
	if in.ModuleDegradation < 0 || in.ModuleDegradation > 100 {
		violations = append(violations, fmt.Sprintf("degradacao_modulos must be in 0..100 percent, got %.2f", in.ModuleDegradation))
	}
	if in.OperatingCost < 0 {
		violations = append(violations, fmt.Sprintf("custo_om must be >= 0, got %.2f", in.OperatingCost))
	}

	if len(violations) == 0 {
		return nil
	}
	return &InputError{Violations: violations}
}

func checkMonthly(field string, series []float64) []string {
	var violations []string
	if len(series) != MonthsPerYear {
		violations = append(violations, fmt.Sprintf("%s must have exactly %d entries, got %d", field, MonthsPerYear, len(series)))
	}
	for i, v := range series {
		if v < 0 {
			violations = append(violations, fmt.Sprintf("%s[%d] must be >= 0, got %.2f", field, i, v))
		}
	}
	return violations
}
