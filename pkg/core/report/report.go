// Package report renders a FinancialResult into the proposal document shown
// to customers: a Markdown summary with the indicator table and yearly cash
// flow, optionally converted to HTML for the web viewer. The engine itself
// emits plain data; all formatting lives here.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"solarfin/pkg/core/finance"
)

// renderer converts the Markdown report to HTML. Tables are GFM pipe
// tables, so the table extension is required.
var renderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// Options controls which sections the report includes.
type Options struct {
	Title              string
	IncludeCashFlow    bool
	IncludeSensitivity bool
	IncludeScenarios   bool
}

// DefaultOptions renders every section.
func DefaultOptions(title string) Options {
	return Options{
		Title:              title,
		IncludeCashFlow:    true,
		IncludeSensitivity: true,
		IncludeScenarios:   true,
	}
}

// Markdown builds the proposal report as Markdown.
func Markdown(input finance.FinancialInput, result finance.FinancialResult, opts Options) string {
	var b strings.Builder

	title := opts.Title
	if title == "" {
		title = "Análise de Viabilidade Financeira"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "Investimento inicial: %s | Vida útil: %d anos | Taxa de desconto: %.2f%% a.a.\n\n",
		brl(input.InitialInvestment), input.UsefulLife, input.DiscountRate)

	b.WriteString("## Indicadores\n\n")
	b.WriteString("| Indicador | Valor |\n|---|---|\n")
	fmt.Fprintf(&b, "| VPL | %s |\n", brl(result.NPV))
	fmt.Fprintf(&b, "| TIR | %s |\n", irrCell(result))
	fmt.Fprintf(&b, "| Payback simples | %s |\n", paybackCell(result.SimplePayback, result.PaybackRecovered))
	fmt.Fprintf(&b, "| Payback descontado | %s |\n", paybackCell(result.DiscountedPayback, result.DiscountedPaybackRecovered))
	fmt.Fprintf(&b, "| Índice de lucratividade | %.2f |\n", result.ProfitabilityIndex)
	fmt.Fprintf(&b, "| LCOE | %s/kWh |\n", brl(result.Indicators.LCOE))
	fmt.Fprintf(&b, "| Economia total (%d anos) | %s |\n", input.UsefulLife, brl(result.TotalSavings))
	fmt.Fprintf(&b, "| Economia anual média | %s |\n", brl(result.AverageAnnualSaving))
	fmt.Fprintf(&b, "| ROI | %.1f%% |\n", result.Indicators.ROI)
	b.WriteString("\n")

	if opts.IncludeScenarios && len(result.Scenarios) > 0 {
		b.WriteString("## Cenários\n\n")
		b.WriteString("| Cenário | VPL | TIR | Payback |\n|---|---|---|---|\n")
		for _, sc := range result.Scenarios {
			tir := "N/A"
			if sc.IRRConverged {
				tir = fmt.Sprintf("%.1f%%", sc.IRR)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %.1f anos |\n", sc.Scenario, brl(sc.NPV), tir, sc.SimplePayback)
		}
		b.WriteString("\n")
	}

	if opts.IncludeCashFlow {
		b.WriteString("## Fluxo de Caixa Anual\n\n")
		b.WriteString("| Ano | Geração (kWh) | Economia | Custos O&M | Fluxo Líquido | Acumulado |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, cf := range result.CashFlow {
			fmt.Fprintf(&b, "| %d | %.0f | %s | %s | %s | %s |\n",
				cf.Year, cf.AnnualGeneration, brl(cf.EnergySaving), brl(cf.OperatingCosts),
				brl(cf.NetCashFlow), brl(cf.CumulativeCashFlow))
		}
		b.WriteString("\n")
	}

	if opts.IncludeSensitivity {
		b.WriteString("## Sensibilidade do VPL\n\n")
		writeCurve(&b, "Variação da tarifa (%)", result.Sensitivity.TariffCurve)
		writeCurve(&b, "Inflação energética (% a.a.)", result.Sensitivity.InflationCurve)
		writeCurve(&b, "Taxa de desconto (% a.a.)", result.Sensitivity.DiscountCurve)
	}

	return b.String()
}

// HTML converts the Markdown report to HTML via goldmark.
func HTML(input finance.FinancialInput, result finance.FinancialResult, opts Options) (string, error) {
	md := Markdown(input, result, opts)
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render report HTML: %w", err)
	}
	return buf.String(), nil
}

func writeCurve(b *strings.Builder, label string, curve []finance.SweepPoint) {
	fmt.Fprintf(b, "### %s\n\n| Parâmetro | VPL |\n|---|---|\n", label)
	for _, p := range curve {
		fmt.Fprintf(b, "| %.1f | %s |\n", p.Param, brl(p.NPV))
	}
	b.WriteString("\n")
}

func irrCell(result finance.FinancialResult) string {
	if !result.IRRConverged {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%% a.a.", result.IRR)
}

func paybackCell(years float64, recovered bool) string {
	if !recovered {
		return "não recuperado no horizonte"
	}
	return fmt.Sprintf("%.1f anos", years)
}

// brl formats a currency value, negative amounts in accounting style.
func brl(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-R$ %.2f", -v)
	}
	return fmt.Sprintf("R$ %.2f", v)
}
