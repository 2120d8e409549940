package report

import (
	"strings"
	"testing"

	"solarfin/pkg/core/finance"
)

func sampleAnalysis() (finance.FinancialInput, finance.FinancialResult) {
	gen := make([]float64, 12)
	cons := make([]float64, 12)
	for i := range gen {
		gen[i] = 800
		cons[i] = 600
	}
	input := finance.FinancialInput{
		InitialInvestment:  30000,
		MonthlyGeneration:  gen,
		MonthlyConsumption: cons,
		EnergyTariff:       0.90,
		WireCharge:         0.30,
		UsefulLife:         25,
		DiscountRate:       8,
		EnergyInflation:    4.5,
		ModuleDegradation:  0.5,
	}
	return input, finance.Analyze(input)
}

func TestMarkdownSections(t *testing.T) {
	input, result := sampleAnalysis()
	md := Markdown(input, result, DefaultOptions("Projeto Teste"))

	for _, want := range []string{
		"# Projeto Teste",
		"## Indicadores",
		"## Cenários",
		"## Fluxo de Caixa Anual",
		"## Sensibilidade do VPL",
		"| VPL |",
		"| TIR |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// One row per projected year.
	if got := strings.Count(md, "\n| 2 |"); got == 0 {
		t.Error("cash-flow table missing year rows")
	}
}

func TestMarkdownSentinels(t *testing.T) {
	input, result := sampleAnalysis()
	result.IRRConverged = false
	result.PaybackRecovered = false

	md := Markdown(input, result, DefaultOptions(""))
	if !strings.Contains(md, "N/A") {
		t.Error("unconverged IRR not rendered as N/A")
	}
	if !strings.Contains(md, "não recuperado no horizonte") {
		t.Error("unrecovered payback not rendered explicitly")
	}
}

func TestPaybackRowsRenderIndependently(t *testing.T) {
	// Simple payback recovered, discounted not: the simple row shows a
	// figure, the discounted row the sentinel text.
	input, result := sampleAnalysis()
	result.SimplePayback = 6.25
	result.PaybackRecovered = true
	result.DiscountedPayback = float64(input.UsefulLife)
	result.DiscountedPaybackRecovered = false

	md := Markdown(input, result, DefaultOptions(""))
	if !strings.Contains(md, "| Payback simples | 6.2 anos |") {
		t.Error("recovered simple payback not rendered as a figure")
	}
	if !strings.Contains(md, "| Payback descontado | não recuperado no horizonte |") {
		t.Error("unrecovered discounted payback rendered as a real duration")
	}
}

func TestSectionToggles(t *testing.T) {
	input, result := sampleAnalysis()
	md := Markdown(input, result, Options{Title: "Resumo"})

	if strings.Contains(md, "## Fluxo de Caixa Anual") {
		t.Error("cash-flow section rendered although disabled")
	}
	if strings.Contains(md, "## Sensibilidade") {
		t.Error("sensitivity section rendered although disabled")
	}
	if !strings.Contains(md, "## Indicadores") {
		t.Error("indicator section always renders")
	}
}

func TestHTMLRender(t *testing.T) {
	input, result := sampleAnalysis()
	html, err := HTML(input, result, DefaultOptions("Projeto Teste"))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Projeto Teste") {
		t.Error("HTML output missing rendered title")
	}
	if !strings.Contains(html, "<table") {
		t.Error("HTML output missing rendered tables")
	}
}
