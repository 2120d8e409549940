// Command analyze runs the viability engine on a single project file from
// the command line: read a FinancialInput JSON, compute, print the result
// as JSON or as the Markdown proposal report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"solarfin/pkg/core/finance"
	"solarfin/pkg/core/pipeline"
	"solarfin/pkg/core/report"
	"solarfin/pkg/core/tariff"
)

func main() {
	inputPath := flag.String("input", "", "Path to FinancialInput JSON file")
	format := flag.String("format", "json", "Output format: json or report")
	defaultsPath := flag.String("defaults", "config/defaults.hjson", "Engine defaults file")
	flag.Parse()

	godotenv.Load()

	if *inputPath == "" {
		fmt.Println("Error: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Printf("Error reading input: %v\n", err)
		os.Exit(1)
	}

	var input finance.FinancialInput
	if err := json.Unmarshal(data, &input); err != nil {
		fmt.Printf("Error parsing input: %v\n", err)
		os.Exit(1)
	}

	// Fill unset optional rates from the defaults file. A zero degradation
	// is unusual enough on a CLI run that treating it as "use default" is
	// the right trade; explicit zeros belong in the API's pointer fields.
	defaults, err := tariff.Load(*defaultsPath)
	if err != nil {
		defaults = tariff.Builtin()
	}
	if input.ModuleDegradation == 0 {
		input.ModuleDegradation = defaults.ModuleDegradation
	}
	if input.OperatingCostInflation == 0 {
		input.OperatingCostInflation = defaults.OperatingCostInflation
	}

	orch := pipeline.NewOrchestrator()
	result, err := orch.Analyze(context.Background(), pipeline.Request{Input: input})
	if err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "report":
		fmt.Println(report.Markdown(input, *result, report.DefaultOptions("")))
	default:
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Printf("Error encoding result: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	}
}
