// calc-engine is the standalone numeric sidecar: one FinancialInput in, one
// FinancialResult out, over flags and stdout. The main platform proxies to
// it in the deployment mode where the engine runs out of process.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"solarfin/pkg/core/finance"
	"solarfin/pkg/core/validate"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "FinancialInput JSON payload")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	var input finance.FinancialInput
	if err := json.Unmarshal([]byte(*dataStr), &input); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "check":
		runChecks(input)
	case "calculate":
		runCalculation(input)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func runChecks(input finance.FinancialInput) {
	if err := validate.Input(input); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Success: input satisfies all invariants")
}

func runCalculation(input finance.FinancialInput) {
	if err := validate.Input(input); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	result := finance.Analyze(input)
	out, err := json.Marshal(result)
	if err != nil {
		fmt.Printf("Error encoding result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
