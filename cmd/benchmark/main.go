// ABOUTME: Command-line benchmark runner for RAGAS tests
// ABOUTME: Executes RAGAS benchmarks against the query pipeline and outputs JSON results

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/intelforge/threatscope/benchmarks/ragas"
)

func main() {
	// Command-line flags
	testID := flag.String("test", "", "Run specific scenario (1a, 2a, 3a, 4a). If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	// Verify OpenAI API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required for benchmarks")
	}

	fmt.Println("========================================")
	fmt.Println("ThreatScope RAGAS Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	runner, err := ragas.NewBenchmarkRunner(apiKey, *verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}

	var results []ragas.TestResult

	if *testID == "" {
		results, err = runner.RunAllTests()
		if err != nil {
			log.Fatalf("Benchmark run failed: %v", err)
		}
	} else {
		scenario, ok := ragas.GetScenario(*testID)
		if !ok {
			log.Fatalf("Unknown scenario ID: %s", *testID)
		}
		result, err := runner.RunTest(scenario)
		if err != nil {
			log.Fatalf("Scenario %s failed: %v", *testID, err)
		}
		results = append(results, result)
	}

	// Print summary
	passed := 0
	for _, result := range results {
		status := result.Status
		fmt.Printf("[%s] %s - %s (overall %.2f)\n", status, result.TestID, result.TestName, result.OverallScore)
		if status == "PASS" {
			passed++
		}
	}
	fmt.Printf("\n%d/%d scenarios passed\n", passed, len(results))

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}
	fmt.Printf("Results written to %s\n", *outputPath)

	if passed < len(results) {
		os.Exit(1)
	}
}
