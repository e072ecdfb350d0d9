// Package main provides a performance benchmarking tool for the Lightcurve CLI.
// It generates synthetic light curves of increasing size and measures execution
// times for each command, running each test multiple times, treating the first
// successful run as cold and averaging the rest as warm. Every command is timed
// with history disabled and with a SQLite history backend, and the results are
// written to a CSV file for performance analysis and documentation.
//
// Prerequisites:
// - lightcurve binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the generated data files (default: a temp dir)
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark (history-less average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir        string
	Timeout        time.Duration
	NoHistoryRuns  int
	HistoryRuns    int
	DatasetSizes   map[string]int
	DatasetOrder   []string
	PeriodDays     float64
	Cycles         int
}

// benchCommand is one CLI invocation measured per dataset.
type benchCommand struct {
	name    string
	file    func(dataset string) string
	args    []string
	success string
}

func main() {
	if len(os.Args) > 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := ""
	if len(os.Args) == 2 {
		workDir = os.Args[1]
	} else {
		dir, err := os.MkdirTemp("", "lightcurve-benchmark-*")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = os.RemoveAll(dir) }()
		workDir = dir
	}

	config := BenchmarkConfig{
		WorkDir:        workDir,
		Timeout:        2 * time.Minute,
		NoHistoryRuns:  3,
		HistoryRuns:    4,
		DatasetSizes:   map[string]int{"small": 1_000, "medium": 20_000, "large": 200_000},
		DatasetOrder:   []string{"small", "medium", "large"},
		PeriodDays:     2.47,
		Cycles:         12,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating datasets in %s...\n", config.WorkDir)
	if err := generateDatasets(config); err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the lightcurve binary exists and the work dir is usable.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("lightcurve"); err != nil {
		return fmt.Errorf("lightcurve binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("work dir %s is not usable: %w", config.WorkDir, err)
	}
	return nil
}

// generateDatasets writes a folded curve and a raw eclipsing-binary series per dataset size.
func generateDatasets(config BenchmarkConfig) error {
	for _, name := range config.DatasetOrder {
		n := config.DatasetSizes[name]
		folded := make([][]string, 0, n+1)
		raw := make([][]string, 0, n+1)
		folded = append(folded, []string{"phase", "normalized_flux"})
		raw = append(raw, []string{"jd", "flux"})
		span := config.PeriodDays * float64(config.Cycles)
		for i := range n {
			phase := float64(i) / float64(n)
			folded = append(folded, []string{formatFloat(phase), formatFloat(eclipse(phase))})
			jd := 2458850.0 + span*float64(i)/float64(n)
			p := math.Mod(jd-2458850.0, config.PeriodDays) / config.PeriodDays
			raw = append(raw, []string{formatFloat(jd), formatFloat(1000 * eclipse(p))})
		}
		if err := writeCSV(filepath.Join(config.WorkDir, name+".csv"), folded); err != nil {
			return err
		}
		if err := writeCSV(filepath.Join(config.WorkDir, name+"_raw.csv"), raw); err != nil {
			return err
		}
	}
	return nil
}

// eclipse models a detached binary with a primary and a secondary dip.
func eclipse(phase float64) float64 {
	dip := func(center, depth, width float64) float64 {
		d := math.Abs(phase - center)
		d = math.Min(d, 1-d)
		return depth * math.Exp(-(d*d)/(2*width*width))
	}
	return 1 - dip(0, 0.6, 0.02) - dip(0.5, 0.2, 0.02)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// runBenchmarks executes all benchmark commands across the generated datasets.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.DatasetOrder), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	period := strconv.FormatFloat(config.PeriodDays, 'f', -1, 64)
	commands := []benchCommand{
		{"render-png", func(d string) string { return d + ".csv" }, []string{"render", "--display", "none", "--format", "png"}, "points rendered as png"},
		{"render-svg", func(d string) string { return d + ".csv" }, []string{"render", "--display", "none", "--format", "svg"}, "points rendered as svg"},
		{"inspect", func(d string) string { return d + ".csv" }, []string{"inspect", "--output", "json"}, `"summary"`},
		{"fold", func(d string) string { return d + "_raw.csv" }, []string{"fold", "--period", period, "--output-file", "folded.ecsv"}, "Folded"},
	}

	for _, dataset := range config.DatasetOrder {
		fmt.Printf("Benchmarking %s (%d points)\n", dataset, config.DatasetSizes[dataset])
		for _, c := range commands {
			results = append(results, runBenchmarkSuite(config, dataset, c))
		}
	}

	return results
}

// runBenchmarkSuite runs both history-less and history benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, dataset string, c benchCommand) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", c.name, dataset)

	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataset, c, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       dataset,
		Command:       c.name,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a command multiple times with the given history backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, dataset string, c benchCommand, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{c.args[0], c.file(dataset)}, c.args[1:]...)
	args = append(args, "--base-dir", config.WorkDir, "--history-backend", backend, "--color", "no")
	if backend == "sqlite" {
		args = append(args, "--history-db-connect", filepath.Join(config.WorkDir, "benchmark_history.db"))
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("lightcurve", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && strings.Contains(string(output), c.success) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("lightcurve_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"render-png", "render-svg", "inspect", "fold"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: No-history: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoHistoryTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
