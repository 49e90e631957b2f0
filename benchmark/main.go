// Package main provides a performance benchmarking tool for the Lookout CLI.
// It measures ranking times across Python repositories of different sizes,
// running each test multiple times, treating the first successful run as cold
// and averaging the rest as warm, and writes CSV output for documentation.
//
// Prerequisites:
// - lookout binary installed and available in PATH
// - radon installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: requests, flask, django, pandas
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository  string
	Workers     int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase    string
	Timeout     time.Duration
	WorkerSets  []int
	NoCacheRuns int
	CacheRuns   int
	TestRepos   []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	repoBase := os.Args[1]

	config := BenchmarkConfig{
		RepoBase:    repoBase,
		Timeout:     10 * time.Minute,
		WorkerSets:  []int{1, 4, 8},
		NoCacheRuns: 3,
		CacheRuns:   4,
		TestRepos:   []string{"requests", "flask", "django", "pandas"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty complexity cache
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("lookout", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the lookout and radon binaries and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("lookout"); err != nil {
		return fmt.Errorf("lookout binary not found in PATH")
	}
	if _, err := exec.LookPath("radon"); err != nil {
		return fmt.Errorf("radon binary not found in PATH (pip install radon)")
	}

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, worker sets %v, no-cache: %d runs, cache: %d runs\n",
		len(config.TestRepos), config.Timeout, config.WorkerSets, config.NoCacheRuns, config.CacheRuns)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		repoPath := filepath.Join(config.RepoBase, repo)
		for _, workers := range config.WorkerSets {
			results = append(results, runBenchmarkSuite(config, repo, repoPath, workers))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for one worker count
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath string, workers int) BenchmarkResult {
	fmt.Printf("Running ranking on %s with %d workers\n", repo, workers)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, repoPath, workers, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:  repo,
		Workers:     workers,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes lookout rank multiple times with the specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, repoPath string, workers int, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"rank", "--cache-backend", cacheBackend, "--workers", fmt.Sprintf("%d", workers)}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("lookout", args...)
		cmd.Dir = repoPath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/lookout_benchmark_%s.csv", timestamp)

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

	// Write header
	if err := writer.Write([]string{"repo", "workers", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		record := []string{
			result.Repository,
			fmt.Sprintf("%d", result.Workers),
			result.NoCacheTime,
			result.ColdTime,
			result.WarmTime,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s (%d workers): No-cache: %s, Cold: %s, Warm: %s\n",
			result.Repository, result.Workers, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
