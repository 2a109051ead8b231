// FILE: lixenwraith/unilog/cmd/stress/main.go
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/unilog"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 2000
	numWorkers     = 200
)

const configFile = "stress_config.toml"

// Example TOML content for stress test
var tomlContent = `
# Example stress_config.toml
[unilog]
  name = "stress_test"
  directory = "./logs"
  relative_to = "cwd"
  postfix = "dot_number_minutely" # Rotate every minute
  mode = "multi_thread"
  keep_uncompressed = 2
  keep_files = 5
  flush_every_events = 1000
  severity_style = "chars5_brackets"
  internal_errors_to_stderr = true
`

var severities = []unilog.Severity{
	unilog.SeverityDebug,
	unilog.SeverityInfo,
	unilog.SeverityWarning,
	unilog.SeverityError,
}

var target *unilog.Target

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		sev := severities[rand.Intn(len(severities))]
		msg := generateRandomMessage(rand.Intn(maxMessageSize) + 10)
		if i%50 == 0 {
			target.LogHexDump(sev, []byte(msg[:min(len(msg), 64)]), fmt.Sprintf("bst=%d seq=%d", burstID, i))
			continue
		}
		target.Logf(sev, "wkr=%d bst=%d seq=%d %s", burstID%numWorkers, burstID, i, msg)
	}
}

// worker goroutine function
func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
		}
	}
}

func main() {
	fmt.Println("--- Target Stress Test ---")

	// --- Setup Config ---
	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
		os.Exit(1)
	}
	logsDir := "./logs"
	_ = os.RemoveAll(logsDir)

	cfg, err := unilog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// --- Initialize Target ---
	target, err = unilog.NewTarget(cfg, unilog.WithErrorCallback(
		func(err *unilog.TargetError, p *unilog.Processor, evt *unilog.Event) unilog.ErrorAction {
			fmt.Fprintf(os.Stderr, "\n[Processor Error] %v\n", err)
			return unilog.ErrorActionNextProcessor
		}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize target: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Target initialized. Logs will be written to: %s\n", target.Dir())

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	// --- Setup Workers and Signal Handling ---
	burstChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts)
	}

	// --- Run Test ---
	startTime := time.Now()
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			goto endLoop
		}
	}
endLoop:
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	fmt.Printf("Queue length after submission: %d\n", target.QueueLength())

	// --- Shutdown Target ---
	fmt.Println("Shutting down target (allowing up to 30s)...")
	if err := target.Shutdown(30 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Target shutdown error: %v\n", err)
	}
	duration := time.Since(startTime)

	stats := target.Stats()
	fmt.Printf("\n--- Test Finished ---\n")
	fmt.Printf("Processed %d events in %v\n", stats.EventsProcessed, duration.Round(time.Millisecond))
	if duration.Seconds() > 0 {
		fmt.Printf("Approximate events/sec: %.2f\n", float64(stats.EventsProcessed)/duration.Seconds())
	}
	fmt.Printf("Semaphore releases: %d, rotations: %d, errors: %d\n",
		stats.SemaphoreReleases, stats.Rotations, stats.Errors)
	fmt.Printf("Check log files in '%s'.\n", logsDir)
}
