package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/plus3/yetrix/config"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults to $YETRIX_CONFIG).")
	games := flag.Int("games", 32, "Number of games to autoplay.")
	workers := flag.Int("workers", runtime.NumCPU(), "Games played in parallel.")
	maxTicks := flag.Int("ticks", 60000, "Tick budget per game.")
	intentRate := flag.Float64("intent-rate", 0.1, "Chance per tick that the autoplayer presses a key.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game i uses seed+i.")
	quiet := flag.Bool("quiet", false, "Hide the progress bar.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *games < 1 || *workers < 1 || *maxTicks < 1 {
		log.Fatal("games, workers and ticks must be positive")
	}

	report := &Report{
		Games:          *games,
		Workers:        *workers,
		MaxTicks:       *maxTicks,
		IntentRate:     *intentRate,
		BaseSeed:       *seed,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	log.Printf("Playing %d games on %d workers...\n", *games, *workers)

	bar := pb.StartNew(*games)
	if *quiet {
		bar.SetWriter(io.Discard)
	}
	start := time.Now()
	results, err := soak(cfg, *games, *workers, *maxTicks, *intentRate, *seed, func() { bar.Increment() })
	report.TotalTime = time.Since(start)
	bar.Finish()
	if err != nil {
		log.Fatalf("soak: %v", err)
	}

	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Collect(results)

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// soak plays games on a pool of workers. Game i uses seed+i, so results do not depend on
// scheduling.
func soak(cfg config.Config, games, workers, maxTicks int, intentRate float64, seed uint64, done func()) ([]GameResult, error) {
	jobs := make(chan uint64)
	results := make([]GameResult, 0, games)

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	for range min(workers, games) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				res, err := playGame(cfg, s, maxTicks, intentRate)

				mu.Lock()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				if err == nil {
					results = append(results, res)
				}
				mu.Unlock()

				if done != nil {
					done()
				}
			}
		}()
	}

	for i := range games {
		jobs <- seed + uint64(i)
	}
	close(jobs)
	wg.Wait()

	return results, firstErr
}
