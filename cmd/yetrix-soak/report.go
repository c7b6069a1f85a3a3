package main

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"runtime"
	"slices"
	"text/template"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type Report struct {
	// Configuration
	Games      int
	Workers    int
	MaxTicks   int
	IntentRate float64
	BaseSeed   uint64

	// Results
	TotalTime      time.Duration
	TotalTicks     uint64
	GamesOver      int
	Score          Summary
	Rows           Summary
	GameTicks      Summary
	TickTime       Stats
	Systems        []SystemTotal
	Results        []GameResult
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Summary describes one per-game quantity.
type Summary struct {
	Mean, StdDev  float64
	CILow, CIHigh float64
	Min, Max      float64
	P50, P90, P99 float64
}

// Summarize computes mean, a 95% confidence interval of the mean and quantiles of xs.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	var s Summary
	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	s.CILow, s.CIHigh = s.Mean, s.Mean
	if n := len(sorted); n > 1 {
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile(0.975)
		half := t * s.StdDev / math.Sqrt(float64(n))
		s.CILow, s.CIHigh = s.Mean-half, s.Mean+half
	}
	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	s.P99 = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	return s
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Collect folds the game results into the report.
func (r *Report) Collect(results []GameResult) {
	slices.SortFunc(results, func(a, b GameResult) int { return cmp.Compare(a.Seed, b.Seed) })
	r.Results = results

	scores := make([]float64, 0, len(results))
	rows := make([]float64, 0, len(results))
	ticks := make([]float64, 0, len(results))
	systems := map[string]*SystemTotal{}
	var order []string

	for _, res := range results {
		scores = append(scores, float64(res.Score))
		rows = append(rows, float64(res.RowsCleared))
		ticks = append(ticks, float64(res.Ticks))
		r.TotalTicks += res.Ticks
		if res.GameOver {
			r.GamesOver++
		}
		if res.Ticks > 0 {
			r.TickTime.Samples = append(r.TickTime.Samples, res.Elapsed/time.Duration(res.Ticks))
		}

		for _, s := range res.Systems {
			total, ok := systems[s.Name]
			if !ok {
				total = &SystemTotal{Name: s.Name}
				systems[s.Name] = total
				order = append(order, s.Name)
			}
			total.Runs += s.Runs
			total.Total += s.Total
		}
	}

	r.Score = Summarize(scores)
	r.Rows = Summarize(rows)
	r.GameTicks = Summarize(ticks)
	r.TickTime.Finalize()

	r.Systems = r.Systems[:0]
	for _, name := range order {
		r.Systems = append(r.Systems, *systems[name])
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Yetrix Soak Report

## Run Configuration
- **Games:** {{.Games}} on {{.Workers}} workers
- **Tick Budget per Game:** {{.MaxTicks}}
- **Intent Rate:** {{printf "%.2f" .IntentRate}}
- **Base Seed:** {{.BaseSeed}}

## Results
- **Total Time:** {{.TotalTime}}
- **Total Ticks:** {{.TotalTicks}}
- **Games Over:** {{.GamesOver}} / {{.Games}}
- **Score:** mean {{f .Score.Mean}} ± {{f .Score.StdDev}} (95% CI {{f .Score.CILow}}..{{f .Score.CIHigh}}), p50 {{f .Score.P50}}, p90 {{f .Score.P90}}, p99 {{f .Score.P99}}, max {{f .Score.Max}}
- **Rows Cleared:** mean {{f .Rows.Mean}}, p50 {{f .Rows.P50}}, max {{f .Rows.Max}}
- **Game Length (ticks):** mean {{f .GameTicks.Mean}}, min {{f .GameTicks.Min}}, max {{f .GameTicks.Max}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Systems
| System | Runs | Total | Avg |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.Runs}} | {{.Total}} | {{avg .Total .Runs}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"f": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"avg": func(total time.Duration, runs int64) time.Duration {
			if runs == 0 {
				return 0
			}
			return total / time.Duration(runs)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
