package sim

import (
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes one position's landing share across replications.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// Summary is the outcome of RunMonteCarlo.
type Summary struct {
	Trials   int
	Combined Result              // landings and rolls summed over every trial
	Share    [NumPositions]Stats // per-position landing share (0..1) across trials
}

// calcStats computes mean/variance/percentiles for float samples.
func calcStats(xs []float64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	// mean
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	// percentiles
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return Stats{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}

// trialParams derives the params of trial i. Seeded runs use seed+i so the
// whole batch is reproducible; unseeded runs stay crypto-random.
func trialParams(p Params, i int) Params {
	if p.Seed == nil {
		return p
	}
	s := *p.Seed + uint64(i)
	p.Seed = &s
	return p
}

// RunMonteCarlo repeats independent runs on up to workers goroutines
// (<=0 => GOMAXPROCS) and returns the combined counters and per-position stats.
// Each trial owns its own Game; nothing is shared between trials.
func RunMonteCarlo(ctx context.Context, p Params, trials, workers int, logger *log.Logger) (Summary, error) {
	if err := validateParams(p); err != nil {
		return Summary{}, err
	}
	if trials <= 0 {
		return Summary{}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, trials)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < trials; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := RunContext(ctx, trialParams(p, i), logger)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Trials: trials,
		Combined: Result{
			Players: p.Players,
			Rounds:  p.Rounds * trials,
			Seed:    p.Seed,
		},
	}
	samples := make([][]float64, NumPositions)
	for _, res := range results {
		total := res.Total()
		for pos, n := range res.Landings {
			sum.Combined.Landings[pos] += n
			share := 0.0
			if total > 0 {
				share = float64(n) / float64(total)
			}
			samples[pos] = append(samples[pos], share)
		}
		sum.Combined.Rolls += res.Rolls
	}
	for pos := range samples {
		sum.Share[pos] = calcStats(samples[pos])
	}
	if logger != nil {
		logger.Info("monte carlo finished",
			"trials", trials, "workers", workers,
			"rolls", sum.Combined.Rolls, "landings", sum.Combined.Total(),
		)
	}
	return sum, nil
}
