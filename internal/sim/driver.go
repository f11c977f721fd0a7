package sim

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Params describes one simulation run.
type Params struct {
	Players int
	Rounds  int
	Seed    *uint64 // nil => crypto-random dice and decks
	Rules   Rules   // zero value => classic rules
}

// Counts holds one landing counter per position.
type Counts [NumPositions]int64

// Total is the number of recorded landings.
func (c Counts) Total() int64 {
	var sum int64
	for _, n := range c {
		sum += n
	}
	return sum
}

// Result is what a completed run hands to renderers and storage.
type Result struct {
	Players  int
	Rounds   int
	Seed     *uint64
	Landings Counts // index 0 = Go, 40 = In Jail
	Rolls    int64
}

// Total is the number of recorded landings.
func (r Result) Total() int64 { return r.Landings.Total() }

// JailRetries is the number of rolls that left a token in jail without a landing.
func (r Result) JailRetries() int64 { return r.Rolls - r.Total() }

// Run plays p.Rounds rounds of p.Players turns each and returns the counters.
func Run(p Params, logger *log.Logger) (Result, error) {
	return RunContext(context.Background(), p, logger)
}

// ctxCheckRounds is how many rounds are played between cancellation checks.
const ctxCheckRounds = 64

// RunContext is Run that stops with ctx's error once ctx is done.
func RunContext(ctx context.Context, p Params, logger *log.Logger) (Result, error) {
	if err := validateParams(p); err != nil {
		return Result{}, err
	}
	g := NewGame(p.Players, gameOptions(p, logger)...)

	start := time.Now()
	for round := 0; round < p.Rounds; round++ {
		if round%ctxCheckRounds == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		for player := range g.Players {
			g.PlayTurn(player)
		}
	}

	res := Result{
		Players:  p.Players,
		Rounds:   p.Rounds,
		Seed:     p.Seed,
		Landings: g.Landings,
		Rolls:    g.Rolls,
	}
	if logger != nil {
		logger.Debug("run finished",
			"players", p.Players, "rounds", p.Rounds,
			"rolls", res.Rolls, "landings", res.Total(),
			"elapsed", time.Since(start),
		)
	}
	return res, nil
}

func gameOptions(p Params, logger *log.Logger) []Option {
	opts := []Option{WithLogger(logger)}
	if p.Seed != nil {
		opts = append(opts, WithRNG(NewSeededRNG(*p.Seed)))
	}
	return append(opts, WithRules(p.Rules))
}
