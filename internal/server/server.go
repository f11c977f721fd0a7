// Package server exposes simulation runs over HTTP (JSON, PNG) and gRPC.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/kevinkasson/boardsim/internal/config"
	"github.com/kevinkasson/boardsim/internal/report"
	"github.com/kevinkasson/boardsim/internal/sim"
	"github.com/kevinkasson/boardsim/internal/store"
)

// MaxTurns caps players*rounds*trials for one request.
const MaxTurns = 100000

var ErrInvalidRequest = errors.New("invalid request")

// Server runs simulations on behalf of HTTP and gRPC callers.
// Every request gets its own run; nothing is shared between requests
// except the config loader and the optional store.
type Server struct {
	loader  *config.Loader
	profile string
	runs    *store.Runs
	logger  *log.Logger
}

// Options for New. Loader and Runs are optional.
type Options struct {
	Loader  *config.Loader
	Profile string
	Runs    *store.Runs
	Logger  *log.Logger
}

func New(o Options) *Server {
	logger := o.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		loader:  o.Loader,
		profile: o.Profile,
		runs:    o.Runs,
		logger:  logger,
	}
}

// Simulation is the outcome of one request.
type Simulation struct {
	ID     string // empty when no store is configured
	Trials int
	Result sim.Result
	Share  []sim.Stats // per-position share across replications; nil for a single run
}

// SpaceShare is one row of the rendered result.
type SpaceShare struct {
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Landings int64   `json:"landings"`
	Percent  float64 `json:"percent"`

	// Stats is the share (0..1) of this position across replications.
	Stats *sim.Stats `json:"stats,omitempty"`
}

// Shares lists every position with its share of all landings. share, when
// it covers every position, attaches the replication stats.
func Shares(res sim.Result, share []sim.Stats) []SpaceShare {
	pct := report.Percentages(res.Landings)
	out := make([]SpaceShare, sim.NumPositions)
	for i, n := range res.Landings {
		out[i] = SpaceShare{
			Position: i,
			Name:     sim.SpaceName(sim.Position(i)),
			Landings: n,
			Percent:  pct[i],
		}
		if len(share) == sim.NumPositions {
			st := share[i]
			out[i].Stats = &st
		}
	}
	return out
}

// withinTurns reports whether players*rounds*trials <= limit, without
// computing a product that could overflow.
func withinTurns(players, rounds, trials, limit int) bool {
	if players <= 0 || rounds <= 0 || trials <= 0 {
		return true
	}
	if trials > limit || players > limit/trials {
		return false
	}
	return rounds <= limit/(players*trials)
}

// Simulate resolves the request against the configured profile and runs it.
func (s *Server) Simulate(ctx context.Context, o config.Overrides) (Simulation, error) {
	var base config.RawConfig
	if s.loader != nil {
		cfg, err := s.loader.Load(s.profile)
		if err != nil {
			return Simulation{}, fmt.Errorf("load config: %w", err)
		}
		base = cfg
	}
	settings, err := config.Resolve(base, o)
	if err != nil {
		return Simulation{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	trials := settings.Replications
	if trials < 1 {
		trials = 1
	}
	p := settings.Params
	if !withinTurns(p.Players, p.Rounds, trials, MaxTurns) {
		return Simulation{}, fmt.Errorf("%w: players*rounds*replications (%d*%d*%d) exceeds %d",
			ErrInvalidRequest, p.Players, p.Rounds, trials, MaxTurns)
	}

	var (
		res   sim.Result
		share []sim.Stats
	)
	if trials == 1 {
		res, err = sim.RunContext(ctx, p, s.logger)
	} else {
		var sum sim.Summary
		sum, err = sim.RunMonteCarlo(ctx, p, trials, settings.Workers, s.logger)
		res = sum.Combined
		share = sum.Share[:]
	}
	if errors.Is(err, sim.ErrInvalidParams) {
		return Simulation{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err != nil {
		return Simulation{}, err
	}

	out := Simulation{Trials: trials, Result: res, Share: share}
	if s.runs != nil {
		run, err := s.runs.Save(ctx, res, trials, share)
		if err != nil {
			return Simulation{}, err
		}
		out.ID = run.ID
	}
	s.logger.Info("simulation done",
		"id", out.ID, "players", p.Players, "rounds", p.Rounds, "trials", trials,
		"rolls", res.Rolls, "landings", res.Total(),
	)
	return out, nil
}
