// resolve.go
package config

import (
	"github.com/kevinkasson/boardsim/internal/sim"
)

// DefaultTurns is the player-turn budget used when rounds is not set.
const DefaultTurns = 10000

// Overrides carries per-invocation values (flags, query params) that win over files.
type Overrides struct {
	Players      *int
	Rounds       *int
	Seed         *uint64
	Replications *int
	Workers      *int
	Chart        *string
	DB           *string
}

// Settings is a fully resolved run description.
type Settings struct {
	Params       sim.Params
	Replications int
	Workers      int
	Chart        string
	DB           string
	Version      string // effective config version for tracing
}

// Resolve applies overrides on top of cfg, validates and fills defaults.
func Resolve(cfg RawConfig, o Overrides) (Settings, error) {
	layer := RawConfig{
		Run: RunConfig{
			Players:      o.Players,
			Rounds:       o.Rounds,
			Seed:         o.Seed,
			Replications: o.Replications,
			Workers:      o.Workers,
		},
	}
	if o.Chart != nil || o.DB != nil {
		layer.Output = &OutputConfig{}
		if o.Chart != nil {
			layer.Output.Chart = *o.Chart
		}
		if o.DB != nil {
			layer.Output.DB = *o.DB
		}
	}
	merged := mergeRaw(cfg, layer)
	if err := ValidateRaw(merged); err != nil {
		return Settings{}, err
	}

	s := Settings{Version: merged.Version}
	s.Params.Players = 4
	if merged.Run.Players != nil {
		s.Params.Players = *merged.Run.Players
	}
	s.Params.Rounds = DefaultTurns / s.Params.Players
	if merged.Run.Rounds != nil {
		s.Params.Rounds = *merged.Run.Rounds
	}
	s.Params.Seed = merged.Run.Seed
	s.Params.Rules = rulesFrom(merged.Rules)

	if merged.Run.Replications != nil {
		s.Replications = *merged.Run.Replications
	}
	if merged.Run.Workers != nil {
		s.Workers = *merged.Run.Workers
	}
	if merged.Output != nil {
		s.Chart = merged.Output.Chart
		s.DB = merged.Output.DB
	}
	return s, nil
}

func rulesFrom(rc *RulesConfig) sim.Rules {
	r := sim.DefaultRules()
	if rc == nil {
		return r
	}
	if rc.MaxJailAttempts != nil {
		r.MaxJailAttempts = *rc.MaxJailAttempts
	}
	if rc.DoublesLimit != nil {
		r.DoublesLimit = *rc.DoublesLimit
	}
	if rc.JailDoublesRollAgain != nil {
		r.JailDoublesEndTurn = !*rc.JailDoublesRollAgain
	}
	if rc.CountGoToJailSpace != nil {
		r.CountGoToJailSpace = *rc.CountGoToJailSpace
	}
	return r
}
