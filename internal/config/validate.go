package config

import (
	"fmt"
	"strings"
)

// Player limits of the physical game.
const (
	MinPlayers = 2
	MaxPlayers = 8
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// run
	if cfg.Run.Players != nil {
		if n := *cfg.Run.Players; n < MinPlayers || n > MaxPlayers {
			errs = append(errs, fmt.Sprintf("run.players must be in [%d,%d]", MinPlayers, MaxPlayers))
		}
	}
	if cfg.Run.Rounds != nil && *cfg.Run.Rounds < 1 {
		errs = append(errs, "run.rounds must be >= 1")
	}
	if cfg.Run.Replications != nil && *cfg.Run.Replications < 0 {
		errs = append(errs, "run.replications must be >= 0")
	}
	if cfg.Run.Workers != nil && *cfg.Run.Workers < 0 {
		errs = append(errs, "run.workers must be >= 0 (0 means GOMAXPROCS)")
	}

	// rules
	if cfg.Rules != nil {
		if cfg.Rules.MaxJailAttempts != nil && *cfg.Rules.MaxJailAttempts < 1 {
			errs = append(errs, "rules.max_jail_attempts must be >= 1")
		}
		if cfg.Rules.DoublesLimit != nil && *cfg.Rules.DoublesLimit < 1 {
			errs = append(errs, "rules.doubles_limit must be >= 1")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
