package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., ./config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "profiles", profile+".yaml")
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name, "" for default only
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the files this loader reads for profile.
func (l *Loader) Paths(profile string) []string {
	out := []string{l.paths.DefaultPath()}
	if profile != "" {
		out = append(out, l.paths.ProfilePath(profile))
	}
	return out
}

// Load returns default merged with profile (profile optional), validated.
func (l *Loader) Load(profile string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	merged, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	if profile != "" {
		prof, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %q: %w", profile, err)
		}
		merged = mergeRaw(merged, prof)
	}
	if err := ValidateRaw(merged); err != nil {
		return RawConfig{}, err
	}

	l.mu.Lock()
	l.cache[profile] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache. Call after the watcher detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays b on a: every field set in b wins.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// run
	if b.Run.Players != nil {
		out.Run.Players = b.Run.Players
	}
	if b.Run.Rounds != nil {
		out.Run.Rounds = b.Run.Rounds
	}
	if b.Run.Seed != nil {
		out.Run.Seed = b.Run.Seed
	}
	if b.Run.Replications != nil {
		out.Run.Replications = b.Run.Replications
	}
	if b.Run.Workers != nil {
		out.Run.Workers = b.Run.Workers
	}

	// rules
	switch {
	case out.Rules == nil && b.Rules != nil:
		c := *b.Rules
		out.Rules = &c
	case out.Rules != nil && b.Rules != nil:
		c := *out.Rules
		if b.Rules.MaxJailAttempts != nil {
			c.MaxJailAttempts = b.Rules.MaxJailAttempts
		}
		if b.Rules.DoublesLimit != nil {
			c.DoublesLimit = b.Rules.DoublesLimit
		}
		if b.Rules.JailDoublesRollAgain != nil {
			c.JailDoublesRollAgain = b.Rules.JailDoublesRollAgain
		}
		if b.Rules.CountGoToJailSpace != nil {
			c.CountGoToJailSpace = b.Rules.CountGoToJailSpace
		}
		out.Rules = &c
	}

	// output
	switch {
	case out.Output == nil && b.Output != nil:
		c := *b.Output
		out.Output = &c
	case out.Output != nil && b.Output != nil:
		c := *out.Output
		if b.Output.Chart != "" {
			c.Chart = b.Output.Chart
		}
		if b.Output.DB != "" {
			c.DB = b.Output.DB
		}
		out.Output = &c
	}

	return out
}
