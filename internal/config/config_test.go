package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinkasson/boardsim/internal/sim"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func intp(v int) *int { return &v }

func TestLoaderMergesProfile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), `
version: "1"
run:
  players: 4
  rounds: 100
rules:
  doubles_limit: 3
  jail_doubles_roll_again: true
`)
	writeFile(t, filepath.Join(dir, "profiles", "fast.yaml"), `
version: "2"
run:
  rounds: 10
rules:
  jail_doubles_roll_again: false
`)

	l := NewLoader(dir)
	cfg, err := l.Load("fast")
	require.NoError(t, err)

	assert.Equal(t, "2", cfg.Version)
	require.NotNil(t, cfg.Run.Players)
	assert.Equal(t, 4, *cfg.Run.Players)
	assert.Equal(t, 10, *cfg.Run.Rounds)
	require.NotNil(t, cfg.Rules)
	assert.Equal(t, 3, *cfg.Rules.DoublesLimit)
	assert.False(t, *cfg.Rules.JailDoublesRollAgain)

	// default alone is untouched by the profile merge
	def, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, 100, *def.Run.Rounds)
	assert.True(t, *def.Rules.JailDoublesRollAgain)
}

func TestLoaderCachesUntilInvalidated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	writeFile(t, path, "run:\n  players: 3\n")

	l := NewLoader(dir)
	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, *cfg.Run.Players)

	writeFile(t, path, "run:\n  players: 5\n")
	cfg, _ = l.Load("")
	assert.Equal(t, 3, *cfg.Run.Players, "cached value expected")

	l.Invalidate()
	cfg, _ = l.Load("")
	assert.Equal(t, 5, *cfg.Run.Players)
}

func TestLoaderRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), "run:\n  players: 12\n  rounds: 0\n")

	_, err := NewLoader(dir).Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run.players")
	assert.Contains(t, err.Error(), "run.rounds")
}

func TestLoaderBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), "run: [unclosed")
	_, err := NewLoader(dir).Load("")
	require.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	s, err := Resolve(RawConfig{Run: RunConfig{Players: intp(5)}}, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 5, s.Params.Players)
	assert.Equal(t, DefaultTurns/5, s.Params.Rounds)
	assert.Nil(t, s.Params.Seed)
	assert.Equal(t, sim.DefaultRules(), s.Params.Rules)
}

func TestResolveOverridesWin(t *testing.T) {
	seed := uint64(7)
	chart := "out.png"
	cfg := RawConfig{
		Run:    RunConfig{Players: intp(4), Rounds: intp(100)},
		Rules:  &RulesConfig{CountGoToJailSpace: new(bool)},
		Output: &OutputConfig{DB: "runs.db"},
	}
	*cfg.Rules.CountGoToJailSpace = true

	s, err := Resolve(cfg, Overrides{Players: intp(2), Seed: &seed, Replications: intp(8), Chart: &chart})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Params.Players)
	assert.Equal(t, 100, s.Params.Rounds)
	require.NotNil(t, s.Params.Seed)
	assert.Equal(t, uint64(7), *s.Params.Seed)
	assert.Equal(t, 8, s.Replications)
	assert.Equal(t, "out.png", s.Chart)
	assert.Equal(t, "runs.db", s.DB)
	assert.True(t, s.Params.Rules.CountGoToJailSpace)
}

func TestResolveJailDoublesFlag(t *testing.T) {
	off := false
	s, err := Resolve(RawConfig{Rules: &RulesConfig{JailDoublesRollAgain: &off}}, Overrides{})
	require.NoError(t, err)
	assert.True(t, s.Params.Rules.JailDoublesEndTurn)
	assert.Equal(t, 3, s.Params.Rules.MaxJailAttempts)
}

func TestResolveRejectsBadOverride(t *testing.T) {
	_, err := Resolve(RawConfig{}, Overrides{Players: intp(1)})
	require.Error(t, err)
	_, err = Resolve(RawConfig{}, Overrides{Rounds: intp(0)})
	require.Error(t, err)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("BOARDSIM_PROFILE", "study")
	t.Setenv("BOARDSIM_HTTP_ADDR", ":1234")

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "study", e.Profile)
	assert.Equal(t, ":1234", e.HTTPAddr)
	assert.Equal(t, "config", e.ConfigDir)
	assert.Equal(t, "info", e.LogLevel)
}

func TestFileWatcherReportsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	writeFile(t, path, "run:\n  players: 3\n")

	w := NewFileWatcher([]string{path}, time.Hour, nil)
	assert.Empty(t, w.scanAll(), "first scan only primes")

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.Equal(t, []string{path}, w.scanAll())
	assert.Empty(t, w.scanAll())
}

func TestWatchLoaderInvalidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	writeFile(t, path, "run:\n  players: 3\n")

	l := NewLoader(dir)
	_, err := l.Load("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	WatchLoader(ctx, l, "", 10*time.Millisecond, nil)

	time.Sleep(30 * time.Millisecond)
	writeFile(t, path, "run:\n  players: 6\n")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	require.Eventually(t, func() bool {
		cfg, err := l.Load("")
		return err == nil && *cfg.Run.Players == 6
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRepoDefaultConfigLoads(t *testing.T) {
	l := NewLoader(filepath.Join("..", "..", "config"))
	for _, profile := range []string{"", "classic", "study"} {
		cfg, err := l.Load(profile)
		require.NoError(t, err, profile)
		_, err = Resolve(cfg, Overrides{})
		require.NoError(t, err, profile)
	}
}
