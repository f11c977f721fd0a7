package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinkasson/boardsim/internal/config"
)

func parse(t *testing.T, args ...string) *cliFlags {
	t.Helper()
	c := newCLIFlags(config.Env{ConfigDir: "config"})
	require.NoError(t, c.fs.Parse(args))
	return c
}

func TestSeedZeroIsKept(t *testing.T) {
	o := parse(t, "-seed", "0").overrides()
	require.NotNil(t, o.Seed)
	assert.Equal(t, uint64(0), *o.Seed)

	assert.Nil(t, parse(t).overrides().Seed, "no -seed means random")
}

func TestPlayersDefaultRounds(t *testing.T) {
	o := parse(t, "-players", "5").overrides()
	require.NotNil(t, o.Rounds)
	assert.Equal(t, config.DefaultTurns/5, *o.Rounds)

	o = parse(t, "-players", "5", "-rounds", "7").overrides()
	assert.Equal(t, 7, *o.Rounds)
	assert.Nil(t, o.Replications)
}

func TestRunWritesChartsAndStore(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "default.yaml"), []byte("run:\n  players: 2\n  rounds: 20\n"), 0o644))

	c := parse(t,
		"-seed", "0", "-replications", "2",
		"-chart", filepath.Join(dir, "out", "bar.png"),
		"-db", filepath.Join(dir, "runs.db"),
	)
	pie := filepath.Join(dir, "out", "pie.png")
	err := run(context.Background(), config.NewLoader(cfgDir), "", c.overrides(), pie, log.New(io.Discard))
	require.NoError(t, err)

	for _, p := range []string{"bar.png", "pie.png"} {
		fi, err := os.Stat(filepath.Join(dir, "out", p))
		require.NoError(t, err, p)
		assert.Positive(t, fi.Size(), p)
	}
	_, err = os.Stat(filepath.Join(dir, "runs.db"))
	assert.NoError(t, err)
}
