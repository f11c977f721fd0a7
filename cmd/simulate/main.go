// Command simulate plays many rounds of the board game and reports how often
// each space is the final resting place of a move.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/kevinkasson/boardsim/internal/config"
	"github.com/kevinkasson/boardsim/internal/logging"
	"github.com/kevinkasson/boardsim/internal/report"
	"github.com/kevinkasson/boardsim/internal/sim"
	"github.com/kevinkasson/boardsim/internal/store"
)

// cliFlags holds the command line; options left unset fall back to the config.
type cliFlags struct {
	fs *flag.FlagSet

	players, rounds, replications, workers *int
	seed                                   *uint64
	profile, configDir                     *string
	chart, pie, db                         *string
	verbose                                *bool
}

func newCLIFlags(env config.Env) *cliFlags {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	return &cliFlags{
		fs:           fs,
		players:      fs.Int("players", 0, "number of players (2-8); 0 uses the config"),
		rounds:       fs.Int("rounds", 0, "number of rounds; 0 uses the config or 10000/players"),
		seed:         fs.Uint64("seed", 0, "seed for reproducible runs; unset is random"),
		replications: fs.Int("replications", -1, "independent runs to combine; -1 uses the config"),
		workers:      fs.Int("workers", -1, "parallel replications; -1 uses the config, 0 is GOMAXPROCS"),
		profile:      fs.String("profile", env.Profile, "config profile under <config-dir>/profiles"),
		configDir:    fs.String("config-dir", env.ConfigDir, "config directory"),
		chart:        fs.String("chart", "", "write a PNG bar chart to this path"),
		pie:          fs.String("pie", "", "write a PNG pie chart to this path"),
		db:           fs.String("db", env.DBPath, "store the result in this SQLite database"),
		verbose:      fs.Bool("v", false, "log every roll"),
	}
}

// overrides turns the parsed flags into config overrides. The seed counts
// whenever it was given, zero included.
func (c *cliFlags) overrides() config.Overrides {
	o := config.Overrides{}
	if *c.players > 0 {
		o.Players = c.players
		if *c.rounds == 0 {
			r := config.DefaultTurns / *c.players
			o.Rounds = &r
		}
	}
	if *c.rounds > 0 {
		o.Rounds = c.rounds
	}
	c.fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			o.Seed = c.seed
		}
	})
	if *c.replications >= 0 {
		o.Replications = c.replications
	}
	if *c.workers >= 0 {
		o.Workers = c.workers
	}
	if *c.chart != "" {
		o.Chart = c.chart
	}
	if *c.db != "" {
		o.DB = c.db
	}
	return o
}

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cli := newCLIFlags(env)
	_ = cli.fs.Parse(os.Args[1:])

	level := env.LogLevel
	if *cli.verbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level, "simulate")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config.NewLoader(*cli.configDir), *cli.profile, cli.overrides(), *cli.pie, logger); err != nil {
		logger.Fatal("simulate", "err", err)
	}
}

func run(ctx context.Context, loader *config.Loader, profile string, o config.Overrides, pie string, logger *log.Logger) error {
	cfg, err := loader.Load(profile)
	if err != nil {
		return err
	}
	s, err := config.Resolve(cfg, o)
	if err != nil {
		return err
	}
	logger.Info("starting",
		"players", s.Params.Players, "rounds", s.Params.Rounds,
		"replications", s.Replications, "config_version", s.Version,
	)

	trials := 1
	var (
		res   sim.Result
		share []sim.Stats
	)
	if s.Replications > 1 {
		trials = s.Replications
		sum, err := sim.RunMonteCarlo(ctx, s.Params, trials, s.Workers, logger)
		if err != nil {
			return err
		}
		res = sum.Combined
		share = sum.Share[:]
	} else {
		res, err = sim.RunContext(ctx, s.Params, logger)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Simulation with %d players and %d rounds\n", res.Players, res.Rounds)
	if err := report.WriteTable(os.Stdout, res, share); err != nil {
		return err
	}

	if s.Chart != "" {
		if err := writeChart(s.Chart, res, report.WriteBarChart); err != nil {
			return err
		}
		logger.Info("chart written", "path", s.Chart)
	}
	if pie != "" {
		if err := writeChart(pie, res, report.WritePieChart); err != nil {
			return err
		}
		logger.Info("pie chart written", "path", pie)
	}

	if s.DB != "" {
		db, err := store.OpenSQLite(s.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		saved, err := store.NewRuns(db).Save(ctx, res, trials, share)
		if err != nil {
			return err
		}
		logger.Info("run stored", "id", saved.ID, "db", s.DB)
	}
	return nil
}

func writeChart(path string, res sim.Result, write func(io.Writer, [sim.NumPositions]int64) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, res.Landings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
