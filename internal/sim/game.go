package sim

import (
	"io"

	"github.com/charmbracelet/log"
)

// Player is one token on the board.
type Player struct {
	Position  Position
	JailRolls int // failed attempts to roll doubles while in jail
}

// Game is the whole mutable state of one simulation run: tokens, both decks
// with their jail-free holders, and the counters. Runs never share a Game.
type Game struct {
	Players  []Player
	Landings Counts // final resting positions, jail sentinel included
	Rolls    int64  // every resolved roll, failed jail attempts included

	decks  [2]*Deck
	dice   Dice
	rng    RandomSource
	rules  Rules
	streak int // consecutive doubles in the current turn

	logger *log.Logger
	debug  bool
}

// Option configures a Game.
type Option func(*Game)

// WithRNG sets the random source for dice and decks.
// WithDice, when also given, takes precedence for the dice.
func WithRNG(rng RandomSource) Option {
	return func(g *Game) { g.rng = rng }
}

// WithDice overrides the dice, e.g. with a scripted sequence.
func WithDice(d Dice) Option {
	return func(g *Game) { g.dice = d }
}

func WithRules(r Rules) Option {
	return func(g *Game) { g.rules = r.normalize() }
}

func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGame places players tokens on Go with full, shuffled decks.
func NewGame(players int, opts ...Option) *Game {
	if players < 0 {
		players = 0
	}
	g := &Game{
		Players: make([]Player, players),
		rules:   DefaultRules(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = DefaultRNG()
	}
	if g.dice == nil {
		g.dice = NewDice(g.rng)
	}
	g.decks[CommunityChest] = NewDeck(CommunityChest, g.rng)
	g.decks[Chance] = NewDeck(Chance, g.rng)
	g.debug = g.logger.GetLevel() <= log.DebugLevel
	return g
}

// Deck returns the deck of category c.
func (g *Game) Deck(c Category) *Deck { return g.decks[c] }

// Rules returns the rules in effect.
func (g *Game) Rules() Rules { return g.rules }

// Streak returns the doubles streak of the turn in progress.
func (g *Game) Streak() int { return g.streak }
