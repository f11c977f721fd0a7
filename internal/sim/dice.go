package sim

// Dice rolls the pair of six-sided dice used for every move.
type Dice interface {
	Roll() (int, int)
}

// rngDice rolls two independent d6 from a RandomSource.
type rngDice struct {
	rng RandomSource
}

// NewDice returns fair dice backed by rng. nil rng => DefaultRNG.
func NewDice(rng RandomSource) Dice {
	if rng == nil {
		rng = DefaultRNG()
	}
	return rngDice{rng: rng}
}

func (d rngDice) Roll() (int, int) {
	return d.rng.IntN(6) + 1, d.rng.IntN(6) + 1
}
