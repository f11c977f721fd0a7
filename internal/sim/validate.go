package sim

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid simulation params")

// validateParams rejects runs that would produce no landings.
// Range limits (2..8 players, turn caps) belong to the caller.
func validateParams(p Params) error {
	if p.Players <= 0 {
		return fmt.Errorf("%w: players must be > 0, got %d", ErrInvalidParams, p.Players)
	}
	if p.Rounds <= 0 {
		return fmt.Errorf("%w: rounds must be > 0, got %d", ErrInvalidParams, p.Rounds)
	}
	return nil
}
