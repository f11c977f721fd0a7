package sim

// Rules holds the tunable parts of the turn state machine.
// The zero value plays the classic rules: unset limits take their defaults
// and every flag is off.
type Rules struct {
	MaxJailAttempts int // failed doubles attempts before a forced release; 0 => 3
	DoublesLimit    int // consecutive doubles in one turn that send a token to jail; 0 => 3

	// JailDoublesEndTurn: doubles that release a token from jail move it and
	// end the turn. Off, they count toward the streak and earn another roll.
	JailDoublesEndTurn bool

	// CountGoToJailSpace records a landing on the go-to-jail space at that
	// space instead of at the jail sentinel.
	CountGoToJailSpace bool
}

// DefaultRules returns the classic rule set.
func DefaultRules() Rules {
	return Rules{
		MaxJailAttempts: 3,
		DoublesLimit:    3,
	}
}

// normalize fills unset limits with the defaults.
func (r Rules) normalize() Rules {
	def := DefaultRules()
	if r.MaxJailAttempts <= 0 {
		r.MaxJailAttempts = def.MaxJailAttempts
	}
	if r.DoublesLimit <= 0 {
		r.DoublesLimit = def.DoublesLimit
	}
	return r
}
