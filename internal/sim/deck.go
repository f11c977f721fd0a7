package sim

// Category selects one of the two card decks.
type Category int

const (
	CommunityChest Category = iota // category A
	Chance                         // category B
)

func (c Category) String() string {
	switch c {
	case CommunityChest:
		return "community_chest"
	case Chance:
		return "chance"
	default:
		return "unknown"
	}
}

// DeckSize is the number of cards in a full catalog, filler included.
const DeckSize = 16

// NoHolder marks an unheld jail-free card.
const NoHolder = -1

// Effect is what a drawn card does to the token.
type Effect string

const (
	EffectNone            Effect = "none" // filler: money cards etc.
	EffectJailFree        Effect = "get_out_of_jail_free"
	EffectAdvanceToGo     Effect = "advance_to_go"
	EffectGoToJail        Effect = "go_to_jail"
	EffectNearestRailroad Effect = "nearest_railroad"
	EffectNearestUtility  Effect = "nearest_utility"
	EffectAdvanceTo       Effect = "advance_to" // Target holds the space
	EffectBack3           Effect = "back_3"
)

// Card is one entry of a deck catalog.
type Card struct {
	Effect Effect
	Target Position // only for EffectAdvanceTo
}

// Catalog returns the full card list for a category, jail-free card first.
func Catalog(c Category) []Card {
	var cards []Card
	switch c {
	case CommunityChest:
		cards = []Card{
			{Effect: EffectJailFree},
			{Effect: EffectAdvanceToGo},
			{Effect: EffectGoToJail},
		}
	case Chance:
		cards = []Card{
			{Effect: EffectJailFree},
			{Effect: EffectAdvanceToGo},
			{Effect: EffectGoToJail},
			{Effect: EffectNearestRailroad},
			{Effect: EffectNearestUtility},
			{Effect: EffectAdvanceTo, Target: IllinoisAvenue},
			{Effect: EffectAdvanceTo, Target: StCharlesPlace},
			{Effect: EffectBack3},
			{Effect: EffectAdvanceTo, Target: Boardwalk},
			{Effect: EffectAdvanceTo, Target: ReadingRailroad},
		}
	}
	for len(cards) < DeckSize {
		cards = append(cards, Card{Effect: EffectNone})
	}
	return cards
}

// Deck is a finite card pile drawn without replacement.
// It owns the holder of its jail-free card: while held the card is
// left out of every rebuild, and a release only takes effect at the next rebuild.
type Deck struct {
	Category Category

	cards  []Card
	holder int
	rng    RandomSource
}

// NewDeck builds a full, unheld deck for c.
func NewDeck(c Category, rng RandomSource) *Deck {
	if rng == nil {
		rng = DefaultRNG()
	}
	d := &Deck{Category: c, holder: NoHolder, rng: rng}
	d.refill()
	return d
}

// refill rebuilds the pile from the catalog, skipping a held jail-free card.
// Draws pick uniformly from the remaining slice, so the order does not matter.
func (d *Deck) refill() {
	cat := Catalog(d.Category)
	d.cards = d.cards[:0]
	for _, card := range cat {
		if card.Effect == EffectJailFree && d.holder != NoHolder {
			continue
		}
		d.cards = append(d.cards, card)
	}
}

// Draw removes one card at random and returns it.
// Drawing the jail-free card makes player its holder. If the draw empties
// the pile it is rebuilt before returning, so Draw never fails.
func (d *Deck) Draw(player int) Card {
	i := d.rng.IntN(len(d.cards))
	card := d.cards[i]

	last := len(d.cards) - 1
	d.cards[i] = d.cards[last]
	d.cards = d.cards[:last]

	if card.Effect == EffectJailFree {
		d.holder = player
	}
	if len(d.cards) == 0 {
		d.refill()
	}
	return card
}

// Release gives up the held jail-free card. It returns to the pile at the next rebuild.
func (d *Deck) Release() {
	d.holder = NoHolder
}

// Holder returns the player holding this deck's jail-free card.
func (d *Deck) Holder() (int, bool) {
	return d.holder, d.holder != NoHolder
}

// Len returns the number of cards left before the next rebuild.
func (d *Deck) Len() int { return len(d.cards) }

// Contains reports whether an effect is still in the pile.
func (d *Deck) Contains(e Effect) bool {
	for _, c := range d.cards {
		if c.Effect == e {
			return true
		}
	}
	return false
}
