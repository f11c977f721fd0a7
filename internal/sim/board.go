package sim

import "fmt"

// Position is a board index. 0..39 are physical spaces, 40 is the jail sentinel.
type Position int

const (
	BoardSize    = 40 // physical spaces
	NumPositions = 41 // physical spaces + jail sentinel

	Go            Position = 0
	JustVisiting  Position = 10 // where a token re-enters the board after jail
	GoToJailSpace Position = 30
	Jail          Position = 40 // sentinel, never part of movement arithmetic
)

// SpaceKind tags what happens when a move ends on a space.
type SpaceKind string

const (
	KindOrdinary       SpaceKind = "ordinary"
	KindCorner         SpaceKind = "corner"
	KindTax            SpaceKind = "tax"
	KindCommunityChest SpaceKind = "community_chest"
	KindChance         SpaceKind = "chance"
	KindGoToJail       SpaceKind = "go_to_jail"
	KindRailroad       SpaceKind = "railroad"
	KindUtility        SpaceKind = "utility"
	KindJail           SpaceKind = "jail"
)

type space struct {
	name string
	kind SpaceKind
}

var board = [NumPositions]space{
	{"Go", KindCorner},
	{"Mediterranean Avenue", KindOrdinary},
	{"Community Chest 1", KindCommunityChest},
	{"Baltic Avenue", KindOrdinary},
	{"Income Tax", KindTax},
	{"Reading Railroad", KindRailroad},
	{"Oriental Avenue", KindOrdinary},
	{"Chance 1", KindChance},
	{"Vermont Avenue", KindOrdinary},
	{"Connecticut Avenue", KindOrdinary},
	{"Just Visiting", KindCorner},
	{"St. Charles Place", KindOrdinary},
	{"Electric Company", KindUtility},
	{"States Avenue", KindOrdinary},
	{"Virginia Avenue", KindOrdinary},
	{"Pennsylvania Railroad", KindRailroad},
	{"St. James Place", KindOrdinary},
	{"Community Chest 2", KindCommunityChest},
	{"Tennessee Avenue", KindOrdinary},
	{"New York Avenue", KindOrdinary},
	{"Free Parking", KindCorner},
	{"Kentucky Avenue", KindOrdinary},
	{"Chance 2", KindChance},
	{"Indiana Avenue", KindOrdinary},
	{"Illinois Avenue", KindOrdinary},
	{"B & O Railroad", KindRailroad},
	{"Atlantic Avenue", KindOrdinary},
	{"Ventnor Avenue", KindOrdinary},
	{"Water Works", KindUtility},
	{"Marvin Gardens", KindOrdinary},
	{"Go to Jail", KindGoToJail},
	{"Pacific Avenue", KindOrdinary},
	{"North Carolina Avenue", KindOrdinary},
	{"Community Chest 3", KindCommunityChest},
	{"Pennsylvania Avenue", KindOrdinary},
	{"Short Line", KindRailroad},
	{"Chance 3", KindChance},
	{"Park Place", KindOrdinary},
	{"Luxury Tax", KindTax},
	{"Boardwalk", KindOrdinary},
	{"In Jail", KindJail},
}

// Named targets of the fixed-position Chance cards.
const (
	ReadingRailroad Position = 5
	StCharlesPlace  Position = 11
	IllinoisAvenue  Position = 24
	Boardwalk       Position = 39
)

var (
	railroads = []Position{5, 15, 25, 35}
	utilities = []Position{12, 28}
)

// Valid reports whether p is a board index or the jail sentinel.
func (p Position) Valid() bool { return p >= 0 && p < NumPositions }

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return board[p].name
}

// SpaceName returns the display name of p ("In Jail" for the sentinel).
func SpaceName(p Position) string { return p.String() }

// KindOf returns the space kind at p. Out-of-range positions are ordinary.
func KindOf(p Position) SpaceKind {
	if !p.Valid() {
		return KindOrdinary
	}
	return board[p].kind
}

// Advance moves a physical position forward by steps, wrapping past the last space.
func Advance(p Position, steps int) Position {
	n := (int(p) + steps) % BoardSize
	if n < 0 {
		n += BoardSize
	}
	return Position(n)
}

// NearestRailroad returns the first railroad strictly after p, wrapping around the board.
func NearestRailroad(p Position) Position { return nextInSet(p, railroads) }

// NearestUtility returns the first utility strictly after p, wrapping around the board.
func NearestUtility(p Position) Position { return nextInSet(p, utilities) }

// nextInSet expects set sorted ascending.
func nextInSet(p Position, set []Position) Position {
	for _, s := range set {
		if s > p {
			return s
		}
	}
	return set[0]
}
