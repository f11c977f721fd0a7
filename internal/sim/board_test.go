package sim

import "testing"

func TestNearestRailroad(t *testing.T) {
	cases := map[Position]Position{
		0:  5,
		5:  15,
		7:  15,
		22: 25,
		34: 35,
		35: 5,
		36: 5,
		39: 5,
	}
	for from, want := range cases {
		if got := NearestRailroad(from); got != want {
			t.Fatalf("NearestRailroad(%d)=%d, want %d", from, got, want)
		}
	}
}

func TestNearestUtility(t *testing.T) {
	cases := map[Position]Position{
		7:  12,
		12: 28,
		22: 28,
		28: 12,
		36: 12,
	}
	for from, want := range cases {
		if got := NearestUtility(from); got != want {
			t.Fatalf("NearestUtility(%d)=%d, want %d", from, got, want)
		}
	}
}

func TestBoardKinds(t *testing.T) {
	count := map[SpaceKind]int{}
	for p := Position(0); p < BoardSize; p++ {
		count[KindOf(p)]++
	}
	if count[KindCommunityChest] != 3 || count[KindChance] != 3 {
		t.Fatalf("card spaces: chest=%d chance=%d", count[KindCommunityChest], count[KindChance])
	}
	if count[KindRailroad] != 4 || count[KindUtility] != 2 {
		t.Fatalf("railroads=%d utilities=%d", count[KindRailroad], count[KindUtility])
	}
	if KindOf(GoToJailSpace) != KindGoToJail || count[KindGoToJail] != 1 {
		t.Fatalf("go to jail space misplaced")
	}
	if KindOf(Jail) != KindJail {
		t.Fatalf("sentinel kind = %s", KindOf(Jail))
	}
	if SpaceName(Jail) != "In Jail" || SpaceName(Go) != "Go" || SpaceName(Boardwalk) != "Boardwalk" {
		t.Fatalf("unexpected names: %s / %s / %s", SpaceName(Jail), SpaceName(Go), SpaceName(Boardwalk))
	}
}

func TestAdvanceWraps(t *testing.T) {
	if got := Advance(38, 5); got != 3 {
		t.Fatalf("Advance(38,5)=%d", got)
	}
	if got := Advance(39, 1); got != Go {
		t.Fatalf("Advance(39,1)=%d", got)
	}
	if got := Advance(1, -3); got != 38 {
		t.Fatalf("Advance(1,-3)=%d", got)
	}
}
