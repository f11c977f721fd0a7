package sim

import "testing"

func countEffects(cards []Card) map[Effect]int {
	out := map[Effect]int{}
	for _, c := range cards {
		out[c.Effect]++
	}
	return out
}

func TestCatalogs(t *testing.T) {
	chest := Catalog(CommunityChest)
	chance := Catalog(Chance)
	if len(chest) != DeckSize || len(chance) != DeckSize {
		t.Fatalf("catalog sizes chest=%d chance=%d", len(chest), len(chance))
	}
	if n := countEffects(chest)[EffectNone]; n != DeckSize-3 {
		t.Fatalf("chest filler=%d", n)
	}
	if n := countEffects(chance)[EffectNone]; n != DeckSize-10 {
		t.Fatalf("chance filler=%d", n)
	}
	if n := countEffects(chance)[EffectAdvanceTo]; n != 4 {
		t.Fatalf("chance advance-to cards=%d", n)
	}
}

func TestDeckDrawsWholeCatalogBeforeRepeat(t *testing.T) {
	d := NewDeck(CommunityChest, NewSeededRNG(7))
	drawn := make([]Card, 0, DeckSize)
	for i := 0; i < DeckSize; i++ {
		drawn = append(drawn, d.Draw(0))
	}
	got := countEffects(drawn)
	want := countEffects(Catalog(CommunityChest))
	for e, n := range want {
		if got[e] != n {
			t.Fatalf("effect %s drawn %d times, want %d", e, got[e], n)
		}
	}

	// player 0 drew the jail-free card, so the rebuilt pile leaves it out
	if h, ok := d.Holder(); !ok || h != 0 {
		t.Fatalf("holder=%d held=%v", h, ok)
	}
	if d.Len() != DeckSize-1 || d.Contains(EffectJailFree) {
		t.Fatalf("rebuilt deck len=%d containsJailFree=%v", d.Len(), d.Contains(EffectJailFree))
	}
}

func TestDeckReleaseWaitsForRebuild(t *testing.T) {
	d := NewDeck(CommunityChest, NewSeededRNG(3))
	d.cards = []Card{{Effect: EffectJailFree}, {Effect: EffectNone}}
	d.holder = NoHolder

	// draw until the jail-free card comes out
	for d.Len() > 0 && d.Contains(EffectJailFree) {
		d.Draw(2)
	}
	if h, ok := d.Holder(); !ok || h != 2 {
		t.Fatalf("holder=%d held=%v", h, ok)
	}

	d.Release()
	if _, ok := d.Holder(); ok {
		t.Fatalf("card still held after release")
	}
	if d.Contains(EffectJailFree) {
		t.Fatalf("released card went straight back into the pile")
	}

	// drain to the next rebuild
	for d.Len() > 0 {
		before := d.Len()
		d.Draw(1)
		if before == 1 {
			break
		}
	}
	if !d.Contains(EffectJailFree) || d.Len() != DeckSize {
		t.Fatalf("rebuild after release: len=%d containsJailFree=%v", d.Len(), d.Contains(EffectJailFree))
	}
}

func TestDeckJailFreeAsLastCard(t *testing.T) {
	d := NewDeck(Chance, NewSeededRNG(1))
	d.cards = []Card{{Effect: EffectJailFree}}

	c := d.Draw(4)
	if c.Effect != EffectJailFree {
		t.Fatalf("drew %s", c.Effect)
	}
	if h, ok := d.Holder(); !ok || h != 4 {
		t.Fatalf("holder=%d held=%v", h, ok)
	}
	// held and in the pile at the same time is never allowed
	if d.Contains(EffectJailFree) {
		t.Fatalf("jail-free card both held and in deck")
	}
	if d.Len() != DeckSize-1 {
		t.Fatalf("len=%d", d.Len())
	}
}

func TestDeckNeverEmpty(t *testing.T) {
	d := NewDeck(Chance, NewSeededRNG(11))
	for i := 0; i < DeckSize*50; i++ {
		d.Draw(i % 4)
		if d.Len() == 0 {
			t.Fatalf("deck observed empty after draw %d", i)
		}
		if i%7 == 0 {
			d.Release()
		}
	}
}
