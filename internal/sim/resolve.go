package sim

// PlayTurn resolves one full turn for player p: the first roll plus
// every extra roll earned by doubles. The doubles streak starts at zero.
func (g *Game) PlayTurn(p int) {
	g.streak = 0
	for g.resolveRoll(p) {
	}
}

// resolveRoll handles a single roll event and reports whether the player
// rolls again (doubles and not in jail).
//
// Order per roll:
//  1. in jail: spend a held jail-free card, else try for doubles
//  2. doubles streak check (limit => jail, no move)
//  3. move, wrapping past the last space
//  4. resolve the landing space (go-to-jail, card draw)
//  5. record the final resting position
func (g *Game) resolveRoll(p int) bool {
	g.Rolls++
	pl := &g.Players[p]

	if pl.Position == Jail && g.useJailCard(p) {
		g.release(pl)
		if g.debug {
			g.logger.Debug("left jail with card", "player", p)
		}
	}

	d1, d2 := g.dice.Roll()
	doubles := d1 == d2

	if pl.Position == Jail {
		switch {
		case doubles:
			g.release(pl)
			if g.rules.JailDoublesEndTurn {
				doubles = false
			}
		case pl.JailRolls+1 >= g.rules.MaxJailAttempts:
			g.release(pl)
		default:
			pl.JailRolls++
			if g.debug {
				g.logger.Debug("still in jail", "player", p, "d1", d1, "d2", d2, "attempts", pl.JailRolls)
			}
			return false
		}
	}

	if doubles {
		g.streak++
		if g.streak >= g.rules.DoublesLimit {
			g.sendToJail(pl, Jail)
			if g.debug {
				g.logger.Debug("speeding", "player", p, "streak", g.streak)
			}
			return false
		}
	}

	from := pl.Position
	pl.Position = Advance(pl.Position, d1+d2)

	if !g.resolveLanding(p, pl) {
		if g.debug {
			g.logger.Debug("sent to jail", "player", p, "from", from, "d1", d1, "d2", d2)
		}
		return false
	}

	g.Landings[pl.Position]++
	if g.debug {
		g.logger.Debug("moved", "player", p, "d1", d1, "d2", d2, "from", from, "to", pl.Position)
	}
	return doubles
}

// resolveLanding applies the effect of the space the token stopped on.
// It returns false when the token went to jail, which ends the turn
// with the jail landing already recorded.
func (g *Game) resolveLanding(p int, pl *Player) bool {
	switch KindOf(pl.Position) {
	case KindGoToJail:
		if g.rules.CountGoToJailSpace {
			g.sendToJail(pl, pl.Position)
		} else {
			g.sendToJail(pl, Jail)
		}
		return false
	case KindCommunityChest:
		return g.applyCard(pl, g.decks[CommunityChest].Draw(p))
	case KindChance:
		return g.applyCard(pl, g.decks[Chance].Draw(p))
	}
	return true
}

// applyCard moves the token per the card. A repositioned token does not
// trigger the space it is moved to.
func (g *Game) applyCard(pl *Player, c Card) bool {
	switch c.Effect {
	case EffectGoToJail:
		g.sendToJail(pl, Jail)
		return false
	case EffectAdvanceToGo:
		pl.Position = Go
	case EffectNearestRailroad:
		pl.Position = NearestRailroad(pl.Position)
	case EffectNearestUtility:
		pl.Position = NearestUtility(pl.Position)
	case EffectAdvanceTo:
		pl.Position = c.Target
	case EffectBack3:
		pl.Position = Advance(pl.Position, -3)
	case EffectJailFree:
		// holder already recorded by the deck
	}
	return true
}

// useJailCard spends a jail-free card held by p, Community Chest first.
func (g *Game) useJailCard(p int) bool {
	for _, d := range g.decks {
		if holder, ok := d.Holder(); ok && holder == p {
			d.Release()
			return true
		}
	}
	return false
}

func (g *Game) release(pl *Player) {
	pl.Position = JustVisiting
	pl.JailRolls = 0
}

// sendToJail puts the token on the jail sentinel and records the landing at record.
func (g *Game) sendToJail(pl *Player, record Position) {
	g.Landings[record]++
	pl.Position = Jail
	pl.JailRolls = 0
}
