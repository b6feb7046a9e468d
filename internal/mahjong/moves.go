// Package mahjong move applicators: pure functions from GameState to
// GameState (spec.md §4.3). Every applicator returns (GameState, false) on
// invalid application instead of panicking or mutating its argument — the
// room state machine is responsible for pre-validating legality and for
// treating a false return as a no-op to report back to the client.
package mahjong

// drawReplacementFromTail pops tail tiles into p.Hand, chaining through any
// revealed bonus tiles, until a non-bonus tile lands or the wall runs dry.
// Shared by normal draw's bonus-chain and every kong's replacement draw.
func drawReplacementFromTail(p *Player, wall *Wall) bool {
	for {
		t, ok := wall.DrawTail()
		if !ok {
			return false
		}
		if t.Def.IsBonus() {
			p.RevealedBonuses = append(p.RevealedBonuses, t)
			continue
		}
		p.Hand = append(p.Hand, t)
		return true
	}
}

// DealAndReplaceBonuses deals 13 tiles to each seat and a 14th to the
// dealer, then drains bonus tiles from every hand, replacing from the tail
// until no player's hand holds a bonus (spec.md §4.3). ok is false if the
// wall exhausted mid-deal, in which case the caller must end the hand in a
// draw immediately.
func DealAndReplaceBonuses(gs *GameState, dealerSeat int) (*GameState, bool) {
	ns := gs.Clone()
	ns.CurrentPlayer = dealerSeat

	for i := 0; i < 4; i++ {
		for k := 0; k < 13; k++ {
			t, ok := ns.Wall.DrawHead()
			if !ok {
				return ns, false
			}
			ns.Players[i].Hand = append(ns.Players[i].Hand, t)
		}
	}
	dealerTile, ok := ns.Wall.DrawHead()
	if !ok {
		return ns, false
	}
	ns.Players[dealerSeat].Hand = append(ns.Players[dealerSeat].Hand, dealerTile)

	for i := 0; i < 4; i++ {
		if !drainInitialBonuses(ns.Players[i], ns.Wall) {
			return ns, false
		}
	}
	return ns, true
}

// drainInitialBonuses repeatedly moves bonus tiles out of p.Hand into
// RevealedBonuses, drawing tail replacements, until p.Hand holds none —
// replacements may themselves be bonus tiles, so this iterates to a fixed
// point (spec.md §4.3).
func drainInitialBonuses(p *Player, wall *Wall) bool {
	for {
		idx := -1
		for i, t := range p.Hand {
			if t.Def.IsBonus() {
				idx = i
				break
			}
		}
		if idx == -1 {
			return true
		}
		bonus := p.Hand[idx]
		p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
		p.RevealedBonuses = append(p.RevealedBonuses, bonus)

		repl, ok := wall.DrawTail()
		if !ok {
			return false
		}
		p.Hand = append(p.Hand, repl)
	}
}

// Draw takes the head tile for seat. If it is a bonus tile, it chains
// through tail replacements until a non-bonus tile is obtained or the wall
// empties (spec.md §4.3). ok is false only if the wall was already empty.
func Draw(gs *GameState, seat int) (*GameState, bool) {
	ns := gs.Clone()
	p := ns.Players[seat]

	t, ok := ns.Wall.DrawHead()
	if !ok {
		return ns, false
	}
	if !t.Def.IsBonus() {
		p.Hand = append(p.Hand, t)
		return ns, true
	}
	p.RevealedBonuses = append(p.RevealedBonuses, t)
	drawReplacementFromTail(p, ns.Wall)
	return ns, true
}

// Discard removes tileID from seat's hand, records it as the last discard,
// and advances the turn counter. seat must be the current player.
func Discard(gs *GameState, seat int, tileID int) (*GameState, bool) {
	if seat != gs.CurrentPlayer {
		return gs, false
	}
	ns := gs.Clone()
	p := ns.Players[seat]

	idx := -1
	for i, t := range p.Hand {
		if t.ID == tileID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return gs, false
	}
	tile := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	p.Discards = append(p.Discards, tile)

	ns.LastDiscard = tile
	ns.LastDiscarder = seat
	ns.HasLastDiscard = true
	ns.TurnCounter++
	return ns, true
}

// removeDiscardFromPile drops the claimed tile out of the discarder's
// discard pile — it no longer "belongs" to the discarder once claimed
// (spec.md §3 invariant).
func removeDiscardFromPile(p *Player, tileID int) {
	for i, t := range p.Discards {
		if t.ID == tileID {
			p.Discards = append(p.Discards[:i], p.Discards[i+1:]...)
			return
		}
	}
}

// ApplyChi claims the current last discard into a run meld for claimerIdx
// using the two named hand tiles. The claimer becomes current without
// advancing turn order.
func ApplyChi(gs *GameState, claimerIdx int, handTiles [2]Tile) (*GameState, bool) {
	if !gs.HasLastDiscard {
		return gs, false
	}
	if (gs.LastDiscarder+1)%4 != claimerIdx {
		return gs, false
	}
	ns := gs.Clone()
	claimer := ns.Players[claimerIdx]

	if !claimer.RemoveFromHand(handTiles[0].ID) || !claimer.RemoveFromHand(handTiles[1].ID) {
		return gs, false
	}
	meld := Meld{Kind: Chi, Tiles: []Tile{handTiles[0], handTiles[1], ns.LastDiscard}, From: ns.LastDiscarder}
	claimer.Melds = append(claimer.Melds, meld)

	removeDiscardFromPile(ns.Players[ns.LastDiscarder], ns.LastDiscard.ID)
	ns.HasLastDiscard = false
	ns.CurrentPlayer = claimerIdx
	return ns, true
}

// ApplyPong claims the current last discard into a triplet meld.
func ApplyPong(gs *GameState, claimerIdx int, handTiles [2]Tile) (*GameState, bool) {
	if !gs.HasLastDiscard {
		return gs, false
	}
	ns := gs.Clone()
	claimer := ns.Players[claimerIdx]

	if !claimer.RemoveFromHand(handTiles[0].ID) || !claimer.RemoveFromHand(handTiles[1].ID) {
		return gs, false
	}
	meld := Meld{Kind: Pong, Tiles: []Tile{handTiles[0], handTiles[1], ns.LastDiscard}, From: ns.LastDiscarder}
	claimer.Melds = append(claimer.Melds, meld)

	removeDiscardFromPile(ns.Players[ns.LastDiscarder], ns.LastDiscard.ID)
	ns.HasLastDiscard = false
	ns.CurrentPlayer = claimerIdx
	return ns, true
}

// ApplyKong claims the current last discard into a kong meld and draws the
// claimer a tail replacement (with bonus chaining).
func ApplyKong(gs *GameState, claimerIdx int, handTiles [3]Tile) (*GameState, bool) {
	if !gs.HasLastDiscard {
		return gs, false
	}
	ns := gs.Clone()
	claimer := ns.Players[claimerIdx]

	for _, t := range handTiles {
		if !claimer.RemoveFromHand(t.ID) {
			return gs, false
		}
	}
	meld := Meld{Kind: Kong, Tiles: []Tile{handTiles[0], handTiles[1], handTiles[2], ns.LastDiscard}, From: ns.LastDiscarder}
	claimer.Melds = append(claimer.Melds, meld)

	removeDiscardFromPile(ns.Players[ns.LastDiscarder], ns.LastDiscard.ID)
	ns.HasLastDiscard = false
	ns.CurrentPlayer = claimerIdx
	drawReplacementFromTail(claimer, ns.Wall)
	return ns, true
}

// ApplySelfKongConcealed upgrades four matching hand tiles into a concealed
// kong and draws a tail replacement.
func ApplySelfKongConcealed(gs *GameState, seat int, handTiles [4]Tile) (*GameState, bool) {
	ns := gs.Clone()
	p := ns.Players[seat]
	for _, t := range handTiles {
		if !p.RemoveFromHand(t.ID) {
			return gs, false
		}
	}
	p.Melds = append(p.Melds, Meld{Kind: ConcealedKong, Tiles: handTiles[:], From: -1})
	drawReplacementFromTail(p, ns.Wall)
	return ns, true
}

// ApplySelfKongPromote upgrades meldIndex (an existing pong) to a kong using
// a fourth hand tile, and draws a tail replacement.
func ApplySelfKongPromote(gs *GameState, seat int, handTile Tile, meldIndex int) (*GameState, bool) {
	ns := gs.Clone()
	p := ns.Players[seat]
	if meldIndex < 0 || meldIndex >= len(p.Melds) || p.Melds[meldIndex].Kind != Pong {
		return gs, false
	}
	if !p.RemoveFromHand(handTile.ID) {
		return gs, false
	}
	m := p.Melds[meldIndex]
	m.Kind = Kong
	m.Tiles = append(append([]Tile(nil), m.Tiles...), handTile)
	p.Melds[meldIndex] = m
	drawReplacementFromTail(p, ns.Wall)
	return ns, true
}

// AdvanceTurn moves CurrentPlayer to the next seat in turn order.
func AdvanceTurn(gs *GameState) *GameState {
	ns := gs.Clone()
	ns.CurrentPlayer = (ns.CurrentPlayer + 1) % 4
	ns.HasLastDiscard = false
	return ns
}
