package mahjong

import "sort"

// groupByDefinition counts hand tiles by definition and returns the distinct
// definitions present, sorted into the canonical TileOrder — the scan order
// the set-decomposition algorithm below depends on for its correctness
// argument (spec.md §4.2: the leading group in canonical order must be
// consumed by some set in any valid decomposition).
func groupByDefinition(hand []Tile) (map[Definition]int, []Definition) {
	counts := make(map[Definition]int, len(hand))
	for _, t := range hand {
		counts[t.Def]++
	}
	defs := make([]Definition, 0, len(counts))
	for d := range counts {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return TileOrder(defs[i]) < TileOrder(defs[j]) })
	return counts, defs
}

// CheckWin returns true iff hand, together with melds, decomposes into
// exactly 4 sets + 1 pair (spec.md §4.2). No seven-pairs, no
// thirteen-orphans — standard Mahjong shape only.
func CheckWin(hand []Tile, melds []Meld) bool {
	required := 14 - 3*MeldCount(melds)
	if len(hand) != required {
		return false
	}
	setsNeeded := 4 - MeldCount(melds)
	if setsNeeded < 0 {
		return false
	}

	counts, defs := groupByDefinition(hand)
	for _, d := range defs {
		if counts[d] < 2 {
			continue
		}
		counts[d] -= 2
		if decompose(counts, defs, setsNeeded) {
			return true
		}
		counts[d] += 2
	}
	return false
}

// CheckWinWithTile is CheckWin(hand ⊕ tile, melds) without mutating hand.
func CheckWinWithTile(hand []Tile, melds []Meld, tile Tile) bool {
	withTile := make([]Tile, len(hand)+1)
	copy(withTile, hand)
	withTile[len(hand)] = tile
	return CheckWin(withTile, melds)
}

// decompose tries to consume setsNeeded sets (triplet or run) from counts,
// scanning definitions in canonical order. It always attacks the first
// definition with a nonzero count: in any valid decomposition that
// definition must belong to *some* set, so failing both branches on it means
// no decomposition exists — this early cut-off keeps the recursion linear in
// hand size instead of exponential (spec.md §9).
func decompose(counts map[Definition]int, defs []Definition, setsNeeded int) bool {
	if setsNeeded == 0 {
		for _, d := range defs {
			if counts[d] != 0 {
				return false
			}
		}
		return true
	}

	var leading Definition
	found := false
	for _, d := range defs {
		if counts[d] > 0 {
			leading = d
			found = true
			break
		}
	}
	if !found {
		return false
	}

	// Triplet branch.
	if counts[leading] >= 3 {
		counts[leading] -= 3
		if decompose(counts, defs, setsNeeded-1) {
			counts[leading] += 3
			return true
		}
		counts[leading] += 3
	}

	// Run branch: only numbered suits, only starting at value <= 7.
	if leading.Kind == KindSuit && leading.Value <= 7 {
		d2 := Definition{Kind: KindSuit, Suit: leading.Suit, Value: leading.Value + 1}
		d3 := Definition{Kind: KindSuit, Suit: leading.Suit, Value: leading.Value + 2}
		if counts[leading] >= 1 && counts[d2] >= 1 && counts[d3] >= 1 {
			counts[leading]--
			counts[d2]--
			counts[d3]--
			if decompose(counts, defs, setsNeeded-1) {
				counts[leading]++
				counts[d2]++
				counts[d3]++
				return true
			}
			counts[leading]++
			counts[d2]++
			counts[d3]++
		}
	}

	return false
}

// CanPong reports whether hand holds at least 2 copies of def, returning the
// two tiles that would be kept to form the pong.
func CanPong(hand []Tile, def Definition) ([2]Tile, bool) {
	matches := matchingTiles(hand, def)
	if len(matches) < 2 {
		return [2]Tile{}, false
	}
	return [2]Tile{matches[0], matches[1]}, true
}

// CanKong reports whether hand holds at least 3 copies of def, returning the
// three tiles that would be kept to form the kong.
func CanKong(hand []Tile, def Definition) ([3]Tile, bool) {
	matches := matchingTiles(hand, def)
	if len(matches) < 3 {
		return [3]Tile{}, false
	}
	return [3]Tile{matches[0], matches[1], matches[2]}, true
}

func matchingTiles(hand []Tile, def Definition) []Tile {
	var out []Tile
	for _, t := range hand {
		if t.Def == def {
			out = append(out, t)
		}
	}
	return out
}

// ChiOption is one valid chi completion: the two hand tiles that combine
// with the claimed discard to form a run.
type ChiOption struct {
	HandTiles [2]Tile
}

// CanAllChi returns every valid chi completion for discardDef discarded by
// discarderIdx and claimed by claimerIdx (spec.md §4.2). Chi is only legal
// for the next player in turn order and only on suit tiles.
func CanAllChi(hand []Tile, discardDef Definition, claimerIdx, discarderIdx int) []ChiOption {
	if (discarderIdx+1)%4 != claimerIdx {
		return nil
	}
	if !discardDef.IsSuit() {
		return nil
	}
	v := discardDef.Value
	suit := discardDef.Suit

	type pair struct{ a, b int }
	candidates := []pair{{v - 2, v - 1}, {v - 1, v + 1}, {v + 1, v + 2}}

	var options []ChiOption
	for _, c := range candidates {
		if c.a < 1 || c.a > 9 || c.b < 1 || c.b > 9 {
			continue
		}
		da := Definition{Kind: KindSuit, Suit: suit, Value: c.a}
		db := Definition{Kind: KindSuit, Suit: suit, Value: c.b}

		if da == db {
			// Can't happen for these candidate pairs, but guard anyway.
			continue
		}

		tileA, okA := firstUnused(hand, da, nil)
		if !okA {
			continue
		}
		tileB, okB := firstUnused(hand, db, map[int]bool{tileA.ID: true})
		if !okB {
			continue
		}
		options = append(options, ChiOption{HandTiles: [2]Tile{tileA, tileB}})
	}
	return options
}

func firstUnused(hand []Tile, def Definition, used map[int]bool) (Tile, bool) {
	for _, t := range hand {
		if t.Def != def {
			continue
		}
		if used != nil && used[t.ID] {
			continue
		}
		return t, true
	}
	return Tile{}, false
}

// SelfKongKind distinguishes the two ways a player can self-declare a kong.
type SelfKongKind int

const (
	SelfKongConcealed SelfKongKind = iota
	SelfKongPromote
)

// SelfKongOption describes a legal self-kong.
type SelfKongOption struct {
	Kind      SelfKongKind
	Def       Definition
	HandTiles []Tile // tiles removed from hand (4 for concealed, 1 for promote)
	MeldIndex int     // index of the pong being promoted; -1 for concealed
}

// CanSelfKong reports the legal self-kong for a player, preferring promote
// over concealed when both are available (spec.md §4.2: this tracks more
// melds as kong, which is the deterministic tie-break the policy needs).
func CanSelfKong(hand []Tile, melds []Meld) (SelfKongOption, bool) {
	for i, m := range melds {
		if m.Kind != Pong {
			continue
		}
		def := m.Definition()
		if tile, ok := firstUnused(hand, def, nil); ok {
			return SelfKongOption{Kind: SelfKongPromote, Def: def, HandTiles: []Tile{tile}, MeldIndex: i}, true
		}
	}

	counts, defs := groupByDefinition(hand)
	for _, d := range defs {
		if counts[d] >= 4 {
			matches := matchingTiles(hand, d)
			return SelfKongOption{Kind: SelfKongConcealed, Def: d, HandTiles: matches[:4], MeldIndex: -1}, true
		}
	}
	return SelfKongOption{}, false
}
