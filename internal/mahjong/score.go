package mahjong

// TaiEntry is one scoring pattern that contributed to a win (spec.md §4.5).
// Names are exposed verbatim to clients, so they are fixed identifiers, not
// prose.
type TaiEntry struct {
	Pattern string
	Tai     int
}

// ScoreResult is the full breakdown for one winning hand. RawTai is the
// unclamped pattern sum — the minimum-tai win-eligibility check (spec.md
// §4.6) tests RawTai, not TotalTai, since the [1,10] clamp's floor would
// otherwise make that check vacuous.
type ScoreResult struct {
	Entries    []TaiEntry
	RawTai     int
	TotalTai   int
	BasePoints int
}

func allTiles(p *Player) []Tile {
	all := append([]Tile(nil), p.Hand...)
	for _, m := range p.Melds {
		all = append(all, m.Tiles...)
	}
	return all
}

func hasBonusValue(p *Player, kind BonusKind, value int) bool {
	for _, t := range p.RevealedBonuses {
		if t.Def.Kind == KindBonus && t.Def.Bonus == kind && t.Def.Value == value {
			return true
		}
	}
	return false
}

func countBonusKind(p *Player, kind BonusKind) int {
	n := 0
	for _, t := range p.RevealedBonuses {
		if t.Def.Kind == KindBonus && t.Def.Bonus == kind {
			n++
		}
	}
	return n
}

// tripletLikeDefs returns the definition of every pong/kong/concealed-kong
// meld the player holds.
func tripletLikeDefs(p *Player) []Definition {
	var out []Definition
	for _, m := range p.Melds {
		if m.IsTripletLike() {
			out = append(out, m.Definition())
		}
	}
	return out
}

func containsDef(defs []Definition, d Definition) bool {
	for _, x := range defs {
		if x == d {
			return true
		}
	}
	return false
}

func pairDefInHand(hand []Tile, d Definition) bool {
	n := 0
	for _, t := range hand {
		if t.Def == d {
			n++
		}
	}
	return n >= 2
}

// Score computes the tai breakdown for winner, given whether the win was a
// self-draw and the current round wind (spec.md §4.5). Total tai is clamped
// to [1, 10]; base points are 2^finalTai.
func Score(winner *Player, selfDraw bool, roundWind Wind) ScoreResult {
	var entries []TaiEntry
	add := func(name string, tai int) {
		if tai > 0 {
			entries = append(entries, TaiEntry{Pattern: name, Tai: tai})
		}
	}

	flowerCount := countBonusKind(winner, Flower)
	animalCount := countBonusKind(winner, Animal)
	add("flowers", flowerCount)
	add("animals", animalCount)

	if flowerCount == 4 {
		add("all-flowers", 1)
	}
	if animalCount == 4 {
		add("all-animals", 1)
	}
	if hasBonusValue(winner, Animal, 1) && hasBonusValue(winner, Animal, 2) {
		add("cat-and-mouse", 1)
	}
	if hasBonusValue(winner, Animal, 3) && hasBonusValue(winner, Animal, 4) {
		add("rooster-and-centipede", 1)
	}

	if selfDraw {
		add("self-draw", 1)
	}
	if len(winner.RevealedBonuses) == 0 {
		add("no-bonus-tiles", 1)
	}
	if !winner.HasOpenMeld() {
		add("concealed-hand", 1)
	}

	if len(winner.Melds) > 0 {
		allTripletLike := true
		for _, m := range winner.Melds {
			if !m.IsTripletLike() {
				allTripletLike = false
				break
			}
		}
		if allTripletLike {
			add("all-pongs", 2)
		}
	}

	triplets := tripletLikeDefs(winner)

	dragonPongs := 0
	for _, d := range triplets {
		if d.IsDragon() {
			dragonPongs++
		}
	}
	add("dragon-pong", dragonPongs)

	if containsDef(triplets, WindDef(winner.Seat)) {
		add("seat-wind-pong", 1)
	}
	if containsDef(triplets, WindDef(roundWind)) {
		add("round-wind-pong", 1)
	}

	full := allTiles(winner)

	suitPresent := map[SuitKind]bool{}
	honorPresent := false
	allSuit := true
	allHonor := true
	allTerminalTiles := true
	for _, t := range full {
		switch {
		case t.Def.IsSuit():
			suitPresent[t.Def.Suit] = true
			allHonor = false
			if !t.Def.IsTerminal() {
				allTerminalTiles = false
			}
		case t.Def.IsHonor():
			honorPresent = true
			allSuit = false
			allTerminalTiles = false
		default:
			// Bonus tiles never sit in hand/melds past replacement; ignore defensively.
		}
	}

	if allSuit && len(suitPresent) == 1 {
		add("full-flush", 4)
	} else if len(suitPresent) == 1 && honorPresent {
		add("half-flush", 2)
	}
	if allHonor {
		add("all-honors", 10)
	}
	if allTerminalTiles && len(full) > 0 {
		add("all-terminals", 10)
	}

	dragonColors := map[DragonColor]bool{}
	for _, d := range triplets {
		if d.IsDragon() {
			dragonColors[d.Dragon] = true
		}
	}
	if len(dragonColors) == 3 {
		add("big-three-dragons", 8)
	} else if len(dragonColors) == 2 {
		for _, c := range []DragonColor{Red, Green, White} {
			if !dragonColors[c] && pairDefInHand(winner.Hand, DragonDef(c)) {
				add("small-three-dragons", 4)
				break
			}
		}
	}

	windPongs := map[Wind]bool{}
	for _, d := range triplets {
		if d.IsWind() {
			windPongs[d.Wind] = true
		}
	}
	if len(windPongs) == 4 {
		add("big-four-winds", 10)
	} else if len(windPongs) == 3 {
		for _, w := range []Wind{East, South, West, North} {
			if !windPongs[w] && pairDefInHand(winner.Hand, WindDef(w)) {
				add("small-four-winds", 8)
				break
			}
		}
	}

	raw := 0
	for _, e := range entries {
		raw += e.Tai
	}
	total := raw
	if total < 1 {
		total = 1
	}
	if total > 10 {
		total = 10
	}

	return ScoreResult{Entries: entries, RawTai: raw, TotalTai: total, BasePoints: 1 << uint(total)}
}

// PaymentEntry is a signed point transfer for one seat (spec.md §4.5).
type PaymentEntry struct {
	PlayerIndex int
	Amount      int
}

// PaymentResult is the full settlement for one hand.
type PaymentResult struct {
	Payments    []PaymentEntry
	WinnerTotal int
}

// Payments computes the zero-sum settlement for a win: on self-draw every
// non-winner pays basePoints; otherwise every non-winner pays basePoints
// except the discarder, who pays double.
func Payments(winnerIndex int, discarderIndex int, selfDraw bool, basePoints int) PaymentResult {
	var payments []PaymentEntry
	winnerTotal := 0
	for i := 0; i < 4; i++ {
		if i == winnerIndex {
			continue
		}
		amount := basePoints
		if !selfDraw && i == discarderIndex {
			amount = 2 * basePoints
		}
		payments = append(payments, PaymentEntry{PlayerIndex: i, Amount: -amount})
		winnerTotal += amount
	}
	payments = append(payments, PaymentEntry{PlayerIndex: winnerIndex, Amount: winnerTotal})
	return PaymentResult{Payments: payments, WinnerTotal: winnerTotal}
}
