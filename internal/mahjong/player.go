package mahjong

// ConnectionStatus tracks how a seat is currently occupied (spec.md §3).
type ConnectionStatus int

const (
	HumanConnected ConnectionStatus = iota
	HumanDisconnected
	BotOwned
)

// Player is one of the four fixed seats.
type Player struct {
	Name   string
	Avatar string
	Seat   Wind

	Hand            []Tile
	Discards        []Tile
	Melds           []Meld
	RevealedBonuses []Tile

	Score int

	Connection ConnectionStatus
}

// NewPlayer builds an empty seat ready to be dealt into.
func NewPlayer(name, avatar string, seat Wind) *Player {
	return &Player{
		Name:       name,
		Avatar:     avatar,
		Seat:       seat,
		Hand:       make([]Tile, 0, 14),
		Discards:   make([]Tile, 0, 24),
		Melds:      make([]Meld, 0, 4),
		Connection: HumanConnected,
	}
}

// Clone deep-copies a player so pure applicators never alias slices across
// GameState snapshots.
func (p *Player) Clone() *Player {
	cp := *p
	cp.Hand = append([]Tile(nil), p.Hand...)
	cp.Discards = append([]Tile(nil), p.Discards...)
	cp.RevealedBonuses = append([]Tile(nil), p.RevealedBonuses...)
	cp.Melds = make([]Meld, len(p.Melds))
	for i, m := range p.Melds {
		cp.Melds[i] = Meld{Kind: m.Kind, From: m.From, Tiles: append([]Tile(nil), m.Tiles...)}
	}
	return &cp
}

// RemoveFromHand removes the tile with the given id from hand, returning
// false (no-op) if it isn't present.
func (p *Player) RemoveFromHand(id int) bool {
	for i, t := range p.Hand {
		if t.ID == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// HasOpenMeld reports whether any meld is not concealed — used by the
// "concealed hand" scoring bonus.
func (p *Player) HasOpenMeld() bool {
	for _, m := range p.Melds {
		if !m.IsConcealed() {
			return true
		}
	}
	return false
}
