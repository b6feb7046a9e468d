package mahjong

// Phase is the coarse game-state phase (spec.md §3).
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePlaying
	PhaseFinished
)

// GameState is the full, authoritative state of one hand in progress. The
// applicators in moves.go never mutate their input; each returns a new
// GameState (or the input unchanged on invalid application). The room
// package also updates scores, seat winds, round counters, phase and
// connection status in place.
type GameState struct {
	Players [4]*Player
	Wall    *Wall

	CurrentPlayer int
	RoundWind     Wind
	RoundNumber   int
	TurnCounter   int
	Phase         Phase

	LastDiscard     Tile
	LastDiscarder   int
	HasLastDiscard  bool
}

// Clone deep-copies the state so an applicator can mutate its own copy
// freely without aliasing the caller's.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	for i, p := range gs.Players {
		if p != nil {
			cp.Players[i] = p.Clone()
		}
	}
	cp.Wall = gs.Wall.Clone()
	return &cp
}

// CurrentPlayerObj is a convenience accessor for the seat whose turn it is.
func (gs *GameState) CurrentPlayerObj() *Player {
	return gs.Players[gs.CurrentPlayer]
}

// AdjustedMeldCount3 returns 3*meldCount for seat i — the quantity subtracted
// from 13/14 in the hand-size invariant of spec.md §3.
func (gs *GameState) AdjustedMeldCount3(seat int) int {
	return 3 * MeldCount(gs.Players[seat].Melds)
}
