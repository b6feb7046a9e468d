package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wehjee/brocs-mahjong/internal/mahjong"
)

// newRotationRoom builds a room whose seat winds are consistent with
// dealerSeat holding East — seat i holds wind (i - dealerSeat) mod 4, the
// same relative-offset rule dealt hands use (spec.md §3: "the dealer is the
// player holding seat wind east").
func newRotationRoom(dealerSeat int) *Room {
	gs := &mahjong.GameState{RoundWind: mahjong.East, RoundNumber: 1}
	for i := range gs.Players {
		wind := mahjong.Wind((i - dealerSeat + 4) % 4)
		gs.Players[i] = mahjong.NewPlayer("p", "", wind)
	}
	return &Room{game: gs, dealerSeat: dealerSeat}
}

// dealerHoldsEast asserts the room's own invariant: whichever seat
// r.dealerSeat names must be the seat currently holding East.
func dealerHoldsEast(t *testing.T, r *Room) {
	t.Helper()
	assert.Equal(t, mahjong.East, r.game.Players[r.dealerSeat].Seat)
}

func TestRotateDealerStaysWhenDealerWins(t *testing.T) {
	r := newRotationRoom(0)
	r.rotateDealer(true)

	assert.Equal(t, 0, r.dealerSeat)
	assert.Equal(t, 1, r.game.RoundNumber)
	assert.Equal(t, mahjong.East, r.game.RoundWind)
	dealerHoldsEast(t, r)
}

func TestRotateDealerAdvancesSeatWindsAndDealerOnNonDealerWin(t *testing.T) {
	r := newRotationRoom(0)
	r.rotateDealer(false)

	// every seat's wind advances one step: East->South, South->West, ...
	assert.Equal(t, mahjong.South, r.game.Players[0].Seat)
	assert.Equal(t, mahjong.West, r.game.Players[1].Seat)
	assert.Equal(t, mahjong.North, r.game.Players[2].Seat)
	assert.Equal(t, mahjong.East, r.game.Players[3].Seat)

	// the seat now holding East is whoever previously held North (seat 3),
	// not seat 0+1 — the dealer marker must track the wind, not just count up.
	assert.Equal(t, 3, r.dealerSeat)
	assert.Equal(t, 2, r.game.RoundNumber)
	assert.Equal(t, mahjong.East, r.game.RoundWind)
	dealerHoldsEast(t, r)
}

func TestRotateDealerAdvancesRoundWindAfterFourRounds(t *testing.T) {
	r := newRotationRoom(3)
	r.game.RoundNumber = 4
	r.rotateDealer(false)

	assert.Equal(t, 1, r.game.RoundNumber)
	assert.Equal(t, mahjong.South, r.game.RoundWind)
	assert.Equal(t, 2, r.dealerSeat)
	dealerHoldsEast(t, r)
}

func TestRotateDealerOnDrawnHandAlwaysAdvances(t *testing.T) {
	// A wall-exhausted draw is treated as "dealer did not win" regardless of
	// which seat holds the dealer marker.
	r := newRotationRoom(2)
	r.rotateDealer(false)

	assert.Equal(t, 1, r.dealerSeat)
	assert.Equal(t, 2, r.game.RoundNumber)
	dealerHoldsEast(t, r)
}
