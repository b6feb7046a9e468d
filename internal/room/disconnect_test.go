package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wehjee/brocs-mahjong/internal/mahjong"
	"github.com/wehjee/brocs-mahjong/internal/view"
)

// fakePusher records every envelope pushed to it, standing in for the
// transport layer's real room.Pusher in tests.
type fakePusher struct {
	bySeat map[int][]view.Envelope
}

func newFakePusher() *fakePusher {
	return &fakePusher{bySeat: make(map[int][]view.Envelope)}
}

func (f *fakePusher) Push(seat int, env view.Envelope) {
	f.bySeat[seat] = append(f.bySeat[seat], env)
}

func (f *fakePusher) PushLobby(env view.Envelope) {
	for seat := range f.bySeat {
		f.bySeat[seat] = append(f.bySeat[seat], env)
	}
}

func newClaimWindowRoom(pusher *fakePusher) *Room {
	gs := &mahjong.GameState{RoundWind: mahjong.East, RoundNumber: 1}
	winds := [4]mahjong.Wind{mahjong.East, mahjong.South, mahjong.West, mahjong.North}
	for i := range gs.Players {
		gs.Players[i] = mahjong.NewPlayer("p", "", winds[i])
	}
	return &Room{game: gs, phase: PhaseClaimWindow, pusher: pusher}
}

// TestKickDisconnectedSeatPassesRatherThanActingForSeat is a direct
// regression test for the bug where a human disconnecting mid-claim-window
// had the bot policy decide on their behalf. The candidate is rigged so the
// bot policy would certainly have claimed Win (high tai, CheckWin-strength
// threshold) — if kickDisconnectedSeat is correctly implemented, the
// response must still come back Pass.
func TestKickDisconnectedSeatPassesRatherThanActingForSeat(t *testing.T) {
	r := newClaimWindowRoom(newFakePusher())
	pending := &claimCandidate{seat: 2} // keeps the window from resolving
	r.claim = &claimWindowState{
		discarderSeat: 0,
		candidates: map[int]*claimCandidate{
			1: {seat: 1, canWin: true, winTai: 10, canKong: true, canPong: true},
			2: pending,
		},
	}

	r.kickDisconnectedSeat(1)

	cand := r.claim.candidates[1]
	assert.True(t, cand.responded)
	assert.NotNil(t, cand.response)
	assert.Equal(t, view.ActionPass, cand.response.action)
	// the window must not have resolved yet — seat 2 never answered.
	assert.False(t, pending.responded)
}

func TestKickDisconnectedSeatIgnoresSeatWithNoPendingClaim(t *testing.T) {
	r := newClaimWindowRoom(newFakePusher())
	r.claim = &claimWindowState{candidates: map[int]*claimCandidate{}}

	// must not panic, must not create a candidate out of thin air.
	r.kickDisconnectedSeat(1)

	_, ok := r.claim.candidates[1]
	assert.False(t, ok)
}

func TestResendPromptIfActiveSendsChiOptionsWhenAmbiguous(t *testing.T) {
	pusher := newFakePusher()
	r := newClaimWindowRoom(pusher)
	cand := &claimCandidate{
		seat: 1,
		chiOptions: []mahjong.ChiOption{
			{HandTiles: [2]mahjong.Tile{{ID: 1}, {ID: 2}}},
			{HandTiles: [2]mahjong.Tile{{ID: 3}, {ID: 4}}},
		},
	}
	r.claim = &claimWindowState{candidates: map[int]*claimCandidate{1: cand}}

	r.resendPromptIfActive(1)

	envelopes := pusher.bySeat[1]
	assert.Len(t, envelopes, 2)
	assert.Equal(t, "claim-window", envelopes[0].Type)
	assert.Equal(t, "chi-options", envelopes[1].Type)
}

func TestResendPromptIfActiveOmitsChiOptionsWhenUnambiguous(t *testing.T) {
	pusher := newFakePusher()
	r := newClaimWindowRoom(pusher)
	cand := &claimCandidate{
		seat:       1,
		chiOptions: []mahjong.ChiOption{{HandTiles: [2]mahjong.Tile{{ID: 1}, {ID: 2}}}},
	}
	r.claim = &claimWindowState{candidates: map[int]*claimCandidate{1: cand}}

	r.resendPromptIfActive(1)

	envelopes := pusher.bySeat[1]
	assert.Len(t, envelopes, 1)
	assert.Equal(t, "claim-window", envelopes[0].Type)
}
