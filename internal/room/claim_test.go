package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wehjee/brocs-mahjong/internal/view"
)

func TestClosestInTurnOrderPicksNearestSeatAfterDiscarder(t *testing.T) {
	cases := []struct {
		name       string
		from       int
		candidates []int
		want       int
	}{
		{"single candidate wins outright", 0, []int{2}, 2},
		{"immediate next seat beats one further away", 1, []int{3, 2}, 2},
		{"wraps around past seat 3 back to seat 0", 3, []int{1, 0}, 0},
		{"all three other seats, nearest in turn order wins", 0, []int{1, 2, 3}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, closestInTurnOrder(tc.from, tc.candidates))
		})
	}
}

func TestClaimActionsForOrdersWinKongPongThenPass(t *testing.T) {
	cand := &claimCandidate{canWin: true, canKong: true, canPong: true}
	actions := claimActionsFor(cand)
	assert.Equal(t, []view.ActionType{view.ActionWin, view.ActionKong, view.ActionPong, view.ActionPass}, actions)
}

func TestClaimActionsForOmitsUnavailableClaims(t *testing.T) {
	cand := &claimCandidate{canPong: true}
	actions := claimActionsFor(cand)
	assert.Equal(t, []view.ActionType{view.ActionPong, view.ActionPass}, actions)
}

func TestAllClaimsRespondedRequiresEveryCandidate(t *testing.T) {
	state := &claimWindowState{candidates: map[int]*claimCandidate{
		1: {responded: true},
		2: {responded: false},
	}}
	assert.False(t, allClaimsResponded(state))

	state.candidates[2].responded = true
	assert.True(t, allClaimsResponded(state))
}
