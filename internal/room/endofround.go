package room

import (
	"fmt"

	"github.com/wehjee/brocs-mahjong/internal/mahjong"
	"github.com/wehjee/brocs-mahjong/internal/view"
)

// finishRound settles a completed hand's scoring and payments, broadcasts
// the outcome, and rotates the dealer (spec.md §4.5 Scorer, §4.6
// EndOfRound). discarderSeat is -1 for a self-draw win.
func (r *Room) finishRound(winnerSeat int, selfDraw bool, discarderSeat int) {
	winner := r.game.Players[winnerSeat]
	score := mahjong.Score(winner, selfDraw, r.game.RoundWind)
	pay := mahjong.Payments(winnerSeat, discarderSeat, selfDraw, score.BasePoints)
	for _, entry := range pay.Payments {
		r.game.Players[entry.PlayerIndex].Score += entry.Amount
	}

	r.phase = PhaseEndOfRound
	r.game.Phase = mahjong.PhaseFinished

	kind := "discards into"
	if selfDraw {
		kind = "self-draws"
	}
	message := fmt.Sprintf("%s %s a win worth %d tai", winner.Name, kind, score.TotalTai)

	winnerIdx := winnerSeat
	r.broadcastRoundOver(&winnerIdx, &view.ClientTaiResult{
		Entries:    score.Entries,
		TotalTai:   score.TotalTai,
		BasePoints: score.BasePoints,
	}, &view.ClientPaymentResult{
		Payments:    pay.Payments,
		WinnerTotal: pay.WinnerTotal,
	}, message)

	r.rotateDealer(winnerSeat == r.dealerSeat)
}

// endRoundDraw ends the hand with no winner because the wall ran dry
// (spec.md §4.6 EndOfRound: "wall exhausted"). A drawn hand is scored as
// the dealer not winning, so the dealer always rotates on a draw.
func (r *Room) endRoundDraw() {
	r.phase = PhaseEndOfRound
	r.game.Phase = mahjong.PhaseFinished
	r.broadcastRoundOver(nil, nil, nil, "the wall is exhausted — the hand is drawn")
	r.rotateDealer(false)
}

// handleNextRound deals a fresh hand on the first next-round message that
// arrives after round-over. Any connected seat may trigger it — the table
// has no separate "ready" gate for this transition.
func (r *Room) handleNextRound(ev NextRoundEvent) {
	if r.phase != PhaseEndOfRound {
		return
	}
	r.startNextHand()
}

func (r *Room) startNextHand() {
	ns := &mahjong.GameState{
		Wall:        mahjong.NewWall(r.rng),
		RoundWind:   r.game.RoundWind,
		RoundNumber: r.game.RoundNumber,
		Phase:       mahjong.PhaseWaiting,
	}
	for i, old := range r.game.Players {
		p := mahjong.NewPlayer(old.Name, old.Avatar, old.Seat)
		p.Score = old.Score
		p.Connection = old.Connection
		ns.Players[i] = p
	}

	dealt, ok := mahjong.DealAndReplaceBonuses(ns, r.dealerSeat)
	if !ok {
		r.game = dealt
		r.endRoundDraw()
		return
	}
	r.game = dealt
	r.beginHand()
}
