package room

import (
	"time"

	"github.com/wehjee/brocs-mahjong/internal/mahjong"
	"github.com/wehjee/brocs-mahjong/internal/view"
)

// handleDisconnect fires when the transport layer observes a closed
// connection it did not ask to close. A disconnect found mid-lobby just
// frees the seat; in-game it starts the disconnect grace window and hands
// the seat to the bot policy until the player reconnects; if grace expires
// first, the seat becomes permanently bot-owned (spec.md §4.6.4
// Reconnection).
func (r *Room) handleDisconnect(ev DisconnectEvent) {
	seat := r.seatOf(ev.ConnID)
	if seat < 0 {
		return
	}
	if r.phase == PhaseLobby {
		r.handleLeave(LeaveEvent{ConnID: ev.ConnID})
		return
	}

	p := r.game.Players[seat]
	if p.Connection != mahjong.HumanConnected {
		return
	}
	delete(r.connToSeat, ev.ConnID)
	p.Connection = mahjong.HumanDisconnected
	r.broadcastLifecycle("player-disconnected", seat)
	r.armGrace(seat)
	r.kickDisconnectedSeat(seat)
}

// armGrace (re)starts seat's disconnect-grace timer, invalidating any grace
// timer already running for that seat.
func (r *Room) armGrace(seat int) {
	r.reconnect.markGraceStart(seat, r.cfg.DisconnectGrace)
	r.graceGeneration[seat]++
	gen := r.graceGeneration[seat]
	if t, ok := r.graceTimers[seat]; ok {
		t.Stop()
	}
	r.graceTimers[seat] = time.AfterFunc(r.cfg.DisconnectGrace, func() {
		r.NotifyEvent(graceExpiredEvent{seat: seat, generation: gen})
	})
}

func (r *Room) handleGraceExpired(ev graceExpiredEvent) {
	if ev.generation != r.graceGeneration[ev.seat] {
		return
	}
	if r.phase == PhaseLobby || r.game == nil {
		return
	}
	p := r.game.Players[ev.seat]
	if p.Connection != mahjong.HumanDisconnected {
		return
	}
	p.Connection = mahjong.BotOwned
	r.reconnect.clearGrace(ev.seat)
	r.broadcastLifecycle("player-bot-converted", ev.seat)
	r.broadcastGameState()
	if r.allSeatsBotOwned() {
		r.Close()
	}
}

// convertSeatToBot is the permanent, immediate version of grace expiry —
// used for an explicit leave rather than a dropped connection.
func (r *Room) convertSeatToBot(seat int) {
	p := r.game.Players[seat]
	if p.Connection == mahjong.BotOwned {
		return
	}
	p.Connection = mahjong.BotOwned
	if t, ok := r.graceTimers[seat]; ok {
		t.Stop()
	}
	r.graceGeneration[seat]++
	r.reconnect.clearGrace(seat)
	r.broadcastLifecycle("player-bot-converted", seat)
	r.broadcastGameState()
	if r.allSeatsBotOwned() {
		r.Close()
		return
	}
	r.kickDisconnectedSeat(seat)
}

// kickDisconnectedSeat resolves whatever decision point a seat is currently
// blocking on, now that it is computer-controlled, so the table never
// stalls on a dropped connection.
func (r *Room) kickDisconnectedSeat(seat int) {
	switch r.phase {
	case PhasePlaying:
		if seat != r.game.CurrentPlayer {
			return
		}
		p := r.game.Players[seat]
		if len(p.Hand) == 13-mahjong.HandDeduction(p.Melds) {
			r.enterTurnNeedingDraw(seat)
		} else {
			r.evaluatePostDraw(seat)
		}
	case PhaseClaimWindow:
		if r.claim == nil {
			return
		}
		cand, ok := r.claim.candidates[seat]
		if !ok || cand.responded {
			return
		}
		// A disconnect mid-window is a pass, not a bot decision — unlike the
		// PhasePlaying case above, the seat isn't becoming bot-controlled for
		// pacing purposes, it just can't hold up everyone else's claim
		// window (spec.md §4.6.4).
		cand.response = &claimResponse{action: view.ActionPass}
		cand.responded = true
		if allClaimsResponded(r.claim) {
			r.resolveClaimWindow(r.claim)
		}
	}
}

func (r *Room) allSeatsBotOwned() bool {
	for _, p := range r.game.Players {
		if p.Connection != mahjong.BotOwned {
			return false
		}
	}
	return true
}

// reconnectSeat rebinds connID to seat, restoring a human connection in the
// lobby roster or on a live GameState, and cancels any grace timer running
// for that seat.
func (r *Room) reconnectSeat(seat int, connID string) {
	if t, ok := r.graceTimers[seat]; ok {
		t.Stop()
	}
	r.graceGeneration[seat]++
	r.reconnect.clearGrace(seat)
	r.connToSeat[connID] = seat

	if r.phase == PhaseLobby {
		r.roster[seat].connID = connID
		r.broadcastRoomState()
		return
	}

	p := r.game.Players[seat]
	p.Connection = mahjong.HumanConnected
	r.broadcastLifecycle("player-reconnected", seat)
	r.pusher.Push(seat, envelope("game-state", view.GameStateMessage{State: view.Project(r.game, seat)}))
	r.resendPromptIfActive(seat)
}

// resendPromptIfActive re-sends whatever prompt a reconnecting seat would
// have missed while disconnected, without forcing any new decision (a bot
// timer scheduled while the seat was disconnected simply no-ops once it
// fires, since isBotPlayer now reports false for this seat).
func (r *Room) resendPromptIfActive(seat int) {
	switch r.phase {
	case PhasePlaying:
		if seat != r.game.CurrentPlayer {
			return
		}
		p := r.game.Players[seat]
		if len(p.Hand) == 13-mahjong.HandDeduction(p.Melds) {
			r.sendYourTurn(seat, view.PhaseHumanNeedsDraw, []view.ActionType{view.ActionDraw})
			return
		}
		score := mahjong.Score(p, true, r.game.RoundWind)
		canWin := mahjong.CheckWin(p.Hand, p.Melds) && score.RawTai >= 1
		_, canKong := mahjong.CanSelfKong(p.Hand, p.Melds)
		actions := []view.ActionType{}
		if canWin {
			actions = append(actions, view.ActionWin)
		}
		if canKong {
			actions = append(actions, view.ActionKong)
		}
		actions = append(actions, view.ActionDiscard)
		r.sendYourTurn(seat, view.PhaseHumanNeedsDiscard, actions)
	case PhaseClaimWindow:
		if r.claim == nil {
			return
		}
		cand, ok := r.claim.candidates[seat]
		if !ok || cand.responded {
			return
		}
		r.sendClaimWindow(seat, int(r.cfg.ClaimWindowTimeout.Milliseconds()), claimActionsFor(cand))
		if len(cand.chiOptions) > 1 {
			r.sendChiOptions(seat, view.ChiOptionTiles(cand.chiOptions))
		}
	}
}
