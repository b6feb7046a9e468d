package room

import (
	"time"

	"github.com/wehjee/brocs-mahjong/internal/mahjong"
	"github.com/wehjee/brocs-mahjong/internal/view"
)

// claimResponse is what a seat decided to do with an open claim window.
type claimResponse struct {
	action   view.ActionType
	chiIndex int
}

// claimCandidate is one non-discarder seat's legal claims on the current
// last discard, together with whatever they've answered so far (spec.md
// §4.6 ClaimWindow).
type claimCandidate struct {
	seat       int
	canWin     bool
	winTai     int
	canKong    bool
	canPong    bool
	chiOptions []mahjong.ChiOption
	responded  bool
	response   *claimResponse
}

// claimWindowState tracks one discard's open claim window across however
// many seats have a legal response, until every one of them has answered
// or the window times out.
type claimWindowState struct {
	discarderSeat int
	discardTile   mahjong.Tile
	candidates    map[int]*claimCandidate
}

func claimActionsFor(cand *claimCandidate) []view.ActionType {
	var actions []view.ActionType
	if cand.canWin {
		actions = append(actions, view.ActionWin)
	}
	if cand.canKong {
		actions = append(actions, view.ActionKong)
	}
	if cand.canPong {
		actions = append(actions, view.ActionPong)
	}
	if len(cand.chiOptions) > 0 {
		actions = append(actions, view.ActionChi)
	}
	actions = append(actions, view.ActionPass)
	return actions
}

// openClaimWindow computes every other seat's legal claims on the discard
// seat just made. A seat with no legal claim is never tracked — it is an
// implicit pass, exactly as if it had responded instantly (spec.md §4.6
// ClaimWindow). If nobody has any legal claim at all, the round advances
// immediately with no window ever shown to a client.
func (r *Room) openClaimWindow(discarderSeat int) {
	tile := r.game.LastDiscard
	state := &claimWindowState{discarderSeat: discarderSeat, discardTile: tile, candidates: map[int]*claimCandidate{}}

	for i, p := range r.game.Players {
		if i == discarderSeat {
			continue
		}
		cand := &claimCandidate{seat: i}
		if _, ok := mahjong.CanKong(p.Hand, tile.Def); ok {
			cand.canKong = true
		}
		if _, ok := mahjong.CanPong(p.Hand, tile.Def); ok {
			cand.canPong = true
		}
		cand.chiOptions = mahjong.CanAllChi(p.Hand, tile.Def, i, discarderSeat)
		if mahjong.CheckWinWithTile(p.Hand, p.Melds, tile) {
			score := mahjong.Score(p, false, r.game.RoundWind)
			if score.RawTai >= 1 {
				cand.canWin = true
				cand.winTai = score.RawTai
			}
		}
		if cand.canWin || cand.canKong || cand.canPong || len(cand.chiOptions) > 0 {
			state.candidates[i] = cand
		}
	}

	if len(state.candidates) == 0 {
		r.advanceAfterNoClaim()
		return
	}

	r.phase = PhaseClaimWindow
	r.claim = state
	r.claimGeneration++
	gen := r.claimGeneration

	anyHumanPending := false
	for seat, cand := range state.candidates {
		p := r.game.Players[seat]
		if isBotPlayer(p) {
			r.autoResolveBotClaim(p, tile, cand)
			continue
		}
		anyHumanPending = true
		r.sendClaimWindow(seat, int(r.cfg.ClaimWindowTimeout.Milliseconds()), claimActionsFor(cand))
		if len(cand.chiOptions) > 1 {
			r.sendChiOptions(seat, view.ChiOptionTiles(cand.chiOptions))
		}
	}

	if !anyHumanPending {
		r.resolveClaimWindow(state)
		return
	}
	time.AfterFunc(r.cfg.ClaimWindowTimeout, func() {
		r.NotifyEvent(claimTimeoutEvent{generation: gen})
	})
}

// autoResolveBotClaim decides and records a bot seat's response immediately,
// in the same priority order a human is offered actions in.
func (r *Room) autoResolveBotClaim(p *mahjong.Player, tile mahjong.Tile, cand *claimCandidate) {
	switch {
	case cand.canWin && mahjong.DecideWin(true, cand.winTai):
		cand.response = &claimResponse{action: view.ActionWin}
	case cand.canKong && mahjong.DecideKong(true):
		cand.response = &claimResponse{action: view.ActionKong}
	case cand.canPong && mahjong.DecidePong(tile.Def, p.Seat, r.rng):
		cand.response = &claimResponse{action: view.ActionPong}
	case len(cand.chiOptions) > 0 && mahjong.DecideChi(r.rng):
		cand.response = &claimResponse{action: view.ActionChi, chiIndex: 0}
	default:
		cand.response = &claimResponse{action: view.ActionPass}
	}
	cand.responded = true
}

func allClaimsResponded(state *claimWindowState) bool {
	for _, c := range state.candidates {
		if !c.responded {
			return false
		}
	}
	return true
}

// handleClaimAction records a human's answer to an open claim window and
// resolves the window once every tracked seat has responded.
func (r *Room) handleClaimAction(seat int, ev ActionEvent) {
	if r.claim == nil {
		return
	}
	cand, ok := r.claim.candidates[seat]
	if !ok || cand.responded {
		return
	}

	switch ev.Action {
	case view.ActionWin:
		if !cand.canWin {
			return
		}
		cand.response = &claimResponse{action: view.ActionWin}
	case view.ActionKong:
		if !cand.canKong {
			return
		}
		cand.response = &claimResponse{action: view.ActionKong}
	case view.ActionPong:
		if !cand.canPong {
			return
		}
		cand.response = &claimResponse{action: view.ActionPong}
	case view.ActionChi:
		idx := 0
		if ev.ChiIndex != nil {
			idx = *ev.ChiIndex
		}
		if idx < 0 || idx >= len(cand.chiOptions) {
			return
		}
		cand.response = &claimResponse{action: view.ActionChi, chiIndex: idx}
	case view.ActionPass:
		cand.response = &claimResponse{action: view.ActionPass}
	default:
		return
	}
	cand.responded = true

	if allClaimsResponded(r.claim) {
		r.resolveClaimWindow(r.claim)
	}
}

func (r *Room) handleClaimTimeout(ev claimTimeoutEvent) {
	if ev.generation != r.claimGeneration || r.claim == nil {
		return
	}
	for _, cand := range r.claim.candidates {
		if !cand.responded {
			cand.response = &claimResponse{action: view.ActionPass}
			cand.responded = true
		}
	}
	r.resolveClaimWindow(r.claim)
}

// resolveClaimWindow applies priority resolution — win beats kong beats
// pong beats chi, win ties broken by distance from the discarder in turn
// order (spec.md §4.6 ClaimWindow) — and transitions back to Playing (or
// ends the round, on a win).
func (r *Room) resolveClaimWindow(state *claimWindowState) {
	r.claim = nil

	var winners []int
	kongSeat, pongSeat, chiSeat := -1, -1, -1
	for seat, cand := range state.candidates {
		if cand.response == nil {
			continue
		}
		switch cand.response.action {
		case view.ActionWin:
			winners = append(winners, seat)
		case view.ActionKong:
			if kongSeat == -1 {
				kongSeat = seat
			}
		case view.ActionPong:
			if pongSeat == -1 {
				pongSeat = seat
			}
		case view.ActionChi:
			if chiSeat == -1 {
				chiSeat = seat
			}
		}
	}

	if len(winners) > 0 {
		winner := closestInTurnOrder(state.discarderSeat, winners)
		r.finishRound(winner, false, state.discarderSeat)
		return
	}

	if kongSeat != -1 {
		p := r.game.Players[kongSeat]
		if handTiles, ok := mahjong.CanKong(p.Hand, state.discardTile.Def); ok {
			if ns, ok := mahjong.ApplyKong(r.game, kongSeat, handTiles); ok {
				r.game = ns
				r.phase = PhasePlaying
				r.broadcastGameState()
				r.evaluatePostDraw(kongSeat)
				return
			}
		}
	}

	if pongSeat != -1 {
		p := r.game.Players[pongSeat]
		if handTiles, ok := mahjong.CanPong(p.Hand, state.discardTile.Def); ok {
			if ns, ok := mahjong.ApplyPong(r.game, pongSeat, handTiles); ok {
				r.game = ns
				r.phase = PhasePlaying
				r.broadcastGameState()
				r.promptDiscardOnly(pongSeat)
				return
			}
		}
	}

	if chiSeat != -1 {
		cand := state.candidates[chiSeat]
		idx := 0
		if cand.response != nil {
			idx = cand.response.chiIndex
		}
		if idx >= 0 && idx < len(cand.chiOptions) {
			opt := cand.chiOptions[idx]
			if ns, ok := mahjong.ApplyChi(r.game, chiSeat, opt.HandTiles); ok {
				r.game = ns
				r.phase = PhasePlaying
				r.broadcastGameState()
				r.promptDiscardOnly(chiSeat)
				return
			}
		}
	}

	r.advanceAfterNoClaim()
}

// advanceAfterNoClaim is reached both when nobody had any legal claim at
// all and when every tracked candidate passed.
func (r *Room) advanceAfterNoClaim() {
	r.phase = PhasePlaying
	r.game = mahjong.AdvanceTurn(r.game)
	r.broadcastGameState()
	r.enterTurnNeedingDraw(r.game.CurrentPlayer)
}
