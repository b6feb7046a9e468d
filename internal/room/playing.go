package room

import (
	"time"

	"github.com/wehjee/brocs-mahjong/internal/mahjong"
	"github.com/wehjee/brocs-mahjong/internal/view"
)

// isBotPlayer reports whether seat's decisions should be made by the bot
// policy rather than waited on from a client — true for a bot-filled seat
// and for a human seat currently inside its disconnect grace window, so a
// dropped connection never stalls the table (spec.md §4.6 Reconnection).
func isBotPlayer(p *mahjong.Player) bool {
	return p.Connection != mahjong.HumanConnected
}

// beginHand starts Playing with the dealer already holding 14 tiles
// (spec.md §4.6 Playing) — the dealer skips the draw step entirely.
func (r *Room) beginHand() {
	r.phase = PhasePlaying
	r.broadcastGameStart()
	r.evaluatePostDraw(r.dealerSeat)
}

// enterTurnNeedingDraw starts a turn for seat, who has not yet drawn.
func (r *Room) enterTurnNeedingDraw(seat int) {
	p := r.game.Players[seat]
	if isBotPlayer(p) {
		r.scheduleBotAction()
		return
	}
	r.sendYourTurn(seat, view.PhaseHumanNeedsDraw, []view.ActionType{view.ActionDraw})
}

// scheduleBotAction arms a single-slot timer: a newer schedule invalidates
// an older one by generation (spec.md §5).
func (r *Room) scheduleBotAction() {
	r.botGeneration++
	gen := r.botGeneration
	if r.botTimer != nil {
		r.botTimer.Stop()
	}
	r.botTimer = time.AfterFunc(r.cfg.BotActionDelay, func() {
		r.NotifyEvent(botActionEvent{generation: gen})
	})
}

func (r *Room) handleBotAction(ev botActionEvent) {
	if ev.generation != r.botGeneration || r.phase != PhasePlaying {
		return
	}
	seat := r.game.CurrentPlayer
	p := r.game.Players[seat]
	if !isBotPlayer(p) {
		return
	}
	ns, ok := mahjong.Draw(r.game, seat)
	if !ok {
		r.endRoundDraw()
		return
	}
	r.game = ns
	r.broadcastGameState()
	r.evaluatePostDraw(seat)
}

// evaluatePostDraw runs the post-draw decision point (spec.md §4.6 Playing):
// self-draw win, then self-kong, then discard. Bots resolve the whole chain
// synchronously; humans are prompted and the room waits for their action.
func (r *Room) evaluatePostDraw(seat int) {
	p := r.game.Players[seat]
	score := mahjong.Score(p, true, r.game.RoundWind)
	canWin := mahjong.CheckWin(p.Hand, p.Melds) && score.RawTai >= 1
	kongOpt, canKong := mahjong.CanSelfKong(p.Hand, p.Melds)

	if isBotPlayer(p) {
		if canWin && mahjong.DecideWin(true, score.RawTai) {
			r.finishRound(seat, true, -1)
			return
		}
		if canKong && mahjong.DecideSelfKong(true) {
			if r.attemptSelfKong(seat, kongOpt) {
				return
			}
		}
		r.botDiscard(seat)
		return
	}

	actions := []view.ActionType{}
	if canWin {
		actions = append(actions, view.ActionWin)
	}
	if canKong {
		actions = append(actions, view.ActionKong)
	}
	actions = append(actions, view.ActionDiscard)
	r.sendYourTurn(seat, view.PhaseHumanNeedsDiscard, actions)
}

// promptDiscardOnly is the post-pong/chi decision point: the claimer did not
// draw, so no win/self-kong evaluation applies — only discard.
func (r *Room) promptDiscardOnly(seat int) {
	if isBotPlayer(r.game.Players[seat]) {
		r.botDiscard(seat)
		return
	}
	r.sendYourTurn(seat, view.PhaseHumanNeedsDiscard, []view.ActionType{view.ActionDiscard})
}

func (r *Room) botDiscard(seat int) {
	p := r.game.Players[seat]
	tile, ok := mahjong.ChooseDiscard(p.Hand)
	if !ok {
		r.endRoundDraw()
		return
	}
	r.applyDiscard(seat, tile.ID)
}

func (r *Room) applyDiscard(seat int, tileID int) bool {
	ns, ok := mahjong.Discard(r.game, seat, tileID)
	if !ok {
		return false
	}
	r.game = ns
	r.broadcastGameState()
	r.openClaimWindow(seat)
	return true
}

// attemptSelfKong resolves a self-kong declaration, including the
// robbing-the-kong interruption for a promoted pong (spec.md §4.6 Playing).
// It returns true once the round's control flow has been fully handled
// (either the kong applied and post-draw evaluation resumed, or the kong was
// robbed and the round ended).
func (r *Room) attemptSelfKong(seat int, opt mahjong.SelfKongOption) bool {
	if opt.Kind == mahjong.SelfKongPromote && r.tryRobKong(seat, opt) {
		return true
	}

	var ns *mahjong.GameState
	var ok bool
	if opt.Kind == mahjong.SelfKongPromote {
		ns, ok = mahjong.ApplySelfKongPromote(r.game, seat, opt.HandTiles[0], opt.MeldIndex)
	} else {
		var four [4]mahjong.Tile
		copy(four[:], opt.HandTiles)
		ns, ok = mahjong.ApplySelfKongConcealed(r.game, seat, four)
	}
	if !ok {
		return false
	}
	r.game = ns
	r.broadcastGameState()
	r.evaluatePostDraw(seat)
	return true
}

// tryRobKong checks whether any other seat can complete a win on the tile
// being promoted into a kong. If so, that claim takes priority over the
// kong entirely and the round ends with them winning off seat as if it were
// a discard (spec.md §4.6 Playing).
func (r *Room) tryRobKong(seat int, opt mahjong.SelfKongOption) bool {
	robbedTile := mahjong.Tile{ID: -1, Def: opt.Def}
	var candidates []int
	for i, p := range r.game.Players {
		if i == seat {
			continue
		}
		if !mahjong.CheckWinWithTile(p.Hand, p.Melds, robbedTile) {
			continue
		}
		score := mahjong.Score(p, false, r.game.RoundWind)
		if score.RawTai >= 1 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	winner := closestInTurnOrder(seat, candidates)
	r.finishRound(winner, false, seat)
	return true
}

// handleAction routes an inbound player action to whichever phase is
// listening for one — a stray action for the wrong phase is silently
// ignored (spec.md §7: "Illegal move: action not in the current
// availableActions — ignored").
func (r *Room) handleAction(ev ActionEvent) {
	seat := r.seatOf(ev.ConnID)
	if seat < 0 {
		return
	}
	switch r.phase {
	case PhasePlaying:
		r.handlePlayingAction(seat, ev)
	case PhaseClaimWindow:
		r.handleClaimAction(seat, ev)
	}
}

// handlePlayingAction handles draw/discard/win/kong declarations made by the
// current player during their own turn. Any action from a seat that is not
// CurrentPlayer is out-of-turn and ignored (spec.md §7).
func (r *Room) handlePlayingAction(seat int, ev ActionEvent) {
	if seat != r.game.CurrentPlayer {
		return
	}
	p := r.game.Players[seat]

	switch ev.Action {
	case view.ActionDraw:
		if len(p.Hand) != 13-mahjong.HandDeduction(p.Melds) {
			return
		}
		ns, ok := mahjong.Draw(r.game, seat)
		if !ok {
			r.endRoundDraw()
			return
		}
		r.game = ns
		r.broadcastGameState()
		r.evaluatePostDraw(seat)

	case view.ActionDiscard:
		if ev.TileID == nil || len(p.Hand) != 14-mahjong.HandDeduction(p.Melds) {
			return
		}
		if !r.applyDiscard(seat, *ev.TileID) {
			r.sendError(seat, "illegal discard")
		}

	case view.ActionWin:
		if !mahjong.CheckWin(p.Hand, p.Melds) {
			return
		}
		score := mahjong.Score(p, true, r.game.RoundWind)
		if score.RawTai < 1 {
			r.sendError(seat, "Not enough tai to win!")
			return
		}
		r.finishRound(seat, true, -1)

	case view.ActionKong:
		opt, ok := mahjong.CanSelfKong(p.Hand, p.Melds)
		if !ok {
			r.sendError(seat, "no self-kong available")
			return
		}
		r.attemptSelfKong(seat, opt)
	}
}

// closestInTurnOrder picks, among candidates, the one nearest to from in
// turn order (the next seat after from wins priority ties — spec.md §4.6
// ClaimWindow rule 1, reused here for robbing-the-kong resolution).
func closestInTurnOrder(from int, candidates []int) int {
	best := candidates[0]
	bestDist := (best - from + 4) % 4
	for _, c := range candidates[1:] {
		d := (c - from + 4) % 4
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
