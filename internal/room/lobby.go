package room

import (
	"github.com/wehjee/brocs-mahjong/internal/logging"
	"github.com/wehjee/brocs-mahjong/internal/mahjong"
)

// handleJoin seats a fresh connection, or — when a reconnect token is
// present — rebinds an existing seat to a new connection (spec.md §4.6
// Lobby, §4.6.4 Reconnection).
func (r *Room) handleJoin(ev JoinEvent) {
	reply := func(res JoinResult) {
		if ev.Reply != nil {
			ev.Reply <- res
		}
	}

	if ev.ReconnectToken != "" {
		seat, err := r.reconnect.verify(r.ID, ev.ReconnectToken)
		if err != nil {
			reply(JoinResult{Err: newUnknownTokenError()})
			return
		}
		r.reconnectSeat(seat, ev.ConnID)
		reply(JoinResult{SeatIndex: seat, Token: ev.ReconnectToken})
		return
	}

	if r.phase != PhaseLobby {
		reply(JoinResult{Err: newGameInProgressError()})
		return
	}
	if r.seatsFilled >= 4 {
		reply(JoinResult{Err: newRoomFullError()})
		return
	}

	seat := -1
	for i, s := range r.roster {
		if !s.filled {
			seat = i
			break
		}
	}
	r.roster[seat] = &rosterSeat{connID: ev.ConnID, name: ev.Name, avatar: ev.Avatar, filled: true}
	r.connToSeat[ev.ConnID] = seat
	r.seatsFilled++
	if r.hostSeat == -1 {
		r.hostSeat = seat
	}

	token, err := r.reconnect.issue(r.ID, seat)
	if err != nil {
		logging.Error("room %s: issuing reconnect token for seat %d: %v", r.ID, seat, err)
	}
	r.broadcastRoomState()
	reply(JoinResult{SeatIndex: seat, Token: token})
}

func (r *Room) handleReady(ev ReadyEvent) {
	if r.phase != PhaseLobby {
		return
	}
	seat := r.seatOf(ev.ConnID)
	if seat < 0 {
		return
	}
	r.roster[seat].ready = ev.IsReady
	r.broadcastRoomState()
}

var seatWinds = [4]mahjong.Wind{mahjong.East, mahjong.South, mahjong.West, mahjong.North}

// handleStartGame is host-only. Any seat still vacant is filled with a bot
// (spec.md §4.6 Lobby: "host may start with bots filling empty seats").
func (r *Room) handleStartGame(ev StartGameEvent) {
	if r.phase != PhaseLobby {
		return
	}
	if r.seatOf(ev.ConnID) != r.hostSeat {
		return
	}

	for i, s := range r.roster {
		if !s.filled {
			s.filled = true
			s.name = botNames[i]
			s.ready = true
		}
	}

	r.dealerSeat = 0
	gs := &mahjong.GameState{Wall: mahjong.NewWall(r.rng), RoundWind: mahjong.East, RoundNumber: 1, Phase: mahjong.PhaseWaiting}
	for i, s := range r.roster {
		p := mahjong.NewPlayer(s.name, s.avatar, seatWinds[i])
		if s.connID == "" {
			p.Connection = mahjong.BotOwned
		}
		gs.Players[i] = p
	}

	dealt, ok := mahjong.DealAndReplaceBonuses(gs, r.dealerSeat)
	r.game = dealt
	if !ok {
		r.endRoundDraw()
		return
	}
	r.beginHand()
}

// handleLeave is a voluntary departure: in the lobby it frees the seat
// entirely, in-game it permanently converts the seat to a bot with no
// disconnect grace (spec.md §4.6 Lobby/Reconnection).
func (r *Room) handleLeave(ev LeaveEvent) {
	seat := r.seatOf(ev.ConnID)
	if seat < 0 {
		return
	}
	delete(r.connToSeat, ev.ConnID)

	if r.phase == PhaseLobby {
		r.roster[seat] = &rosterSeat{}
		r.seatsFilled--
		if r.hostSeat == seat {
			r.hostSeat = -1
			for i, s := range r.roster {
				if s.filled {
					r.hostSeat = i
					break
				}
			}
		}
		r.broadcastRoomState()
		return
	}

	r.convertSeatToBot(seat)
}
