package room

import "github.com/wehjee/brocs-mahjong/internal/view"

// Pusher delivers outbound frames to connected clients. The transport layer
// implements it; Room never touches a network connection directly.
type Pusher interface {
	// Push sends an envelope to the human currently bound to seat, a no-op
	// if the seat has no live connection.
	Push(seat int, env view.Envelope)
	// PushLobby sends an envelope to every connection currently bound to a
	// seat (lobby room-state broadcasts use this).
	PushLobby(env view.Envelope)
}

func envelope(typ string, data any) view.Envelope {
	return view.Envelope{Type: typ, Data: data}
}

// broadcastGameState pushes the per-recipient projection to every connected
// human seat (spec.md §4.7).
func (r *Room) broadcastGameState() {
	for i := range r.game.Players {
		r.pusher.Push(i, envelope("game-state", view.GameStateMessage{State: view.Project(r.game, i)}))
	}
}

func (r *Room) broadcastGameStart() {
	for i := range r.game.Players {
		r.pusher.Push(i, envelope("game-start", view.GameStartMessage{State: view.Project(r.game, i)}))
	}
}

func (r *Room) broadcastRoomState() {
	r.pusher.PushLobby(envelope("room-state", view.RoomStateMessage{Room: r.clientRoom()}))
}

func (r *Room) sendYourTurn(seat int, phase view.TurnPhase, actions []view.ActionType) {
	r.pusher.Push(seat, envelope("your-turn", view.YourTurnMessage{Phase: phase, AvailableActions: actions}))
}

func (r *Room) sendClaimWindow(seat int, timeoutMillis int, actions []view.ActionType) {
	r.pusher.Push(seat, envelope("claim-window", view.ClaimWindowMessage{TimeoutMillis: timeoutMillis, AvailableActions: actions}))
}

func (r *Room) sendChiOptions(seat int, options [][]view.ClientTile) {
	r.pusher.Push(seat, envelope("chi-options", view.ChiOptionsMessage{Options: options}))
}

func (r *Room) sendError(seat int, message string) {
	r.pusher.Push(seat, envelope("error", view.ErrorMessage{Message: message}))
}

func (r *Room) broadcastRoundOver(winnerIndex *int, tai *view.ClientTaiResult, pay *view.ClientPaymentResult, message string) {
	for i := range r.game.Players {
		r.pusher.Push(i, envelope("round-over", view.RoundOverMessage{
			WinnerIndex:   winnerIndex,
			TaiResult:     tai,
			PaymentResult: pay,
			Message:       message,
		}))
	}
}

func (r *Room) broadcastLifecycle(msgType string, seat int) {
	for i := range r.game.Players {
		if i == seat {
			continue
		}
		r.pusher.Push(i, envelope(msgType, view.PlayerLifecycleMessage{PlayerIndex: seat}))
	}
}
