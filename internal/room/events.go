package room

import "github.com/wehjee/brocs-mahjong/internal/view"

// Event is one item posted onto a Room's single event loop (spec.md §5: all
// state mutation is serialized on one logical thread per room).
type Event interface{ kind() string }

// JoinResult answers a Join or Reconnect request. Token is the reconnect
// token the client should hold onto and present on a future reconnect
// (spec.md §4.6.4); it is empty on an error.
type JoinResult struct {
	SeatIndex int
	Token     string
	Err       error
}

type JoinEvent struct {
	ConnID         string
	Name           string
	Avatar         string
	ReconnectToken string
	Reply          chan JoinResult
}

func (JoinEvent) kind() string { return "join" }

type ReadyEvent struct {
	ConnID  string
	IsReady bool
}

func (ReadyEvent) kind() string { return "ready" }

type StartGameEvent struct {
	ConnID string
}

func (StartGameEvent) kind() string { return "start-game" }

type ActionEvent struct {
	ConnID   string
	Action   view.ActionType
	TileID   *int
	ChiIndex *int
}

func (ActionEvent) kind() string { return "action" }

type NextRoundEvent struct {
	ConnID string
}

func (NextRoundEvent) kind() string { return "next-round" }

type LeaveEvent struct {
	ConnID string
}

func (LeaveEvent) kind() string { return "leave" }

// DisconnectEvent fires when the transport layer observes a closed
// connection (not a voluntary "leave").
type DisconnectEvent struct {
	ConnID string
}

func (DisconnectEvent) kind() string { return "disconnect" }

// claimTimeoutEvent, botActionEvent and graceExpiredEvent are internal timer
// callbacks. Each carries the generation it was scheduled under so a
// superseded timer firing late is a no-op (spec.md §5: "newer schedule
// cancels older").
type claimTimeoutEvent struct{ generation int64 }

func (claimTimeoutEvent) kind() string { return "claim-timeout" }

type botActionEvent struct{ generation int64 }

func (botActionEvent) kind() string { return "bot-action" }

type graceExpiredEvent struct {
	seat       int
	generation int64
}

func (graceExpiredEvent) kind() string { return "grace-expired" }
