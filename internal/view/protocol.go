// Package view projects the authoritative mahjong.GameState down to the
// per-player view each client is allowed to see, and defines the JSON wire
// protocol framed over the transport connection (spec.md §4.7, §6).
package view

import "github.com/wehjee/brocs-mahjong/internal/mahjong"

// ActionType is the discriminator carried on a client "action" message.
type ActionType string

const (
	ActionDraw    ActionType = "draw"
	ActionDiscard ActionType = "discard"
	ActionChi     ActionType = "chi"
	ActionPong    ActionType = "pong"
	ActionKong    ActionType = "kong"
	ActionWin     ActionType = "win"
	ActionPass    ActionType = "pass"
)

// ClientMessage is the single shape every inbound frame is unmarshalled
// into; Type selects which of the optional fields are meaningful.
type ClientMessage struct {
	Type string `json:"type"`

	IsReady  *bool      `json:"isReady,omitempty"`
	Action   ActionType `json:"action,omitempty"`
	TileID   *int       `json:"tileId,omitempty"`
	ChiIndex *int       `json:"chiIndex,omitempty"`
}

// Envelope wraps every outbound frame with its type discriminator.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// RoomStateMessage reports lobby roster changes.
type RoomStateMessage struct {
	Room ClientRoom `json:"room"`
}

// JoinedMessage is sent once to a connection right after it is seated,
// carrying the reconnect token it must present to resume this seat
// (spec.md §4.6.4 Reconnection).
type JoinedMessage struct {
	SeatIndex      int    `json:"seatIndex"`
	ReconnectToken string `json:"reconnectToken"`
}

// GameStartMessage is sent once per player on lobby→playing.
type GameStartMessage struct {
	State ClientGameState `json:"state"`
}

// GameStateMessage is sent to every player after any state mutation.
type GameStateMessage struct {
	State ClientGameState `json:"state"`
}

// TurnPhase distinguishes what a human current-player must still do.
type TurnPhase string

const (
	PhaseHumanNeedsDraw    TurnPhase = "human-needs-draw"
	PhaseHumanNeedsDiscard TurnPhase = "human-needs-discard"
)

// YourTurnMessage notifies a human it is their turn.
type YourTurnMessage struct {
	Phase             TurnPhase    `json:"phase"`
	AvailableActions  []ActionType `json:"availableActions"`
}

// ClaimWindowMessage offers a non-discarder their legal claims.
type ClaimWindowMessage struct {
	TimeoutMillis    int          `json:"timeout"`
	AvailableActions []ActionType `json:"availableActions"`
}

// ChiOptionsMessage disambiguates a chi claim with more than one completion.
type ChiOptionsMessage struct {
	Options [][]ClientTile `json:"options"`
}

// RoundOverMessage reports the outcome of a finished hand.
type RoundOverMessage struct {
	WinnerIndex   *int                  `json:"winnerIndex,omitempty"`
	TaiResult     *ClientTaiResult      `json:"taiResult,omitempty"`
	PaymentResult *ClientPaymentResult  `json:"paymentResult,omitempty"`
	Message       string                `json:"message"`
}

// ClientTaiResult mirrors mahjong.ScoreResult for the wire.
type ClientTaiResult struct {
	Entries    []mahjong.TaiEntry `json:"entries"`
	TotalTai   int                `json:"totalTai"`
	BasePoints int                `json:"basePoints"`
}

// ClientPaymentResult mirrors mahjong.PaymentResult for the wire.
type ClientPaymentResult struct {
	Payments    []mahjong.PaymentEntry `json:"payments"`
	WinnerTotal int                    `json:"winnerTotal"`
}

// PlayerLifecycleMessage reports another player's connection lifecycle.
type PlayerLifecycleMessage struct {
	PlayerIndex int `json:"playerIndex"`
}

// ErrorMessage reports an invalid or rejected action.
type ErrorMessage struct {
	Message string `json:"message"`
}
