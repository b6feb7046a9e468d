// Package room implements the per-table state machine described in
// spec.md §4.6: Lobby, Playing, ClaimWindow and EndOfRound, arbitrating
// every mahjong.GameState transition and driving bot/reconnect policy.
// Each Room runs its own single-goroutine event loop; all mutation of its
// GameState happens on that goroutine (spec.md §5).
package room

import (
	"math/rand"
	"time"

	"github.com/wehjee/brocs-mahjong/internal/config"
	"github.com/wehjee/brocs-mahjong/internal/logging"
	"github.com/wehjee/brocs-mahjong/internal/mahjong"
	"github.com/wehjee/brocs-mahjong/internal/view"
)

// Phase is the room-level state (spec.md §4.6), distinct from
// mahjong.Phase, which only distinguishes waiting/playing/finished within a
// single hand.
type Phase int

const (
	PhaseLobby Phase = iota
	PhasePlaying
	PhaseClaimWindow
	PhaseEndOfRound
)

var botNames = [4]string{"Bot-East", "Bot-South", "Bot-West", "Bot-North"}

type rosterSeat struct {
	connID string
	name   string
	avatar string
	ready  bool
	filled bool
}

// Room is one table. All fields below connID/event-loop plumbing are owned
// exclusively by the event loop goroutine.
type Room struct {
	ID  string
	cfg config.Configuration

	pusher     Pusher
	rng        *rand.Rand
	reconnect  *reconnectStore

	phase       Phase
	roster      [4]*rosterSeat
	hostSeat    int
	seatsFilled int

	connToSeat map[string]int

	game       *mahjong.GameState
	dealerSeat int

	claim           *claimWindowState
	claimGeneration int64

	botGeneration int64
	botTimer      *time.Timer

	graceTimers     map[int]*time.Timer
	graceGeneration map[int]int64

	events chan Event
	done   chan struct{}
}

// NewRoom constructs an empty lobby and starts its event loop.
func NewRoom(id string, cfg config.Configuration, pusher Pusher, rng *rand.Rand) (*Room, error) {
	store, err := newReconnectStore(cfg.Secret, cfg.TTL)
	if err != nil {
		return nil, err
	}
	r := &Room{
		ID:              id,
		cfg:             cfg,
		pusher:          pusher,
		rng:             rng,
		reconnect:       store,
		hostSeat:        -1,
		connToSeat:      make(map[string]int),
		graceTimers:     make(map[int]*time.Timer),
		graceGeneration: make(map[int]int64),
		events:          make(chan Event, 256),
		done:            make(chan struct{}),
	}
	for i := range r.roster {
		r.roster[i] = &rosterSeat{}
	}
	go r.actorLoop()
	return r, nil
}

// NotifyEvent posts an event onto the room's single logical thread. It
// blocks until the room accepts it or the room has shut down.
func (r *Room) NotifyEvent(e Event) {
	select {
	case r.events <- e:
	case <-r.done:
	}
}

// Close terminates the event loop and releases the reconnect-token cache.
func (r *Room) Close() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
	r.reconnect.Close()
}

func (r *Room) actorLoop() {
	for {
		select {
		case <-r.done:
			return
		case e := <-r.events:
			r.dispatch(e)
		}
	}
}

func (r *Room) dispatch(e Event) {
	switch ev := e.(type) {
	case JoinEvent:
		r.handleJoin(ev)
	case ReadyEvent:
		r.handleReady(ev)
	case StartGameEvent:
		r.handleStartGame(ev)
	case ActionEvent:
		r.handleAction(ev)
	case NextRoundEvent:
		r.handleNextRound(ev)
	case LeaveEvent:
		r.handleLeave(ev)
	case DisconnectEvent:
		r.handleDisconnect(ev)
	case claimTimeoutEvent:
		r.handleClaimTimeout(ev)
	case botActionEvent:
		r.handleBotAction(ev)
	case graceExpiredEvent:
		r.handleGraceExpired(ev)
	default:
		logging.Warn("room %s: unknown event %T", r.ID, e)
	}
}

func (r *Room) clientRoom() view.ClientRoom {
	cr := view.ClientRoom{}
	for i, s := range r.roster {
		if !s.filled {
			continue
		}
		cr.Roster = append(cr.Roster, view.ClientRosterEntry{
			SeatIndex: i,
			Name:      s.name,
			Avatar:    s.avatar,
			Ready:     s.ready,
			IsHost:    i == r.hostSeat,
		})
	}
	return cr
}

// seatOf resolves a connID to its seat, or -1 if unbound.
func (r *Room) seatOf(connID string) int {
	if s, ok := r.connToSeat[connID]; ok {
		return s
	}
	return -1
}
