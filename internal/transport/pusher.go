package transport

import (
	"sync"

	"github.com/wehjee/brocs-mahjong/internal/view"
)

// roomPusher is the room.Pusher for one Room: it tracks which live
// *Connection, if any, is currently bound to each seat and fans frames out
// to it. Room never touches a *websocket.Conn directly (spec.md §4.6).
type roomPusher struct {
	mu    sync.RWMutex
	seats map[int]*Connection
}

func newRoomPusher() *roomPusher {
	return &roomPusher{seats: make(map[int]*Connection)}
}

func (p *roomPusher) bind(seat int, c *Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seats[seat] = c
}

// unbind removes c from seat only if it is still the seat's current
// connection — a reconnect may have already replaced it with a newer one by
// the time the old connection's pump notices it's closed.
func (p *roomPusher) unbind(seat int, c *Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seats[seat] == c {
		delete(p.seats, seat)
	}
}

func (p *roomPusher) Push(seat int, env view.Envelope) {
	p.mu.RLock()
	c, ok := p.seats[seat]
	p.mu.RUnlock()
	if !ok {
		return
	}
	c.Send(env)
}

func (p *roomPusher) PushLobby(env view.Envelope) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.seats {
		c.Send(env)
	}
}
