// Package transport adapts the teacher's WebSocket connection-pump pattern
// (framework/conn.LongConnection) to frame room.Room's JSON protocol, and
// exposes a Hub that lazily creates a Room on first contact (spec.md §1: room
// discovery/routing lives outside this repo, so "first connection to an
// unknown room name creates it" is the simplest contract an external router
// could drive).
package transport

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wehjee/brocs-mahjong/internal/config"
	"github.com/wehjee/brocs-mahjong/internal/room"
)

type roomEntry struct {
	room   *room.Room
	pusher *roomPusher
}

// Hub owns every live Room for this process, keyed by room id.
type Hub struct {
	mu    sync.Mutex
	cfg   config.Configuration
	rooms map[string]*roomEntry
}

func NewHub(cfg config.Configuration) *Hub {
	return &Hub{cfg: cfg, rooms: make(map[string]*roomEntry)}
}

func (h *Hub) getOrCreate(id string) (*room.Room, *roomPusher, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e, ok := h.rooms[id]; ok {
		return e.room, e.pusher, nil
	}

	pusher := newRoomPusher()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rm, err := room.NewRoom(id, h.cfg, pusher, rng)
	if err != nil {
		return nil, nil, err
	}
	h.rooms[id] = &roomEntry{room: rm, pusher: pusher}
	return rm, pusher, nil
}

// RoomCount reports how many rooms are currently live, for /healthz.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
