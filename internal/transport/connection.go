package transport

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wehjee/brocs-mahjong/internal/logging"
	"github.com/wehjee/brocs-mahjong/internal/room"
	"github.com/wehjee/brocs-mahjong/internal/view"
)

// Pump timings mirror the teacher's framework/conn.LongConnection, adapted
// from binary frames to JSON text frames.
const (
	pongWait        = 60 * time.Second
	writeWait       = 10 * time.Second
	pingInterval    = (pongWait * 9) / 10
	maxMessageBytes = 1 << 16
)

// Connection is one client's live WebSocket, bound to exactly one seat in
// exactly one Room. Unlike the teacher's LongConnectionPool, connections are
// not pooled/reused — a table this small doesn't warrant that allocator
// optimization, so each Connection is a plain heap value per socket.
type Connection struct {
	id     string
	conn   *websocket.Conn
	room   *room.Room
	pusher *roomPusher
	seat   int

	send      chan view.Envelope
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(id string, wsConn *websocket.Conn, rm *room.Room, pusher *roomPusher, seat int) *Connection {
	return &Connection{
		id:     id,
		conn:   wsConn,
		room:   rm,
		pusher: pusher,
		seat:   seat,
		send:   make(chan view.Envelope, 64),
		done:   make(chan struct{}),
	}
}

// Send enqueues env for delivery, dropping it silently if the connection has
// already closed rather than blocking the room's event loop on a dead socket.
func (c *Connection) Send(env view.Envelope) {
	select {
	case c.send <- env:
	case <-c.done:
	}
}

// run blocks for the lifetime of the connection, driving the write pump in
// the background and the read pump on the calling goroutine.
func (c *Connection) run() {
	go c.writePump()
	c.readPump()
}

func (c *Connection) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn("connection %s: unexpected close: %v", c.id, err)
			}
			return
		}
		var msg view.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// A malformed frame is a protocol error (spec.md §7): logged and
			// dropped, the connection stays open.
			logging.Warn("connection %s: %v", c.id, fmt.Errorf("decoding client frame: %w", err))
			continue
		}
		c.dispatch(msg)
	}
}

// dispatch turns one decoded client frame into a room.Event. An unknown
// message type is a protocol error (spec.md §7) and is logged and dropped.
func (c *Connection) dispatch(msg view.ClientMessage) {
	switch msg.Type {
	case "ready":
		c.room.NotifyEvent(room.ReadyEvent{ConnID: c.id, IsReady: msg.IsReady != nil && *msg.IsReady})
	case "start-game":
		c.room.NotifyEvent(room.StartGameEvent{ConnID: c.id})
	case "action":
		c.room.NotifyEvent(room.ActionEvent{ConnID: c.id, Action: msg.Action, TileID: msg.TileID, ChiIndex: msg.ChiIndex})
	case "next-round":
		c.room.NotifyEvent(room.NextRoundEvent{ConnID: c.id})
	case "leave":
		c.room.NotifyEvent(room.LeaveEvent{ConnID: c.id})
	default:
		logging.Warn("connection %s: unknown message type %q", c.id, msg.Type)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer c.close()

	for {
		select {
		case env, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				logging.Warn("connection %s: write failed: %v", c.id, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
		c.pusher.unbind(c.seat, c)
		c.room.NotifyEvent(room.DisconnectEvent{ConnID: c.id})
	})
}
