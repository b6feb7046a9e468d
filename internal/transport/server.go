package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wehjee/brocs-mahjong/internal/config"
	"github.com/wehjee/brocs-mahjong/internal/logging"
	"github.com/wehjee/brocs-mahjong/internal/room"
	"github.com/wehjee/brocs-mahjong/internal/view"
)

// maxNameLength bounds a display name pulled straight off the query string.
const maxNameLength = 16

// Server exposes the two HTTP routes this process needs: the WebSocket
// upgrade that seats a connection into a room, and a health/readiness probe
// (SPEC_FULL.md §4 supplemented feature — not part of the game protocol
// itself, so it gets its own route rather than a room message type).
type Server struct {
	hub       *Hub
	upgrader  websocket.Upgrader
	startedAt time.Time
}

func NewServer(cfg config.Configuration) *Server {
	return &Server{
		hub: NewHub(cfg),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		startedAt: time.Now(),
	}
}

// Engine builds the gin.Engine serving this process's two routes. Gin is
// used directly rather than replicating the teacher's common/http wrapper —
// that wrapper's extra layer of route-group/middleware abstraction earns its
// keep across a dozen services sharing one framework package; a single
// two-route process doesn't need it.
func (s *Server) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/ws", s.handleWebSocket)
	return engine
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"rooms":     s.hub.RoomCount(),
		"uptimeSec": int(time.Since(s.startedAt).Seconds()),
	})
}

// handleWebSocket parses the connection URL parameters named in spec.md §6
// (room, name, avatar, reconnectToken), seats the connection via the room's
// normal Join event, and then runs its pumps until it closes.
func (s *Server) handleWebSocket(c *gin.Context) {
	roomID := strings.TrimSpace(c.Query("room"))
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room is required"})
		return
	}
	name := strings.TrimSpace(c.Query("name"))
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	avatar := c.Query("avatar")
	reconnectToken := c.Query("reconnectToken")

	wsConn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed: %v", err)
		return
	}

	rm, pusher, err := s.hub.getOrCreate(roomID)
	if err != nil {
		logging.Error("room %s: create failed: %v", roomID, err)
		_ = wsConn.Close()
		return
	}

	connID := uuid.New().String()
	reply := make(chan room.JoinResult, 1)
	rm.NotifyEvent(room.JoinEvent{
		ConnID:         connID,
		Name:           name,
		Avatar:         avatar,
		ReconnectToken: reconnectToken,
		Reply:          reply,
	})

	result := <-reply
	if result.Err != nil {
		writeErrorAndClose(wsConn, result.Err.Error())
		return
	}

	conn := newConnection(connID, wsConn, rm, pusher, result.SeatIndex)
	pusher.bind(result.SeatIndex, conn)
	conn.Send(view.Envelope{
		Type: "joined",
		Data: view.JoinedMessage{SeatIndex: result.SeatIndex, ReconnectToken: result.Token},
	})
	conn.run()
}

func writeErrorAndClose(conn *websocket.Conn, message string) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteJSON(view.Envelope{Type: "error", Data: view.ErrorMessage{Message: message}})
	_ = conn.Close()
}
