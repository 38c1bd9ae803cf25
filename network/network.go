package network

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/KostyaCholak/towdef/protocol"
	"github.com/KostyaCholak/towdef/room"
)

const (
	readLimit    = 1 << 20 // 1MB
	pongWait     = 60 * time.Second
	pingEvery    = 25 * time.Second
	writeTimeout = 10 * time.Second

	// Per-connection intent budget. Generous enough that no human client
	// ever notices; floods get their messages dropped, not their socket.
	intentRate  = rate.Limit(20)
	intentBurst = 40
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP to WebSocket and pumps decoded intents into the room.
type Handler struct {
	room *room.Room
}

func NewHandler(r *room.Room) *Handler {
	return &Handler{room: r}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	h.serve(conn, r.RemoteAddr)
}

// wsConn serializes writes: the room goroutine and the ping loop both write,
// and gorilla connections allow only one writer at a time.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func (h *Handler) serve(raw *websocket.Conn, remote string) {
	c := &wsConn{conn: raw}
	defer c.Close()

	// Basic timeouts + pong handling (keeps connections healthy)
	raw.SetReadLimit(readLimit)
	_ = raw.SetReadDeadline(time.Now().Add(pongWait))
	raw.SetPongHandler(func(string) error {
		_ = raw.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	limiter := rate.NewLimiter(intentRate, intentBurst)

	// The id this connection authenticated as via an accepted player.join.
	// Intents arriving before that carry an empty id and fail player
	// resolution in the room, which is the silent no-op the protocol wants.
	var playerID string
	defer func() {
		if playerID != "" {
			h.room.Inbox <- room.Leave{PlayerID: playerID, Conn: c}
		}
	}()

	for {
		_, data, err := raw.ReadMessage()
		if err != nil {
			slog.Debug("connection closed", "remote", remote, "err", err)
			return
		}
		if !limiter.Allow() {
			slog.Warn("intent rate exceeded, dropping message", "remote", remote)
			continue
		}

		env, err := protocol.DecodeEnvelope(data)
		if err != nil {
			slog.Warn("malformed envelope dropped", "remote", remote, "err", err)
			continue
		}

		switch env.Type {
		case protocol.MsgPlayerJoin:
			intent, err := protocol.DecodePayload[protocol.JoinIntent](env)
			if err != nil {
				slog.Warn("bad join payload", "remote", remote, "err", err)
				continue
			}
			if intent.ID == "" {
				slog.Warn("join without player id dropped", "remote", remote)
				continue
			}
			// Bind to the id only after the room accepts the join; a
			// rejected claim must leave this connection anonymous so its
			// disconnect cannot touch the real player's session.
			reply := make(chan room.JoinResult, 1)
			h.room.Inbox <- room.Join{Conn: c, PlayerID: intent.ID, Name: intent.Name, Reply: reply}
			if res := <-reply; res.Accepted {
				playerID = intent.ID
			} else {
				slog.Debug("join not accepted", "remote", remote, "player", intent.ID)
			}
		case protocol.MsgGameBuild:
			intent, err := protocol.DecodePayload[protocol.BuildIntent](env)
			if err != nil {
				slog.Warn("bad build payload", "remote", remote, "err", err)
				continue
			}
			h.room.Inbox <- room.Build{PlayerID: playerID, X: intent.X, Y: intent.Y, Type: intent.Type}
		case protocol.MsgGameDestroy:
			intent, err := protocol.DecodePayload[protocol.DestroyIntent](env)
			if err != nil {
				slog.Warn("bad destroy payload", "remote", remote, "err", err)
				continue
			}
			h.room.Inbox <- room.Destroy{PlayerID: playerID, TowerID: intent.ID}
		default:
			slog.Warn("no handler for message type", "type", env.Type, "remote", remote)
		}
	}
}
