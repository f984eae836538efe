package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Session is the game core's connection-facing surface. All three
// methods must be safe to call from pump goroutines.
type Session interface {
	HandleConnect(connID, userID string)
	HandleMessage(connID string, raw []byte)
	HandleDisconnect(connID string)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks live connections and implements the game core's Emitter.
type Hub struct {
	log *zap.SugaredLogger

	mu    sync.RWMutex
	conns map[string]*Conn
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:   log,
		conns: make(map[string]*Conn),
	}
}

// Send marshals one event for one connection. Unknown connection ids
// are dropped silently; disconnects race event emission by design.
func (h *Hub) Send(connID, event string, data any) {
	h.mu.RLock()
	c := h.conns[connID]
	h.mu.RUnlock()
	if c == nil {
		return
	}
	frame, err := json.Marshal(Message[any]{Type: event, Data: data})
	if err != nil {
		h.log.Errorw("marshal failed", "event", event, "err", err)
		return
	}
	c.enqueue(frame)
}

// CloseConn shuts a connection down from the server side.
func (h *Hub) CloseConn(connID string) {
	h.mu.Lock()
	c := h.conns[connID]
	delete(h.conns, connID)
	h.mu.Unlock()
	if c != nil {
		c.close()
	}
}

func (h *Hub) add(c *Conn) {
	h.mu.Lock()
	h.conns[c.ID] = c
	h.mu.Unlock()
}

func (h *Hub) remove(connID string) {
	h.mu.Lock()
	delete(h.conns, connID)
	h.mu.Unlock()
}

// Handler returns the /ws upgrade endpoint. Each socket gets a fresh
// connection id; an optional userId query parameter rides along as an
// opaque identity marker.
func (h *Hub) Handler(session Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sock, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warnw("upgrade failed", "err", err)
			return
		}
		c := newConn(uuid.NewString(), r.URL.Query().Get("userId"), sock, h.log)
		h.add(c)
		session.HandleConnect(c.ID, c.UserID)
		h.log.Infow("connection opened", "conn", c.ID)

		go c.writePump()
		go c.readPump(session, func() {
			h.remove(c.ID)
			c.close()
			session.HandleDisconnect(c.ID)
			h.log.Infow("connection closed", "conn", c.ID)
		})
	}
}
