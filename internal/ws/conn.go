package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

// Conn wraps one websocket with a buffered outbound queue. Writes go
// through the queue so a slow client can never block the game loop; a
// full queue drops the frame and the client resyncs from the next
// room_update.
type Conn struct {
	ID     string
	UserID string

	sock *websocket.Conn
	send chan []byte
	log  *zap.SugaredLogger

	mu     sync.Mutex
	closed bool
}

func newConn(id, userID string, sock *websocket.Conn, log *zap.SugaredLogger) *Conn {
	return &Conn{
		ID:     id,
		UserID: userID,
		sock:   sock,
		send:   make(chan []byte, sendBuffer),
		log:    log,
	}
}

// enqueue and close share a mutex: a frame racing a disconnect must be
// dropped, never sent on a closed channel, since enqueue runs on the
// game loop and close on the pump goroutine.
func (c *Conn) enqueue(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
		c.log.Warnw("send buffer full, dropping frame", "conn", c.ID)
	}
}

func (c *Conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump forwards inbound frames to the session until the socket
// dies, then reports the disconnect.
func (c *Conn) readPump(session Session, onClose func()) {
	defer func() {
		c.sock.Close()
		onClose()
	}()
	c.sock.SetReadLimit(maxMessageSize)
	c.sock.SetReadDeadline(time.Now().Add(pongWait))
	c.sock.SetPongHandler(func(string) error {
		c.sock.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warnw("read error", "conn", c.ID, "err", err)
			}
			return
		}
		session.HandleMessage(c.ID, raw)
	}
}

// writePump drains the outbound queue and keeps the connection alive
// with pings. Closing the queue ends the pump and the socket.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.sock.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.sock.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
