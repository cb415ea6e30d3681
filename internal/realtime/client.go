package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// Client is one live websocket session. Outbound events go through a
// buffered channel consumed by the write pump, so a stalled socket never
// blocks the caller.
type Client struct {
	sessionID string
	userID    string
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient wraps an upgraded connection in a client with a fresh session id
func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		sessionID: uuid.NewString(),
		userID:    userID,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		done:      make(chan struct{}),
	}
}

// SessionID returns the volatile session identifier
func (c *Client) SessionID() string { return c.sessionID }

// UserID returns the stable user identity behind this session
func (c *Client) UserID() string { return c.userID }

// TrySend queues a message without blocking. It reports false when the
// client is closed or its buffer is full; the message is dropped either way.
func (c *Client) TrySend(message []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// Close tears the session down. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// writePump drains the outbound channel onto the socket and keeps the
// connection alive with pings. One per client.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump consumes the socket until it closes, then runs onClose. Inbound
// frames are not part of the protocol; reading only services pings and
// detects disconnects.
func (c *Client) readPump(onClose func()) {
	defer func() {
		c.Close()
		onClose()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
