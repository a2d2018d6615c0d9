package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Kazeyhaya/orkcord/internal/config"
	"github.com/Kazeyhaya/orkcord/internal/domain"
	"github.com/Kazeyhaya/orkcord/pkg/log"
)

// Client is one live websocket connection. Outbound frames go through the
// buffered Send channel; the write pump is the only goroutine touching the
// socket for writes.
type Client struct {
	ID      string
	Session *domain.Session
	Send    chan []byte

	hub  *Hub
	conn *websocket.Conn
	cfg  config.WebSocketConfig

	closeMu sync.RWMutex
	closed  bool
}

func NewClient(id string, h *Hub, conn *websocket.Conn, cfg config.WebSocketConfig) *Client {
	buffer := cfg.SendBuffer
	if buffer <= 0 {
		buffer = 256
	}
	return &Client{
		ID:      id,
		Session: domain.NewSession(),
		Send:    make(chan []byte, buffer),
		hub:     h,
		conn:    conn,
		cfg:     cfg,
	}
}

// enqueue offers data to the send queue without blocking. It reports false
// when the buffer is full. Enqueueing to a closed client is a no-op.
func (c *Client) enqueue(data []byte) bool {
	c.closeMu.RLock()
	defer c.closeMu.RUnlock()
	if c.closed {
		return true
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// SendEvent marshals event and offers it to the send queue, dropping it if
// the buffer is full.
func (c *Client) SendEvent(event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	c.enqueue(data)
	return nil
}

func (c *Client) close() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// ReadPump reads inbound frames and hands them to handler. It owns connection
// teardown: when the read loop exits the client is removed from the hub
// before ReadPump returns.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		c.hub.Disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l := log.L()
				l.Debug().Err(err).Str(log.FieldConnID, c.ID).Msg("websocket read error")
			}
			break
		}

		handler(c, message)
	}
}

// WritePump drains the send queue onto the socket and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
