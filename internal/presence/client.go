package presence

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsConn is the slice of *websocket.Conn the tracker needs; narrowed to an
// interface so tests can substitute a recording fake.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one user's live connection. All writes go through the buffered
// send channel and a single write pump goroutine, since gorilla connections
// support only one concurrent writer.
type Client struct {
	userID uuid.UUID
	conn   wsConn
	send   chan []byte

	closeOnce sync.Once
}

const sendBufferSize = 8

func newClient(userID uuid.UUID, conn wsConn) *Client {
	return &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

// UserID returns the connection owner's id.
func (c *Client) UserID() uuid.UUID { return c.userID }

// trySend queues a frame without blocking. Returns false when the buffer is
// full, signalling a stalled connection.
func (c *Client) trySend(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// close shuts the send channel, which ends the write pump and closes the
// underlying connection. Safe to call more than once.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
	// Channel closed: say goodbye before dropping the connection.
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
