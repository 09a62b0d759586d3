package websocket

import (
	"sync"
	"time"

	"guessing-game-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	GroupID string

	// Buffered channel of outbound messages.
	Send chan []byte

	closeOnce sync.Once
	logger    logger.ILogger
}

func NewClient(hub *Hub, conn *websocket.Conn, groupId string, log logger.ILogger) *Client {
	return &Client{
		Hub:     hub,
		Conn:    conn,
		GroupID: groupId,
		Send:    make(chan []byte, sendBuffer),
		logger:  log,
	}
}

func (c *Client) Deliver(frame []byte) bool {
	select {
	case c.Send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// Serve subscribes the client and pumps until the peer goes away. Frames
// queued before Serve (e.g. a greeting) are written first.
func (c *Client) Serve() {
	c.Hub.Subscribe(c.GroupID, c)
	go c.writePump()
	c.readPump()
}

// readPump only services control frames; clients talk to the game over HTTP.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unsubscribe(c.GroupID, c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WsClient", "Unexpected close", map[string]interface{}{"group": c.GroupID, "error": err.Error()})
			}
			return
		}
	}
}

// writePump writes one frame per event so clients can JSON-decode each message.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
