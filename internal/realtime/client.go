package realtime

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"foodbox-be/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one websocket subscriber of a business feed.
type Client struct {
	hub        *Hub
	businessID string
	conn       *websocket.Conn
	send       chan []byte
}

func newClient(hub *Hub, businessID string, conn *websocket.Conn) *Client {
	return &Client{
		hub:        hub,
		businessID: businessID,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
	}
}

// ServeWS upgrades the request and subscribes the connection to the
// business feed until either side goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, businessID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(h, businessID, conn)
	h.Subscribe(businessID, c)

	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames; the feed is one-way. It exists to
// notice closes and answer pings.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c.businessID, c)
		c.conn.Close()
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

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
