package ws

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one websocket connection bound to an authenticated user.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	userID primitive.ObjectID
	sendCh chan []byte
}

// Serve registers the connection on the hub and pumps frames until the
// connection drops. It blocks for the lifetime of the connection, which is
// what the fiber websocket handler expects.
func Serve(hub *Hub, conn *websocket.Conn, userID primitive.ObjectID) {
	client := &Client{
		id:     uuid.NewString(),
		hub:    hub,
		conn:   conn,
		userID: userID,
		sendCh: make(chan []byte, 16),
	}
	hub.register <- client

	go client.writePump()
	client.readPump()
}

// readPump discards inbound frames; the relay is one-way. It exists to detect
// closed connections and keep the pong deadline fresh.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

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
		case payload, ok := <-c.sendCh:
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
