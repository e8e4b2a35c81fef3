package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// RotationSetter re-synchronizes the controller's stored camera angles.
type RotationSetter interface {
	SetRotation(horizontal, vertical float64)
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPumpWithHandler reads messages from the WebSocket and handles client commands.
func (c *Client) ReadPumpWithHandler(setter RotationSetter) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.hub.log.Warn("bad viewer message", zap.Error(err))
			continue
		}

		switch clientMsg.Type {
		case "set_rotation":
			setter.SetRotation(clientMsg.Yaw, clientMsg.Pitch)
			c.hub.log.Debug("viewer set rotation",
				zap.Float64("yaw", clientMsg.Yaw), zap.Float64("pitch", clientMsg.Pitch))
		default:
			c.hub.log.Warn("unknown viewer message", zap.String("type", clientMsg.Type))
		}
	}
}
