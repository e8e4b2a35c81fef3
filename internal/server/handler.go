package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/soar/gamepadcam/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, setter hub.RotationSetter, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)

		// Send the latest frame to the new client
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPumpWithHandler(setter)
	}
}

func handleHealth(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "viewers": h.Len()})
	}
}
