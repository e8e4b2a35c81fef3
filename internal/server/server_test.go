package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/gamepadcam/internal/hub"
)

type rotationRecorder struct {
	mu    sync.Mutex
	calls [][2]float64
}

func (r *rotationRecorder) SetRotation(h, v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]float64{h, v})
}

func (r *rotationRecorder) last() ([2]float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return [2]float64{}, false
	}
	return r.calls[len(r.calls)-1], true
}

func startServer(t *testing.T) (*hub.Hub, *hub.Broadcaster, *rotationRecorder, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := hub.NewHub(nil)
	b := hub.NewBroadcaster(h)
	go h.Run(ctx)
	go b.Run(ctx)

	rec := &rotationRecorder{}
	ts := httptest.NewServer(New(h, b, rec, ":0", nil).Handler())
	t.Cleanup(ts.Close)
	return h, b, rec, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) hub.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg hub.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketStreamsEvents(t *testing.T) {
	h, b, _, ts := startServer(t)
	conn := dial(t, ts)
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 5*time.Millisecond)

	frame := hub.Event{
		Type:   hub.TypeFrame,
		Pose:   &hub.Pose{Position: [3]float64{0, 0, 0.03}},
		Target: &hub.Target{ID: "t1", Name: "table", Distance: 4},
	}
	require.True(t, b.Publish(frame))

	msg := readMessage(t, conn)
	assert.Equal(t, hub.TypeFrame, msg.Type)
	require.NotNil(t, msg.Target)
	assert.Equal(t, "table", msg.Target.Name)
	assert.Equal(t, 0.03, msg.Pose.Position[2])

	anchor := [2]float64{100, 100}
	require.True(t, b.Publish(frame))
	require.True(t, b.Publish(hub.Event{Type: hub.TypeInspect, Target: frame.Target, Anchor: &anchor}))

	for {
		msg = readMessage(t, conn)
		if msg.Type != hub.TypeFrame {
			break
		}
	}
	assert.Equal(t, hub.TypeInspect, msg.Type)
	require.NotNil(t, msg.Anchor)
	assert.Equal(t, anchor, *msg.Anchor)
}

func TestWebSocketSetRotation(t *testing.T) {
	_, _, rec, ts := startServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(hub.ClientMessage{Type: "set_rotation", Yaw: 1.5, Pitch: -0.25}))
	assert.Eventually(t, func() bool {
		got, ok := rec.last()
		return ok && got == [2]float64{1.5, -0.25}
	}, time.Second, 5*time.Millisecond)
}

func TestHealth(t *testing.T) {
	_, _, _, ts := startServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 0.0, body["viewers"])
}
