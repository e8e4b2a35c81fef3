package hub

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"
)

const (
	fullSyncInterval = 5 * time.Second
	poseThreshold    = 1e-4
)

// Broadcaster turns published events into messages for the hub. Frame events
// whose pose and target did not change are dropped.
type Broadcaster struct {
	hub       *Hub
	events    chan Event
	lastFrame *Event
	seq       int64
	clients   chan *Client
}

func NewBroadcaster(h *Hub) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		events:  make(chan Event, 64),
		clients: make(chan *Client, 8),
	}
}

// Publish queues e without blocking. Events are dropped while the queue is full.
func (b *Broadcaster) Publish(e Event) bool {
	select {
	case b.events <- e:
		return true
	default:
		return false
	}
}

// SendInitialState queues the latest frame for a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	select {
	case b.clients <- c:
	default:
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case e := <-b.events:
			if e.Type == TypeFrame {
				if b.lastFrame != nil && !FrameChanged(*b.lastFrame, e) {
					continue
				}
				b.lastFrame = &e
			}
			b.send(e)

		case c := <-b.clients:
			if b.lastFrame == nil {
				continue
			}
			b.seq++
			data, err := json.Marshal(NewMessage(b.seq, *b.lastFrame))
			if err != nil {
				b.hub.log.Error("marshal initial frame", zap.Error(err))
				continue
			}
			b.hub.SendTo(c, data)

		case <-ticker.C:
			if b.lastFrame != nil {
				b.send(*b.lastFrame)
			}
		}
	}
}

func (b *Broadcaster) send(e Event) {
	b.seq++
	data, err := json.Marshal(NewMessage(b.seq, e))
	if err != nil {
		b.hub.log.Error("marshal message", zap.String("type", e.Type), zap.Error(err))
		return
	}
	b.hub.Broadcast(data)
}

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < poseThreshold
}

// FrameChanged reports whether two frame events differ in pose beyond a small
// threshold or in hovered target.
func FrameChanged(old, new_ Event) bool {
	if (old.Pose == nil) != (new_.Pose == nil) || (old.Target == nil) != (new_.Target == nil) {
		return true
	}
	if old.Target != nil && old.Target.ID != new_.Target.ID {
		return true
	}
	if old.Pose == nil {
		return false
	}
	a, b := old.Pose, new_.Pose
	for i := range a.Position {
		if !floatEqual(a.Position[i], b.Position[i]) {
			return true
		}
	}
	return !floatEqual(a.Yaw, b.Yaw) || !floatEqual(a.Pitch, b.Pitch)
}
