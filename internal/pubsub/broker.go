// Package pubsub is a small in-memory broker feeding the live
// leaderboard websockets. Topics are leaderboard scopes (one per
// challenge or crew); each topic retains only its latest message so a
// new subscriber immediately sees the current standings.
package pubsub

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Broker is explicitly constructed and injected into the handlers that
// need it; there is no package-level instance.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]chan []byte
	retained    map[string][]byte
}

type WsMessage struct {
	Stream string      `json:"stream"`
	Data   interface{} `json:"data"`
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string][]chan []byte),
		retained:    make(map[string][]byte),
	}
}

// Subscribe subscribes to a topic. The retained message, if any, is
// delivered first so the subscriber starts from the current state.
func (b *Broker) Subscribe(topic string) (<-chan []byte, func()) {
	b.mu.Lock()

	ch := make(chan []byte, 16)
	if last, ok := b.retained[topic]; ok {
		ch <- last
	}
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subscribers := b.subscribers[topic]
		for i, sub := range subscribers {
			if sub == ch {
				b.subscribers[topic] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
		zap.S().Debugf("unsubscribed from topic %s", topic)
	}

	zap.S().Debugf("new subscription to topic %s", topic)
	return ch, unsubscribe
}

// Publish replaces the retained message for a topic and broadcasts it
// to live subscribers without blocking on slow clients.
func (b *Broker) Publish(topic string, msg []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.retained[topic] = msg

	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			// a full subscriber channel drops the update; the next
			// publish carries the fresh state anyway
		}
	}
}

// FormatMessage renders a stream message for the wire.
func FormatMessage(streamType string, data interface{}) []byte {
	msg := WsMessage{Stream: streamType, Data: data}
	bytes, err := json.Marshal(msg)
	if err != nil {
		return []byte(`{"stream": "error", "data": "json format error"}`)
	}
	return bytes
}
