package events

import (
	"log"
	"sync"
	"time"
)

// Topics published by the maintenance core
const (
	TopicMaintenanceChanged = "maintenance:changed"
	TopicNotification       = "notification"
)

// Event is a single message on the bus
type Event struct {
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Bus is an explicitly constructed process-wide topic bus. Publishing never
// blocks: a subscriber that falls behind drops events, matching the
// fire-and-forget contract of the change feed.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe returns a channel receiving events for all given topics
func (b *Bus) Subscribe(topics ...string) <-chan Event {
	ch := make(chan Event, 100)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, topic := range topics {
		b.subscribers[topic] = append(b.subscribers[topic], ch)
	}

	return ch
}

// Publish delivers an event to every subscriber of the topic
func (b *Bus) Publish(topic string, payload interface{}) {
	event := Event{
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- event:
		default:
			log.Printf("⚠️ Event subscriber for %s is full, dropping event", topic)
		}
	}
}
