package feedback

import (
	"log"
	"sync"

	"github.com/mohitvuyala/portfolio/backend/internal/model/feedback"
)

const subscriberBuffer = 16

// Hub fans newly stored records out to live subscribers. Slow subscribers
// miss records rather than block submissions.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan feedback.Record
}

// NewHub returns a Hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan feedback.Record)}
}

// Subscribe registers a listener. The returned func unsubscribes and closes
// the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan feedback.Record, func()) {
	ch := make(chan feedback.Record, subscriberBuffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers record to every subscriber with buffer space.
func (h *Hub) Publish(record feedback.Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- record:
		default:
			log.Printf("[feedback] live subscriber %d lagging, dropped id=%d", id, record.ID)
		}
	}
}

// Subscribers reports the number of registered listeners.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
