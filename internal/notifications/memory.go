package notifications

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Hub is an in-process broker connecting several MemoryChannel clients.
// Delivery is synchronous: Publish returns after every other client ran its
// handlers.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*MemoryChannel
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*MemoryChannel)}
}

// Connect attaches a new client to the hub.
func (h *Hub) Connect() *MemoryChannel {
	c := &MemoryChannel{
		hub:      h,
		id:       uuid.NewString(),
		handlers: newRegistry(),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	return c
}

func (h *Hub) disconnect(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

func (h *Hub) others(id string) []*MemoryChannel {
	h.mu.RLock()
	defer h.mu.RUnlock()

	res := make([]*MemoryChannel, 0, len(h.clients))
	for cid, c := range h.clients {
		if cid != id {
			res = append(res, c)
		}
	}

	return res
}

type MemoryChannel struct {
	hub      *Hub
	id       string
	handlers *registry

	deliverMu sync.Mutex

	mu     sync.Mutex
	closed bool
}

func (c *MemoryChannel) ID() string {
	return c.id
}

func (c *MemoryChannel) Subscribe(_ context.Context, topic string, h Handler) (*Subscription, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}

	id, _ := c.handlers.add(topic, h)

	return &Subscription{
		topic: topic,
		release: func() error {
			c.handlers.remove(topic, id)
			return nil
		},
	}, nil
}

func (c *MemoryChannel) Unsubscribe(topic string) error {
	c.handlers.removeAll(topic)
	return nil
}

func (c *MemoryChannel) Publish(ctx context.Context, topic string, payload []byte) error {
	if c.isClosed() {
		return ErrClosed
	}

	for _, other := range c.hub.others(c.id) {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := make([]byte, len(payload))
		copy(msg, payload)
		other.deliver(topic, msg)
	}

	return nil
}

func (c *MemoryChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.hub.disconnect(c.id)

	return nil
}

func (c *MemoryChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func (c *MemoryChannel) deliver(topic string, payload []byte) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	for _, h := range c.handlers.get(topic) {
		h(payload)
	}
}
