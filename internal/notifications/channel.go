package notifications

import (
	"errors"
	"sort"
	"sync"
)

var ErrClosed = errors.New("notification channel closed")

// Handler is invoked once per inbound message on a subscribed topic.
// Handlers of one channel never run concurrently.
type Handler func(payload []byte)

// Subscription is a registered handler. Close releases it and is safe to call
// more than once.
type Subscription struct {
	topic   string
	release func() error
	once    sync.Once
	err     error
}

func (s *Subscription) Topic() string {
	return s.topic
}

func (s *Subscription) Close() error {
	s.once.Do(func() {
		s.err = s.release()
	})
	return s.err
}

// registry keeps handlers per topic in registration order.
type registry struct {
	mu       sync.Mutex
	handlers map[string]map[uint64]Handler
	nextID   uint64
}

func newRegistry() *registry {
	return &registry{handlers: make(map[string]map[uint64]Handler)}
}

// add reports whether the topic had no handlers before.
func (r *registry) add(topic string, h Handler) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs, ok := r.handlers[topic]
	if !ok {
		hs = make(map[uint64]Handler)
		r.handlers[topic] = hs
	}

	r.nextID++
	hs[r.nextID] = h

	return r.nextID, !ok
}

// remove reports whether the topic has no handlers left.
func (r *registry) remove(topic string, id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs, ok := r.handlers[topic]
	if !ok {
		return false
	}

	delete(hs, id)
	if len(hs) == 0 {
		delete(r.handlers, topic)
		return true
	}

	return false
}

func (r *registry) removeAll(topic string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.handlers[topic]
	delete(r.handlers, topic)

	return ok
}

func (r *registry) get(topic string) []Handler {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs := r.handlers[topic]
	ids := make([]uint64, 0, len(hs))
	for id := range hs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	res := make([]Handler, len(ids))
	for i, id := range ids {
		res[i] = hs[id]
	}

	return res
}
