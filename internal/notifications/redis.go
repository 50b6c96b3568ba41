package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type message struct {
	Sender  string          `json:"sender"`
	Payload json.RawMessage `json:"payload"`
}

// RedisChannel is a notification channel over Redis pub/sub. It keeps one
// dedicated subscriber connection for the session and publishes through the
// pool. Messages published by this channel are not delivered back to it.
type RedisChannel struct {
	logger *zap.SugaredLogger
	pool   *redis.Pool
	id     string

	handlers *registry

	sendMu sync.Mutex
	psc    redis.PubSubConn

	mu      sync.Mutex
	pending map[string][]chan struct{}
	closed  bool
	done    chan struct{}
}

func NewRedisChannel(logger *zap.SugaredLogger, pool *redis.Pool) (*RedisChannel, error) {
	// not pooled: closing it has to unblock the receive loop
	conn, err := pool.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial subscriber connection: %w", err)
	}

	c := &RedisChannel{
		logger:   logger,
		pool:     pool,
		id:       uuid.NewString(),
		handlers: newRegistry(),
		psc:      redis.PubSubConn{Conn: conn},
		pending:  make(map[string][]chan struct{}),
		done:     make(chan struct{}),
	}
	go c.receive()

	return c, nil
}

// ID identifies this client in published messages.
func (c *RedisChannel) ID() string {
	return c.id
}

func (c *RedisChannel) Subscribe(ctx context.Context, topic string, h Handler) (*Subscription, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}

	id, first := c.handlers.add(topic, h)

	var confirmed chan struct{}
	if first {
		confirmed = make(chan struct{})
		c.pending[topic] = append(c.pending[topic], confirmed)
	}
	c.mu.Unlock()

	sub := &Subscription{
		topic: topic,
		release: func() error {
			if c.handlers.remove(topic, id) {
				return c.send(func() error { return c.psc.Unsubscribe(topic) })
			}
			return nil
		},
	}

	if !first {
		return sub, nil
	}

	if err := c.send(func() error { return c.psc.Subscribe(topic) }); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %q: %w", topic, err)
	}

	select {
	case <-confirmed:
		return sub, nil
	case <-c.done:
		return nil, ErrClosed
	case <-ctx.Done():
		_ = sub.Close()
		return nil, ctx.Err()
	}
}

func (c *RedisChannel) Unsubscribe(topic string) error {
	if !c.handlers.removeAll(topic) {
		return nil
	}

	return c.send(func() error { return c.psc.Unsubscribe(topic) })
}

// Publish sends payload to every other subscriber of topic. The payload must
// be a JSON document.
func (c *RedisChannel) Publish(ctx context.Context, topic string, payload []byte) error {
	msg, err := json.Marshal(&message{Sender: c.id, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Do("PUBLISH", topic, msg); err != nil {
		return fmt.Errorf("publish %q: %w", topic, err)
	}

	return nil
}

// Close drops every subscription and the subscriber connection.
func (c *RedisChannel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.psc.Close()
	<-c.done

	return err
}

func (c *RedisChannel) send(fn func() error) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	return fn()
}

func (c *RedisChannel) receive() {
	defer close(c.done)

	for {
		switch v := c.psc.Receive().(type) {
		case redis.Message:
			c.dispatch(v.Channel, v.Data)
		case redis.Subscription:
			c.logger.Debugw("channel subscription changed", "kind", v.Kind, "topic", v.Channel, "count", v.Count)
			if v.Kind == "subscribe" {
				c.confirm(v.Channel)
			}
		case error:
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()

			if !closed {
				c.logger.Errorw("notification channel receive failed", "err", v)
			}
			return
		}
	}
}

func (c *RedisChannel) confirm(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.pending[topic] {
		close(ch)
	}
	delete(c.pending, topic)
}

func (c *RedisChannel) dispatch(topic string, data []byte) {
	msg := &message{}
	if err := json.Unmarshal(data, msg); err != nil {
		c.logger.Warnw("dropping malformed notification", "topic", topic, "err", err)
		return
	}

	if msg.Sender == c.id {
		return
	}

	for _, h := range c.handlers.get(topic) {
		c.invoke(topic, h, msg.Payload)
	}
}

func (c *RedisChannel) invoke(topic string, h Handler, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorw("notification handler panicked", "topic", topic, "panic", r)
		}
	}()

	h(payload)
}
