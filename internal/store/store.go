package store

import (
	"context"
	"sort"
	"sync"

	"github.com/SergeyKozhin/events-sync/internal/gateway"
	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/SergeyKozhin/events-sync/internal/notifications"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store is the session-wide cache of events and the only mutator of it.
// Reads return copies that may go stale at any time.
type Store struct {
	logger   *zap.SugaredLogger
	gateway  eventsGateway
	channel  channel
	session  session
	mirror   mirror
	topic    string
	validate *validator.Validate

	mu      sync.RWMutex
	events  map[string]*model.Event
	loading bool
	version uint64

	mirrorMu sync.Mutex
	inflight singleflight.Group
}

type eventsGateway interface {
	ListEvents(ctx context.Context) model.Result[[]*model.Event]
	GetEvent(ctx context.Context, id string) model.Result[*model.Event]
	CreateEvent(ctx context.Context, info *model.EventCreate) model.Result[*model.Event]
	JoinEvent(ctx context.Context, id string) model.Result[*model.Event]
	LeaveEvent(ctx context.Context, id string) model.Result[*model.Event]
	DeleteEvent(ctx context.Context, id string) model.Result[*model.Event]
}

type channel interface {
	Subscribe(ctx context.Context, topic string, h notifications.Handler) (*notifications.Subscription, error)
	Publish(ctx context.Context, topic string, payload []byte) error
}

type session interface {
	Token() (string, bool)
	UserID() string
}

// mirror persists the cached collection between runs. Optional.
type mirror interface {
	ReplaceEvents(ctx context.Context, events []*model.Event) error
	UpsertEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
	GetEvents(ctx context.Context) ([]*model.Event, error)
}

// NewStore creates an empty store in loading state. mirror may be nil.
func NewStore(
	logger *zap.SugaredLogger,
	gateway eventsGateway,
	channel channel,
	session session,
	mirror mirror,
	topic string,
) *Store {
	return &Store{
		logger:   logger,
		gateway:  gateway,
		channel:  channel,
		session:  session,
		mirror:   mirror,
		topic:    topic,
		validate: newValidator(),
		events:   make(map[string]*model.Event),
		loading:  true,
	}
}

// Events returns a copy of the cached collection ordered by id.
func (s *Store) Events() []*model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*model.Event, 0, len(s.events))
	for _, e := range s.events {
		res = append(res, e.Clone())
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res
}

// Cached returns a copy of one cached event.
func (s *Store) Cached(id string) (*model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, false
	}

	return e.Clone(), true
}

// Event serves the cached copy and falls back to the server when the event is
// not cached. The fallback does not populate the cache.
func (s *Store) Event(ctx context.Context, id string) model.Result[*model.Event] {
	if e, ok := s.Cached(id); ok {
		return model.Success("", e)
	}

	res := s.gateway.GetEvent(ctx, id)
	if res.OK() && res.Data().Deleted {
		return model.Rejected[*model.Event](model.ErrNoRecord, MsgNotFound)
	}

	return res
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Version grows with every change of the cached collection.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// Refresh replaces the whole cache with the server's collection. On failure
// the cache is left as is.
func (s *Store) Refresh(ctx context.Context) model.Result[[]*model.Event] {
	res := s.gateway.ListEvents(ctx)
	if !res.OK() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()

		s.logger.Debugw("refresh failed", "kind", res.Kind(), "message", res.Message())
		return res
	}

	events := make(map[string]*model.Event, len(res.Data()))
	for _, e := range res.Data() {
		if e == nil || e.ID == "" || e.Deleted {
			continue
		}
		events[e.ID] = normalized(e)
	}

	s.mu.Lock()
	s.events = events
	s.loading = false
	s.version++
	s.mirrorMu.Lock()
	s.mu.Unlock()

	s.logger.Debugw("events refreshed", "count", len(events))
	s.mirrorWrite(ctx, "replace", func(ctx context.Context, m mirror) error {
		return m.ReplaceEvents(ctx, res.Data())
	})

	return res
}

// ApplyNotification merges one pushed record. A deletion-tagged record drops
// the id, any other record replaces it. Applying the same record again is a
// no-op. It reports whether the cache changed.
func (s *Store) ApplyNotification(ctx context.Context, record *model.Event) bool {
	if record == nil || record.ID == "" {
		return false
	}

	s.mu.Lock()
	cur, ok := s.events[record.ID]
	switch {
	case record.Deleted && !ok:
		s.mu.Unlock()
		return false
	case record.Deleted:
		delete(s.events, record.ID)
	case ok && cur.Equal(normalized(record)):
		s.mu.Unlock()
		return false
	default:
		s.events[record.ID] = normalized(record)
	}
	s.version++
	s.mirrorMu.Lock()
	s.mu.Unlock()

	if record.Deleted {
		s.mirrorWrite(ctx, "delete", func(ctx context.Context, m mirror) error {
			return m.DeleteEvent(ctx, record.ID)
		})
	} else {
		s.mirrorWrite(ctx, "upsert", func(ctx context.Context, m mirror) error {
			return m.UpsertEvent(ctx, record)
		})
	}

	return true
}

// Subscribe starts applying pushed records. Closing the subscription stops it.
func (s *Store) Subscribe(ctx context.Context) (*notifications.Subscription, error) {
	return s.channel.Subscribe(ctx, s.topic, s.handleNotification)
}

func (s *Store) handleNotification(payload []byte) {
	record, err := gateway.DecodeEvent(payload)
	if err != nil {
		s.logger.Warnw("dropping undecodable notification", "err", err)
		return
	}

	if s.ApplyNotification(context.Background(), record) {
		s.logger.Debugw("notification applied", "id", record.ID, "deleted", record.Deleted)
	}
}

// Warm fills an untouched cache from the mirror so views are not empty while
// the first refresh is running.
func (s *Store) Warm(ctx context.Context) {
	if s.mirror == nil {
		return
	}

	events, err := s.mirror.GetEvents(ctx)
	if err != nil {
		s.logger.Warnw("failed to read events mirror", "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loading || len(s.events) != 0 {
		return
	}
	for _, e := range events {
		s.events[e.ID] = normalized(e)
	}
	s.version++

	s.logger.Debugw("store warmed from mirror", "count", len(events))
}

// mirrorWrite must be called with mirrorMu held and releases it. Taking
// mirrorMu before s.mu is released keeps mirror writes in cache order.
func (s *Store) mirrorWrite(ctx context.Context, op string, fn func(ctx context.Context, m mirror) error) {
	defer s.mirrorMu.Unlock()

	if s.mirror == nil {
		return
	}

	if err := fn(ctx, s.mirror); err != nil {
		s.logger.Warnw("failed to write events mirror", "op", op, "err", err)
	}
}

func normalized(e *model.Event) *model.Event {
	c := e.Clone()
	c.Attendees = model.UniqueAttendees(c.Attendees)
	return c
}
