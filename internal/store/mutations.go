package store

import (
	"context"
	"time"

	"github.com/SergeyKozhin/events-sync/internal/gateway"
	"github.com/SergeyKozhin/events-sync/internal/model"
)

const (
	MsgLoginToJoin = "Please login to join the event"
	MsgOwnEvent    = "You cannot join your own event"
	MsgNotFound    = "Event not found or has been deleted"
)

const (
	msgCanceled     = "the request was canceled"
	mutationTimeout = 30 * time.Second
)

const (
	opJoin   = "join"
	opLeave  = "leave"
	opDelete = "delete"
)

// Join adds the caller to the event attendees. It is rejected locally when
// the session has no credential or the caller organizes the event.
func (s *Store) Join(ctx context.Context, id string) model.Result[*model.Event] {
	if _, ok := s.session.Token(); !ok {
		return model.Rejected[*model.Event](model.ErrNotLoggedIn, MsgLoginToJoin)
	}

	if e, ok := s.Cached(id); ok {
		if userID := s.session.UserID(); userID != "" && e.Organizer == userID {
			return model.Rejected[*model.Event](model.ErrOwnEvent, MsgOwnEvent)
		}
	}

	return s.guard(ctx, opJoin, id, s.gateway.JoinEvent)
}

func (s *Store) Leave(ctx context.Context, id string) model.Result[*model.Event] {
	return s.guard(ctx, opLeave, id, s.gateway.LeaveEvent)
}

// Delete removes the event. Callers check that the session user organizes it.
func (s *Store) Delete(ctx context.Context, id string) model.Result[*model.Event] {
	return s.guard(ctx, opDelete, id, func(ctx context.Context, id string) model.Result[*model.Event] {
		res := s.gateway.DeleteEvent(ctx, id)
		if !res.OK() {
			return res
		}

		tomb := model.Tombstone(id)
		if res.Data() != nil {
			tomb = res.Data().Clone()
			tomb.ID = id
			tomb.Deleted = true
		}

		return model.Success(res.Message(), tomb)
	})
}

// Create validates the submission locally, then creates the event, refreshes
// the cache and announces the new record.
func (s *Store) Create(ctx context.Context, info *model.EventCreate) model.Result[*model.Event] {
	if msg, ok := s.validateCreate(info); !ok {
		return model.Rejected[*model.Event](model.ErrInvalidPayload, msg)
	}

	res := s.gateway.CreateEvent(ctx, info)
	if !res.OK() {
		return res
	}

	if refreshed := s.Refresh(ctx); !refreshed.OK() {
		s.logger.Warnw("refresh after create failed", "message", refreshed.Message())
	}
	s.commit(ctx, res.Data())

	return res
}

type mutation func(ctx context.Context, id string) model.Result[*model.Event]

// guard lets one (operation, event) call reach the server at a time. Callers
// arriving while it is in flight share its result. The shared call is detached
// from the caller that started it, so a caller giving up only returns early
// for itself.
func (s *Store) guard(ctx context.Context, op, id string, fn mutation) model.Result[*model.Event] {
	detached := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(op+":"+id, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(detached, mutationTimeout)
		defer cancel()

		res := fn(ctx, id)
		if res.OK() {
			s.commit(ctx, res.Data())
		}
		return res, nil
	})

	select {
	case r := <-ch:
		if r.Shared {
			s.logger.Debugw("joined in-flight request", "op", op, "id", id)
		}
		return r.Val.(model.Result[*model.Event])
	case <-ctx.Done():
		return model.Failure[*model.Event](model.FailureTransport, msgCanceled)
	}
}

// commit applies the server's record locally and announces it to the other
// clients. The channel does not echo, so both steps are needed.
func (s *Store) commit(ctx context.Context, record *model.Event) {
	if record == nil || record.ID == "" {
		return
	}

	s.ApplyNotification(ctx, record)

	payload, err := gateway.EncodeEvent(record)
	if err != nil {
		s.logger.Errorw("failed to encode notification", "id", record.ID, "err", err)
		return
	}

	if err := s.channel.Publish(ctx, s.topic, payload); err != nil {
		s.logger.Warnw("failed to publish notification", "id", record.ID, "err", err)
	}
}
