package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/events-sync/internal/config"
	"github.com/SergeyKozhin/events-sync/internal/database"
	"github.com/SergeyKozhin/events-sync/internal/database/events"
	"github.com/SergeyKozhin/events-sync/internal/gateway"
	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/SergeyKozhin/events-sync/internal/notifications"
	"github.com/SergeyKozhin/events-sync/internal/redis"
	"github.com/SergeyKozhin/events-sync/internal/session"
	"github.com/SergeyKozhin/events-sync/internal/store"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

type app struct {
	logger  *zap.SugaredLogger
	session *session.Session
	gateway *gateway.Gateway
	store   *store.Store
}

type channel interface {
	Subscribe(ctx context.Context, topic string, h notifications.Handler) (*notifications.Subscription, error)
	Publish(ctx context.Context, topic string, payload []byte) error
	Close() error
}

func newGateway(logger *zap.SugaredLogger, sess *session.Session) *gateway.Gateway {
	return gateway.New(logger, &http.Client{}, config.ApiURL(), sess)
}

// newApp wires the store. A one-shot app gets a detached in-process channel
// and no mirror.
func newApp(ctx context.Context, logger *zap.SugaredLogger, sess *session.Session, serving bool) (*app, error) {
	gw := newGateway(logger, sess)

	var ch channel = notifications.NewHub().Connect()
	if serving {
		var err error
		if ch, err = newChannel(logger); err != nil {
			return nil, err
		}
	}
	closer.Bind(func() {
		if err := ch.Close(); err != nil {
			logger.Errorw("Failed closing notification channel", "err", err)
		}
	})

	var mirror *events.Mirror
	if serving && config.PostgresURL() != "" {
		db, err := database.NewPGX(ctx, config.PostgresURL())
		if err != nil {
			return nil, fmt.Errorf("unable to initializae db: %w", err)
		}
		mirror = events.NewMirror(db, events.NewRepository())
		if err := mirror.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("prepare mirror: %w", err)
		}
	}

	var s *store.Store
	if mirror != nil {
		s = store.NewStore(logger, gw, ch, sess, mirror, config.ChannelTopic())
	} else {
		// a nil *events.Mirror would not compare equal to a nil interface
		s = store.NewStore(logger, gw, ch, sess, nil, config.ChannelTopic())
	}

	return &app{
		logger:  logger,
		session: sess,
		gateway: gw,
		store:   s,
	}, nil
}

func newChannel(logger *zap.SugaredLogger) (channel, error) {
	switch config.ChannelDriver() {
	case config.ChannelDriverMemory:
		logger.Infow("Using in-process notification channel, other clients will not be reached")
		return notifications.NewHub().Connect(), nil
	default:
		ch, err := notifications.NewRedisChannel(logger, redis.NewRedisPool(logger))
		if err != nil {
			return nil, fmt.Errorf("unable to initializae redis channel: %w", err)
		}
		return ch, nil
	}
}

// loadProfile fills the session identity from the server when a credential is
// configured.
func (a *app) loadProfile(ctx context.Context) {
	if _, ok := a.session.Token(); !ok {
		a.logger.Infow("No API token configured, joining is disabled")
		return
	}

	a.applyProfile(a.gateway.ProfileDetails(ctx))
}

// applyProfile keeps the token identity when the profile is unavailable.
func (a *app) applyProfile(res model.Result[*model.Profile]) {
	if !res.OK() {
		a.logger.Warnw("Failed loading profile, using token identity",
			"kind", res.Kind(), "message", res.Message(), "user", a.session.UserID())
		return
	}

	if res.Data() == nil {
		return
	}

	profile := *res.Data()
	if profile.ID == "" {
		profile.ID = a.session.UserID()
	}
	a.session.SetProfile(profile)
}
