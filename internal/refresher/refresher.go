package refresher

import (
	"context"
	"time"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"go.uber.org/zap"
)

// Refresher periodically reloads the whole collection so that records missed
// by the notification channel are eventually picked up.
type Refresher struct {
	logger *zap.SugaredLogger
	store  eventsStore
	period time.Duration
}

type eventsStore interface {
	Refresh(ctx context.Context) model.Result[[]*model.Event]
}

func NewRefresher(logger *zap.SugaredLogger, store eventsStore, period time.Duration) *Refresher {
	return &Refresher{
		logger: logger,
		store:  store,
		period: period,
	}
}

// Start blocks until ctx is done. A non-positive period disables refreshing.
func (r *Refresher) Start(ctx context.Context) error {
	if r.period <= 0 {
		r.logger.Infow("periodic refresh disabled")
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	res := r.store.Refresh(ctx)
	if !res.OK() {
		if ctx.Err() != nil {
			return
		}
		r.logger.Warnw("periodic refresh failed", "kind", res.Kind(), "message", res.Message())
		return
	}

	r.logger.Debugw("periodic refresh", "count", len(res.Data()))
}
