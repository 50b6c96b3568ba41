package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-sync/internal/database"
	"github.com/SergeyKozhin/events-sync/internal/model"
)

// Mirror keeps a copy of the cached collection in Postgres so that a restart
// can serve the last known events before the first refresh completes.
type Mirror struct {
	db   database.PGX
	repo *Repository
}

func NewMirror(db database.PGX, repo *Repository) *Mirror {
	return &Mirror{
		db:   db,
		repo: repo,
	}
}

func (m *Mirror) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecRaw(ctx, schema); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return nil
}

// ReplaceEvents swaps the stored collection for events in one transaction.
// Deletion-tagged records are skipped and a repeated id keeps its last record.
func (m *Mirror) ReplaceEvents(ctx context.Context, events []*model.Event) error {
	live := make([]*model.Event, 0, len(events))
	pos := make(map[string]int, len(events))
	for _, e := range events {
		if e == nil || e.ID == "" || e.Deleted {
			continue
		}
		if i, ok := pos[e.ID]; ok {
			live[i] = e
			continue
		}
		pos[e.ID] = len(live)
		live = append(live, e)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := m.repo.DeleteAll(ctx, tx); err != nil {
		return fmt.Errorf("delete events: %w", err)
	}
	if err := m.repo.UpsertEvents(ctx, tx, live); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}

	return tx.Commit(ctx)
}

func (m *Mirror) UpsertEvent(ctx context.Context, event *model.Event) error {
	return m.repo.UpsertEvents(ctx, m.db, []*model.Event{event})
}

func (m *Mirror) DeleteEvent(ctx context.Context, id string) error {
	return m.repo.DeleteEvent(ctx, m.db, id)
}

func (m *Mirror) GetEvents(ctx context.Context) ([]*model.Event, error) {
	return m.repo.GetEvents(ctx, m.db)
}
