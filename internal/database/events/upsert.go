package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/events-sync/internal/database"
	"github.com/SergeyKozhin/events-sync/internal/model"
)

var upsertSuffix = func() string {
	set := make([]string, 0, len(columns))
	for _, c := range columns[1:] {
		set = append(set, c+" = excluded."+c)
	}
	set = append(set, "synced_at = now()")

	return "on conflict (id) do update set " + strings.Join(set, ", ")
}()

func upsertQuery(events []*model.Event) squirrel.InsertBuilder {
	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(columns...)
	for _, e := range events {
		qb = qb.Values(values(e)...)
	}

	return qb.Suffix(upsertSuffix)
}

func (*Repository) UpsertEvents(ctx context.Context, q database.Queryable, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	if _, err := q.Exec(ctx, upsertQuery(events)); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
