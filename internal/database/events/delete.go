package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/events-sync/internal/database"
)

func (*Repository) DeleteEvent(ctx context.Context, q database.Queryable, id string) error {
	qb := database.PSQL.
		Delete(database.EventsTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteAll(ctx context.Context, q database.Queryable) error {
	if _, err := q.Exec(ctx, database.PSQL.Delete(database.EventsTable)); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
