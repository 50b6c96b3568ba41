package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-sync/internal/database"
	"github.com/SergeyKozhin/events-sync/internal/model"
)

func (*Repository) GetEvents(ctx context.Context, q database.Queryable) ([]*model.Event, error) {
	qb := baseQuery.OrderBy("id")

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}
