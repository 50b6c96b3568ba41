package events

import (
	"testing"
	"time"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertQuery(t *testing.T) {
	e := &model.Event{
		ID:        "e1",
		Name:      "Jazz Night",
		Category:  model.CategoryMusic,
		Date:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Organizer: "u1",
	}

	sql, args, err := upsertQuery([]*model.Event{e, {ID: "e2"}}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO events_snapshot (id,name,description,location,category,date,time,image,organizer,attendees,created_at)")
	assert.Contains(t, sql, "($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11),($12,")
	assert.Contains(t, sql, "on conflict (id) do update set name = excluded.name,")
	assert.Contains(t, sql, "synced_at = now()")
	require.Len(t, args, 2*len(columns))

	assert.Equal(t, "e1", args[0])
	assert.Equal(t, "Music", args[4])
	assert.Equal(t, []string{}, args[9])
	assert.Nil(t, args[10])
	assert.Nil(t, args[len(columns)+5])
}

func TestBaseQuery(t *testing.T) {
	sql, args, err := baseQuery.OrderBy("id").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, name, description, location, category, date, time, image, organizer, attendees, created_at FROM events_snapshot ORDER BY id", sql)
	assert.Empty(t, args)
}

func TestMapToEvent(t *testing.T) {
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local)
	createdAt := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	e := mapToEvent(&eventDTO{
		ID:        "e1",
		Category:  "Music",
		Date:      &date,
		Attendees: []string{"u2", "u2"},
		CreatedAt: &createdAt,
	})

	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), e.Date)
	assert.Equal(t, model.CategoryMusic, e.Category)
	assert.Equal(t, []string{"u2"}, e.Attendees)
	assert.Equal(t, createdAt, e.CreatedAt)

	empty := mapToEvent(&eventDTO{ID: "e2"})
	assert.True(t, empty.Date.IsZero())
	assert.Nil(t, empty.Attendees)
}
