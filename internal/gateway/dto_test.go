package gateway

import (
	"testing"
	"time"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent_UserReferences(t *testing.T) {
	tests := []struct {
		name      string
		organizer string
		want      string
	}{
		{"bare id", `"u1"`, "u1"},
		{"populated object", `{"_id": "u1", "name": "Ann"}`, "u1"},
		{"plain id field", `{"id": "u1"}`, "u1"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := DecodeEvent([]byte(`{"_id": "e1", "organizer": ` + tt.organizer + `}`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Organizer)
		})
	}
}

func TestDecodeEvent_Errors(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"name": "x"}`))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"_id": "e1", "date": "first of may"}`))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeEvent_Tombstone(t *testing.T) {
	e, err := DecodeEvent([]byte(`{"_id": "e1", "isDeleted": true}`))
	require.NoError(t, err)

	assert.True(t, e.Deleted)
	assert.True(t, e.Date.IsZero())
	assert.Nil(t, e.Attendees)
}

func TestEncodeDecodeEvent(t *testing.T) {
	in := &model.Event{
		ID:          "e1",
		Name:        "Food Fest",
		Description: "Street food",
		Location:    "Park",
		Category:    model.CategoryFood,
		Date:        time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Time:        "12:00",
		Image:       "food.jpg",
		Organizer:   "u1",
		Attendees:   []string{"u2", "u3"},
		CreatedAt:   time.Date(2025, 4, 2, 8, 30, 0, 0, time.UTC),
	}

	b, err := EncodeEvent(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"_id":"e1"`)
	assert.Contains(t, string(b), `"date":"2025-05-02"`)
	assert.NotContains(t, string(b), "isDeleted")

	out, err := DecodeEvent(b)
	require.NoError(t, err)
	assert.True(t, in.Equal(out))
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-05-01T23:30:00+00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2025-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
