package view

import (
	"testing"
	"time"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func names(events []*model.Event) []string {
	res := make([]string, len(events))
	for i, e := range events {
		res[i] = e.Name
	}
	return res
}

func festival() []*model.Event {
	return []*model.Event{
		{
			ID:          "e1",
			Name:        "Jazz Night",
			Description: "Live music downtown",
			Category:    model.CategoryMusic,
			Date:        day(2025, 5, 1),
			CreatedAt:   time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          "e2",
			Name:        "Food Fest",
			Description: "Street food and a little JAZZ band",
			Category:    model.CategoryFood,
			Date:        day(2025, 5, 2),
			CreatedAt:   time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestApply_Text(t *testing.T) {
	events := festival()
	events[1].Description = "Street food"

	assert.Equal(t, []string{"Jazz Night"}, names(Apply(events, Criteria{Text: "jazz"})))
	assert.Equal(t, []string{"Jazz Night"}, names(Apply(events, Criteria{Text: "  JAZZ "})))
}

func TestApply_TextMatchesDescription(t *testing.T) {
	got := Apply(festival(), Criteria{Text: "jazz", SortBy: SortByDate, Order: Ascending})
	assert.Equal(t, []string{"Jazz Night", "Food Fest"}, names(got))
}

func TestApply_Category(t *testing.T) {
	assert.Equal(t, []string{"Food Fest"}, names(Apply(festival(), Criteria{Category: model.CategoryFood})))
	assert.Empty(t, Apply(festival(), Criteria{Category: model.CategoryArt}))
}

func TestApply_Date(t *testing.T) {
	got := Apply(festival(), Criteria{Date: time.Date(2025, 5, 2, 15, 30, 0, 0, time.UTC)})
	assert.Equal(t, []string{"Food Fest"}, names(got))

	got = Apply(festival(), Criteria{Date: day(2030, 1, 1)})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_Combined(t *testing.T) {
	got := Apply(festival(), Criteria{Text: "jazz", Category: model.CategoryFood, Date: day(2025, 5, 2)})
	assert.Equal(t, []string{"Food Fest"}, names(got))
}

func TestApply_SortByDate(t *testing.T) {
	events := []*model.Event{
		{ID: "b", Name: "B", Date: day(2024, 2, 1)},
		{ID: "a", Name: "A", Date: day(2024, 1, 1)},
	}

	assert.Equal(t, []string{"A", "B"}, names(Apply(events, Criteria{SortBy: SortByDate, Order: Ascending})))
	assert.Equal(t, []string{"B", "A"}, names(Apply(events, Criteria{SortBy: SortByDate, Order: Descending})))
}

func TestApply_DefaultNewestFirst(t *testing.T) {
	assert.Equal(t, []string{"Food Fest", "Jazz Night"}, names(Apply(festival(), Criteria{})))
}

func TestApply_TieBreak(t *testing.T) {
	events := []*model.Event{
		{ID: "c", Name: "C", Date: day(2024, 1, 1), Time: "18:00"},
		{ID: "b", Name: "B", Date: day(2024, 1, 1), Time: "09:00"},
		{ID: "a", Name: "A", Date: day(2024, 1, 1), Time: "18:00"},
	}

	assert.Equal(t, []string{"B", "A", "C"}, names(Apply(events, Criteria{SortBy: SortByDate, Order: Ascending})))
	assert.Equal(t, []string{"C", "A", "B"}, names(Apply(events, Criteria{SortBy: SortByDate})))
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	events := festival()

	got := Apply(events, Criteria{})
	require.Len(t, got, 2)
	assert.Equal(t, "e1", events[0].ID)

	got[0].Name = "changed"
	assert.Equal(t, "Food Fest", events[1].Name)
}

func TestApply_SkipsDeleted(t *testing.T) {
	events := festival()
	events[0].Deleted = true
	events = append(events, nil)

	assert.Equal(t, []string{"Food Fest"}, names(Apply(events, Criteria{})))
}

func TestApply_Empty(t *testing.T) {
	got := Apply(nil, Criteria{Text: "jazz"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByCreated, f)

	f, err = ParseSortField("Date")
	require.NoError(t, err)
	assert.Equal(t, SortByDate, f)

	_, err = ParseSortField("name")
	assert.Error(t, err)
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, Descending, o)

	o, err = ParseOrder("ASC")
	require.NoError(t, err)
	assert.Equal(t, Ascending, o)

	_, err = ParseOrder("up")
	assert.Error(t, err)
}
