package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SergeyKozhin/events-sync/internal/model"
)

const DateFormat = "2006-01-02"

type SortField int

const (
	SortByCreated SortField = iota
	SortByDate
)

func ParseSortField(v string) (SortField, error) {
	switch strings.ToLower(v) {
	case "", "created", "createdat":
		return SortByCreated, nil
	case "date":
		return SortByDate, nil
	default:
		return 0, fmt.Errorf("unknown sort field %q", v)
	}
}

type Order int

const (
	Descending Order = iota
	Ascending
)

func ParseOrder(v string) (Order, error) {
	switch strings.ToLower(v) {
	case "", "desc":
		return Descending, nil
	case "asc":
		return Ascending, nil
	default:
		return 0, fmt.Errorf("unknown order %q", v)
	}
}

// Criteria selects and orders events. Zero values mean "any": the zero
// Criteria lists everything, newest created first.
type Criteria struct {
	Text     string
	Category model.Category
	Date     time.Time
	SortBy   SortField
	Order    Order
}

// Apply returns the matching events in the requested order. The input is not
// modified and the result never aliases it.
func Apply(events []*model.Event, c Criteria) []*model.Event {
	text := strings.ToLower(strings.TrimSpace(c.Text))

	res := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if e == nil || e.Deleted {
			continue
		}
		if text != "" && !matchesText(e, text) {
			continue
		}
		if c.Category != "" && e.Category != c.Category {
			continue
		}
		if !c.Date.IsZero() && !sameDay(e.Date, c.Date) {
			continue
		}
		res = append(res, e.Clone())
	}

	sort.SliceStable(res, func(i, j int) bool {
		if c.Order == Ascending {
			return less(res[i], res[j], c.SortBy)
		}
		return less(res[j], res[i], c.SortBy)
	})

	return res
}

func matchesText(e *model.Event, text string) bool {
	return strings.Contains(strings.ToLower(e.Name), text) ||
		strings.Contains(strings.ToLower(e.Description), text)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// less is a total order: the sort key first, then the other timestamps, then id.
func less(a, b *model.Event, by SortField) bool {
	switch by {
	case SortByDate:
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
	}

	return a.ID < b.ID
}
