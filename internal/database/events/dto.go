package events

import (
	"time"

	"github.com/SergeyKozhin/events-sync/internal/model"
)

type eventDTO struct {
	ID          string
	Name        string
	Description string
	Location    string
	Category    string
	Date        *time.Time
	Time        string
	Image       string
	Organizer   string
	Attendees   []string
	CreatedAt   *time.Time
}

func mapToEvent(dto *eventDTO) *model.Event {
	e := &model.Event{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Location:    dto.Location,
		Category:    model.Category(dto.Category),
		Time:        dto.Time,
		Image:       dto.Image,
		Organizer:   dto.Organizer,
		Attendees:   model.UniqueAttendees(dto.Attendees),
	}
	if dto.Date != nil {
		y, m, d := dto.Date.Date()
		e.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if dto.CreatedAt != nil {
		e.CreatedAt = dto.CreatedAt.UTC()
	}

	return e
}

// values returns the row in columns order.
func values(e *model.Event) []interface{} {
	var date, createdAt *time.Time
	if !e.Date.IsZero() {
		d := e.Date
		date = &d
	}
	if !e.CreatedAt.IsZero() {
		c := e.CreatedAt
		createdAt = &c
	}

	attendees := e.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	return []interface{}{
		e.ID,
		e.Name,
		e.Description,
		e.Location,
		string(e.Category),
		date,
		e.Time,
		e.Image,
		e.Organizer,
		attendees,
		createdAt,
	}
}
