package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyKozhin/events-sync/internal/model"
)

const dateFormat = "2006-01-02"

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type eventDTO struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Category    string       `json:"category"`
	Date        string       `json:"date"`
	Time        string       `json:"time"`
	Image       string       `json:"image"`
	Organizer   userRefDTO   `json:"organizer"`
	Attendees   []userRefDTO `json:"attendees"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	IsDeleted   bool         `json:"isDeleted,omitempty"`
}

// userRefDTO is a user reference that the server sends either as a bare id
// or as a populated user object.
type userRefDTO string

func (u *userRefDTO) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*u = ""
		return nil
	}

	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*u = userRefDTO(id)
		return nil
	}

	obj := &struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}{}
	if err := json.Unmarshal(b, obj); err != nil {
		return fmt.Errorf("user reference: %w", err)
	}

	if obj.MongoID != "" {
		*u = userRefDTO(obj.MongoID)
	} else {
		*u = userRefDTO(obj.ID)
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		t, err = time.Parse(dateFormat, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q", v)
		}
	}

	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func mapToEvent(dto *eventDTO) (*model.Event, error) {
	date, err := parseDate(dto.Date)
	if err != nil {
		return nil, err
	}

	attendees := make([]string, len(dto.Attendees))
	for i, a := range dto.Attendees {
		attendees[i] = string(a)
	}

	var createdAt time.Time
	if dto.CreatedAt != nil {
		createdAt = dto.CreatedAt.UTC()
	}

	return &model.Event{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Location:    dto.Location,
		Category:    model.Category(dto.Category),
		Date:        date,
		Time:        dto.Time,
		Image:       dto.Image,
		Organizer:   string(dto.Organizer),
		Attendees:   model.UniqueAttendees(attendees),
		CreatedAt:   createdAt,
		Deleted:     dto.IsDeleted,
	}, nil
}

func mapToEventDTO(e *model.Event) *eventDTO {
	dto := &eventDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		Category:    string(e.Category),
		Time:        e.Time,
		Image:       e.Image,
		Organizer:   userRefDTO(e.Organizer),
		Attendees:   make([]userRefDTO, len(e.Attendees)),
		IsDeleted:   e.Deleted,
	}

	if !e.Date.IsZero() {
		dto.Date = e.Date.Format(dateFormat)
	}
	if !e.CreatedAt.IsZero() {
		createdAt := e.CreatedAt
		dto.CreatedAt = &createdAt
	}
	for i, a := range e.Attendees {
		dto.Attendees[i] = userRefDTO(a)
	}

	return dto
}

// EncodeEvent renders an event in the server's wire format. It is the
// payload format of the notification channel.
func EncodeEvent(e *model.Event) ([]byte, error) {
	return json.Marshal(mapToEventDTO(e))
}

func DecodeEvent(b []byte) (*model.Event, error) {
	dto := &eventDTO{}
	if err := json.Unmarshal(b, dto); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if dto.ID == "" {
		return nil, fmt.Errorf("decode event: missing _id")
	}

	return mapToEvent(dto)
}
