package model

import (
	"slices"
	"time"
)

type Category string

const (
	CategoryMusic      Category = "Music"
	CategorySports     Category = "Sports"
	CategoryFood       Category = "Food"
	CategoryTravel     Category = "Travel"
	CategoryEducation  Category = "Education"
	CategoryBusiness   Category = "Business"
	CategoryHealth     Category = "Health"
	CategoryFashion    Category = "Fashion"
	CategoryTechnology Category = "Technology"
	CategoryArt        Category = "Art"
	CategoryScience    Category = "Science"
	CategoryOther      Category = "Other"
)

var Categories = []Category{
	CategoryMusic,
	CategorySports,
	CategoryFood,
	CategoryTravel,
	CategoryEducation,
	CategoryBusiness,
	CategoryHealth,
	CategoryFashion,
	CategoryTechnology,
	CategoryArt,
	CategoryScience,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Event is the cached copy of a server-side event record.
// Date holds the calendar date at midnight UTC, Time is the clock time as the
// organizer entered it.
type Event struct {
	ID          string
	Name        string
	Description string
	Location    string
	Category    Category
	Date        time.Time
	Time        string
	Image       string
	Organizer   string
	Attendees   []string
	CreatedAt   time.Time
	Deleted     bool
}

func (e *Event) HasAttendee(userID string) bool {
	for _, a := range e.Attendees {
		if a == userID {
			return true
		}
	}
	return false
}

// Equal reports whether both records carry the same state.
func (e *Event) Equal(o *Event) bool {
	return e.ID == o.ID &&
		e.Name == o.Name &&
		e.Description == o.Description &&
		e.Location == o.Location &&
		e.Category == o.Category &&
		e.Date.Equal(o.Date) &&
		e.Time == o.Time &&
		e.Image == o.Image &&
		e.Organizer == o.Organizer &&
		slices.Equal(e.Attendees, o.Attendees) &&
		e.CreatedAt.Equal(o.CreatedAt) &&
		e.Deleted == o.Deleted
}

func (e *Event) Clone() *Event {
	c := *e
	if e.Attendees != nil {
		c.Attendees = make([]string, len(e.Attendees))
		copy(c.Attendees, e.Attendees)
	}
	return &c
}

// UniqueAttendees drops empty and repeated ids, keeping first occurrences.
func UniqueAttendees(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

// Tombstone returns a deletion-tagged record for the given event.
func Tombstone(id string) *Event {
	return &Event{ID: id, Deleted: true}
}

type Upload struct {
	Filename string
	Content  []byte
}

// EventCreate is the create-event submission. Every field is mandatory.
type EventCreate struct {
	Name        string   `validate:"required"`
	Date        string   `validate:"required,datetime=2006-01-02"`
	Time        string   `validate:"required"`
	Location    string   `validate:"required"`
	Category    Category `validate:"required,category"`
	Description string   `validate:"required"`
	Image       *Upload  `validate:"required"`
}

type Profile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Credentials struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	BrowserID string `json:"browserId,omitempty"`
}

type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"cpassword"`
	BrowserID       string `json:"browserId,omitempty"`
}

type LoginData struct {
	AccessToken string  `json:"accessToken"`
	User        Profile `json:"user"`
}
