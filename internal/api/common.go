package api

import (
	"time"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/SergeyKozhin/events-sync/internal/view"
)

type eventResp struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	Category      string     `json:"category"`
	Date          string     `json:"date,omitempty"`
	Time          string     `json:"time"`
	Image         string     `json:"image,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Organizer     string     `json:"organizer"`
	Attendees     []string   `json:"attendees"`
	AttendeeCount int        `json:"attendeeCount"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	Joined        bool       `json:"joined"`
	Organizing    bool       `json:"organizing"`
}

type profileResp struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (a *Api) mapToEventResp(e *model.Event) *eventResp {
	userID := a.session.UserID()

	resp := &eventResp{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Location:      e.Location,
		Category:      string(e.Category),
		Time:          e.Time,
		Image:         e.Image,
		Organizer:     e.Organizer,
		Attendees:     e.Attendees,
		AttendeeCount: len(e.Attendees),
		Joined:        userID != "" && e.HasAttendee(userID),
		Organizing:    userID != "" && e.Organizer == userID,
	}
	if resp.Attendees == nil {
		resp.Attendees = []string{}
	}
	if !e.Date.IsZero() {
		resp.Date = e.Date.Format(view.DateFormat)
	}
	if e.Image != "" {
		resp.ImageURL = a.images.ImageURL(e.Image)
	}
	if !e.CreatedAt.IsZero() {
		createdAt := e.CreatedAt
		resp.CreatedAt = &createdAt
	}

	return resp
}

func (a *Api) eventData(e *model.Event) interface{} {
	if e == nil {
		return nil
	}
	return a.mapToEventResp(e)
}

func (a *Api) eventsData(events []*model.Event) interface{} {
	return mapSlice(events, a.mapToEventResp)
}
