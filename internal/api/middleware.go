package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const contextKeyEvent = contextKey("event")

const (
	msgLoginRequired = "Please login to continue"
	msgOrganizerOnly = "Only the organizer can delete this event"
)

var errCantRetrieveEvent = errors.New("can't retrieve event")

func (a *Api) loggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.session.Token(); !ok {
			a.unauthorizedResponse(w, r, msgLoginRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// organizerOnly resolves the event and lets only its organizer through.
func (a *Api) organizerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := a.store.Event(r.Context(), chi.URLParam(r, "eventID"))
		if !res.OK() {
			a.failedResultResponse(w, r, res.Err())
			return
		}

		event := res.Data()
		if userID := a.session.UserID(); userID == "" || event.Organizer != userID {
			a.forbiddenResponse(w, r, msgOrganizerOnly)
			return
		}

		eventCtx := context.WithValue(r.Context(), contextKeyEvent, event)
		next.ServeHTTP(w, r.WithContext(eventCtx))
	})
}

func eventFromContext(ctx context.Context) (*model.Event, bool) {
	e, ok := ctx.Value(contextKeyEvent).(*model.Event)
	return e, ok
}
