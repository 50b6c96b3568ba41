package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/SergeyKozhin/events-sync/internal/view"
	"github.com/go-chi/chi/v5"
)

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseEventsQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	events := view.Apply(a.store.Events(), *criteria)

	headers := http.Header{}
	if a.store.Loading() {
		headers.Set("X-Events-Loading", "true")
	}
	if err := a.writeJSON(w, http.StatusOK, &envelope{Success: true, Data: a.eventsData(events)}, headers); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	res := a.store.Event(r.Context(), chi.URLParam(r, "eventID"))
	writeResult(a, w, r, http.StatusOK, res, a.eventData)
}

func (a *Api) refreshEventsHandler(w http.ResponseWriter, r *http.Request) {
	res := a.store.Refresh(r.Context())
	writeResult(a, w, r, http.StatusOK, res, func([]*model.Event) interface{} {
		return a.eventsData(view.Apply(a.store.Events(), view.Criteria{}))
	})
}

func (a *Api) joinEventHandler(w http.ResponseWriter, r *http.Request) {
	res := a.store.Join(r.Context(), chi.URLParam(r, "eventID"))
	writeResult(a, w, r, http.StatusOK, res, a.eventData)
}

func (a *Api) leaveEventHandler(w http.ResponseWriter, r *http.Request) {
	res := a.store.Leave(r.Context(), chi.URLParam(r, "eventID"))
	writeResult(a, w, r, http.StatusOK, res, a.eventData)
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	event, ok := eventFromContext(r.Context())
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveEvent)
		return
	}

	res := a.store.Delete(r.Context(), event.ID)
	writeResult(a, w, r, http.StatusOK, res, func(*model.Event) interface{} {
		return nil
	})
}

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	info, err := a.readEventCreate(w, r)
	if err != nil {
		if errors.Is(err, errFileTooBig) {
			a.fileTooBigResponse(w, r)
			return
		}
		a.badRequestResponse(w, r, err)
		return
	}

	res := a.store.Create(r.Context(), info)
	writeResult(a, w, r, http.StatusCreated, res, a.eventData)
}

func parseEventsQuery(r *http.Request) (*view.Criteria, error) {
	var err error

	q := r.URL.Query()
	res := &view.Criteria{
		Text: q.Get("search"),
	}

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		res.Category = model.Category(v)
		if !res.Category.Valid() {
			return nil, fmt.Errorf("unknown category %q", v)
		}
	}

	if v := q.Get("date"); v != "" {
		res.Date, err = time.Parse(view.DateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD")
		}
	}

	if res.SortBy, err = view.ParseSortField(q.Get("sort")); err != nil {
		return nil, err
	}
	if res.Order, err = view.ParseOrder(q.Get("order")); err != nil {
		return nil, err
	}

	return res, nil
}
