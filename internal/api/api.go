package api

import (
	"context"
	"net/http"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler     http.Handler
	logger      *zap.SugaredLogger
	maxFileSize int64

	store   eventsStore
	session session
	images  imageResolver
}

type eventsStore interface {
	Events() []*model.Event
	Cached(id string) (*model.Event, bool)
	Event(ctx context.Context, id string) model.Result[*model.Event]
	Loading() bool
	Refresh(ctx context.Context) model.Result[[]*model.Event]
	Create(ctx context.Context, info *model.EventCreate) model.Result[*model.Event]
	Join(ctx context.Context, id string) model.Result[*model.Event]
	Leave(ctx context.Context, id string) model.Result[*model.Event]
	Delete(ctx context.Context, id string) model.Result[*model.Event]
}

type session interface {
	Token() (string, bool)
	UserID() string
	Profile() model.Profile
}

type imageResolver interface {
	ImageURL(image string) string
}

func NewApi(
	logger *zap.SugaredLogger,
	maxFileSize int64,
	store eventsStore,
	session session,
	images imageResolver,
) *Api {
	a := &Api{
		logger:      logger,
		maxFileSize: maxFileSize,
		store:       store,
		session:     session,
		images:      images,
	}
	a.setupHandler()

	return a
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", a.getEventsHandler)
		r.Post("/", a.createEventHandler)
		r.Post("/refresh", a.refreshEventsHandler)

		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", a.getEventHandler)
			r.Post("/join", a.joinEventHandler)
			r.Post("/leave", a.leaveEventHandler)
			r.With(a.loggedIn, a.organizerOnly).Delete("/", a.deleteEventHandler)
		})
	})

	r.With(a.loggedIn).Get("/me", a.getProfileHandler)

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
