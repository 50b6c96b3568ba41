package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/events-sync/internal/model"
)

func (a *Api) logError(_ *http.Request, err error) {
	a.logger.Errorw("server error", "error", err)
}

func (a *Api) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := a.writeJSON(w, status, &envelope{Message: message}, nil); err != nil {
		a.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *Api) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	a.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (a *Api) clientErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	a.logger.Debugw("client error", "err", message)
	a.errorResponse(w, r, status, message)
}

func (a *Api) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	a.clientErrorResponse(w, r, http.StatusNotFound, message)
}

func (a *Api) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	a.clientErrorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (a *Api) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.clientErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (a *Api) unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	a.clientErrorResponse(w, r, http.StatusUnauthorized, message)
}

func (a *Api) forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	a.clientErrorResponse(w, r, http.StatusForbidden, message)
}

func (a *Api) fileTooBigResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("file must not be larger than %d bytes", a.maxFileSize)
	a.clientErrorResponse(w, r, http.StatusRequestEntityTooLarge, message)
}

// failedResultResponse reports a failed core result. Local rejections are the
// caller's fault, everything else is an upstream problem.
func (a *Api) failedResultResponse(w http.ResponseWriter, r *http.Request, err error) {
	var resErr *model.ResultError
	if !errors.As(err, &resErr) {
		a.serverErrorResponse(w, r, err)
		return
	}

	switch {
	case errors.Is(err, model.ErrNotLoggedIn):
		a.unauthorizedResponse(w, r, resErr.Message)
	case errors.Is(err, model.ErrOwnEvent):
		a.forbiddenResponse(w, r, resErr.Message)
	case errors.Is(err, model.ErrNoRecord):
		a.clientErrorResponse(w, r, http.StatusNotFound, resErr.Message)
	case resErr.Kind == model.FailureLocal:
		a.clientErrorResponse(w, r, http.StatusBadRequest, resErr.Message)
	default:
		a.logger.Warnw("upstream failure", "kind", resErr.Kind, "message", resErr.Message)
		a.errorResponse(w, r, http.StatusBadGateway, resErr.Message)
	}
}
