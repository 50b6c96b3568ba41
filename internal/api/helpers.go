package api

import (
	"encoding/json"
	"net/http"

	"github.com/SergeyKozhin/events-sync/internal/model"
)

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

func (a *Api) writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (a *Api) writeSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	if err := a.writeJSON(w, status, &envelope{Success: true, Message: message, Data: data}, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// writeResult writes res as an envelope, mapping successful data with mapFn.
func writeResult[T any](a *Api, w http.ResponseWriter, r *http.Request, status int, res model.Result[T], mapFn func(T) interface{}) {
	if !res.OK() {
		a.failedResultResponse(w, r, res.Err())
		return
	}

	a.writeSuccess(w, r, status, res.Message(), mapFn(res.Data()))
}

func mapSlice[A any, B any](from []A, mapFn func(A) B) []B {
	res := make([]B, len(from))
	for i, el := range from {
		res[i] = mapFn(el)
	}

	return res
}
