package api

import "net/http"

func (a *Api) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	p := a.session.Profile()
	a.writeSuccess(w, r, http.StatusOK, "", &profileResp{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
	})
}
