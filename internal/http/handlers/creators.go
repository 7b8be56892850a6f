package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CreatorProfile serves the public donation page data for a username.
func (a *App) CreatorProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.Ledger.GetPublicProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toProfileDTO(profile))
}
