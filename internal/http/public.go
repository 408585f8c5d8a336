package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-landing/internal/assets"
)

func (api *API) registerPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /p/{slug}", api.handlePublicPage)
	mux.HandleFunc("GET "+strings.TrimSuffix(assets.PublicPathPrefix, "/")+"/{bucket}/{path...}", api.handleObject)
}

func (api *API) handlePublicPage(w http.ResponseWriter, r *http.Request) {
	if api.publisher == nil {
		unavailable(w)
		return
	}
	html, err := api.publisher.Public(r.Context(), r.PathValue("slug"))
	if err != nil {
		status, payload := mapError(err)
		if status == http.StatusNotFound {
			writeHTML(w, status, "<!DOCTYPE html><title>Not found</title><h1>Page not found</h1>")
			return
		}
		writeJSON(w, status, payload)
		return
	}
	writeHTML(w, http.StatusOK, html)
}
