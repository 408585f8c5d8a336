package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/workspace"
)

type openSessionPayload struct {
	LandingPageID uuid.UUID `json:"landing_page_id"`
}

type previewResponse struct {
	Revision uint64 `json:"revision"`
	HTML     string `json:"html"`
}

func (api *API) registerSessionRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "sessions")
	mux.HandleFunc("POST "+root, api.handleOpenSession)
	mux.HandleFunc("GET "+root+"/{id}", api.handleSessionState)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleCloseSession)
	mux.HandleFunc("POST "+root+"/{id}/operations", api.handleApplyOperation)
	mux.HandleFunc("GET "+root+"/{id}/preview", api.handleSessionPreview)
	mux.HandleFunc("POST "+root+"/{id}/save", api.handleSaveSession)
}

func (api *API) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	if api.workspaces == nil {
		unavailable(w)
		return
	}
	var payload openSessionPayload
	if err := decodeJSON(w, r, &payload); err != nil || payload.LandingPageID == uuid.Nil {
		badRequest(w, "landing_page_id is required")
		return
	}
	ws, err := api.workspaces.Open(r.Context(), payload.LandingPageID, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws.State())
}

func (api *API) handleSessionState(w http.ResponseWriter, r *http.Request) {
	if api.workspaces == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ws, err := api.workspaces.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws.State())
}

// handleCloseSession flushes unsaved work unless flush=false.
func (api *API) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if api.workspaces == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	flush := r.URL.Query().Get("flush") != "false"
	if err := api.workspaces.Close(r.Context(), id, flush); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleApplyOperation(w http.ResponseWriter, r *http.Request) {
	if api.workspaces == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var op workspace.Operation
	if err := decodeJSON(w, r, &op); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	state, err := api.workspaces.Apply(id, op)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (api *API) handleSessionPreview(w http.ResponseWriter, r *http.Request) {
	if api.workspaces == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	frame, err := api.workspaces.Preview(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, previewResponse{Revision: frame.Revision, HTML: frame.HTML})
		return
	}
	writeHTML(w, http.StatusOK, frame.HTML)
}

func (api *API) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	if api.workspaces == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	state, err := api.workspaces.Save(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
