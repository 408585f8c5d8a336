package http

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-landing/document"
	landingcmd "github.com/goliatone/go-landing/internal/commands/landing"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/publishing"
)

type landingPageCreatePayload struct {
	UserID               *uuid.UUID `json:"user_id,omitempty"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	Tone                 string     `json:"tone,omitempty"`
	Language             string     `json:"language,omitempty"`
	TargetAudience       string     `json:"target_audience,omitempty"`
	ContentDocumentURL   string     `json:"content_document_url,omitempty"`
	WireframeURL         string     `json:"wireframe_url,omitempty"`
	DesignInspirationURL string     `json:"design_inspiration_url,omitempty"`
	SourceText           string     `json:"source_text,omitempty"`
}

func (p landingPageCreatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Length(0, 2000)),
	)
}

type landingPageUpdatePayload struct {
	Description          *string `json:"description,omitempty"`
	Tone                 *string `json:"tone,omitempty"`
	Language             *string `json:"language,omitempty"`
	TargetAudience       *string `json:"target_audience,omitempty"`
	ContentDocumentURL   *string `json:"content_document_url,omitempty"`
	WireframeURL         *string `json:"wireframe_url,omitempty"`
	DesignInspirationURL *string `json:"design_inspiration_url,omitempty"`
	SourceText           *string `json:"source_text,omitempty"`
}

type contentPayload struct {
	Content *document.Document `json:"content"`
}

type generatePayload struct {
	DocumentText   string `json:"document_text,omitempty"`
	Tone           string `json:"tone,omitempty"`
	Language       string `json:"language,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
}

type publishPayload struct {
	Credentials publishing.Credentials `json:"credentials"`
	Status      string                 `json:"status,omitempty"`
	Slug        string                 `json:"slug,omitempty"`
}

type publishResponse struct {
	Page      *landingpages.LandingPage `json:"page"`
	PublicURL string                    `json:"public_url,omitempty"`
}

type connectionResponse struct {
	Name string `json:"name"`
}

func (api *API) registerLandingPageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "landing-pages")
	mux.HandleFunc("GET "+root, api.handleList)
	mux.HandleFunc("POST "+root, api.handleCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleGet)
	mux.HandleFunc("PATCH "+root+"/{id}", api.handleUpdateSources)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleDelete)
	mux.HandleFunc("PUT "+root+"/{id}/content", api.handleSaveContent)
	mux.HandleFunc("POST "+root+"/{id}/generate", api.handleGenerate)
	mux.HandleFunc("GET "+root+"/{id}/preview", api.handlePreview)
	mux.HandleFunc("GET "+root+"/{id}/export", api.handleExport)
	mux.HandleFunc("POST "+root+"/{id}/publish", api.handlePublish)
	mux.HandleFunc("POST "+root+"/{id}/archive", api.handleArchive)
	mux.HandleFunc("POST "+joinPath(base, "wordpress/test"), api.handleWordPressTest)
}

func (api *API) handleList(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	owner := uuid.Nil
	if raw := strings.TrimSpace(r.URL.Query().Get("user_id")); raw != "" {
		parsed, err := parseUUID(raw)
		if err != nil {
			badRequest(w, "invalid user_id")
			return
		}
		owner = parsed
	}
	list, err := api.pages.List(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*landingpages.LandingPage{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	var payload landingPageCreatePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}
	owner := actorID(r)
	if payload.UserID != nil && *payload.UserID != uuid.Nil {
		owner = *payload.UserID
	}
	page, err := api.pages.Create(r.Context(), landingpages.CreateRequest{
		UserID:               owner,
		Title:                payload.Title,
		Description:          payload.Description,
		Tone:                 payload.Tone,
		Language:             payload.Language,
		TargetAudience:       payload.TargetAudience,
		ContentDocumentURL:   payload.ContentDocumentURL,
		WireframeURL:         payload.WireframeURL,
		DesignInspirationURL: payload.DesignInspirationURL,
		SourceText:           payload.SourceText,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (api *API) handleGet(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	api.respondWithPage(w, r, id, http.StatusOK)
}

func (api *API) handleUpdateSources(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload landingPageUpdatePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	page, err := api.pages.UpdateSources(r.Context(), landingpages.UpdateSourcesRequest{
		ID:                   id,
		ActorID:              actorID(r),
		Description:          payload.Description,
		Tone:                 payload.Tone,
		Language:             payload.Language,
		TargetAudience:       payload.TargetAudience,
		ContentDocumentURL:   payload.ContentDocumentURL,
		WireframeURL:         payload.WireframeURL,
		DesignInspirationURL: payload.DesignInspirationURL,
		SourceText:           payload.SourceText,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.pages.Delete(r.Context(), id, actorID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleSaveContent(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil || api.save == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload contentPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	if payload.Content == nil {
		badRequest(w, "content is required")
		return
	}
	err := api.save.Execute(r.Context(), landingcmd.SaveContentCommand{
		LandingPageID: id,
		ActorID:       actorID(r),
		Document:      *payload.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.respondWithPage(w, r, id, http.StatusOK)
}

func (api *API) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil || api.generate == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload generatePayload
	if err := decodeOptionalJSON(w, r, &payload); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	err := api.generate.Execute(r.Context(), landingcmd.GeneratePageCommand{
		LandingPageID:  id,
		ActorID:        actorID(r),
		DocumentText:   payload.DocumentText,
		Tone:           payload.Tone,
		Language:       payload.Language,
		TargetAudience: payload.TargetAudience,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.respondWithPage(w, r, id, http.StatusOK)
}

func (api *API) handlePreview(w http.ResponseWriter, r *http.Request) {
	if api.publisher == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	export, err := api.publisher.Export(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, export.HTML)
}

func (api *API) handleExport(w http.ResponseWriter, r *http.Request) {
	if api.publisher == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	export, err := api.publisher.Export(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	writeHTML(w, http.StatusOK, export.HTML)
}

func (api *API) handlePublish(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil || api.publish == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload publishPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	err := api.publish.Execute(r.Context(), landingcmd.PublishPageCommand{
		LandingPageID: id,
		ActorID:       actorID(r),
		Credentials:   payload.Credentials,
		Status:        payload.Status,
		Slug:          payload.Slug,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := api.pages.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response := publishResponse{Page: page}
	if api.publisher != nil {
		if url, err := api.publisher.PublicURL(page.Slug); err == nil {
			response.PublicURL = url
		}
	}
	writeJSON(w, http.StatusOK, response)
}

func (api *API) handleArchive(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		unavailable(w)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	page, err := api.pages.Archive(r.Context(), id, actorID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *API) handleWordPressTest(w http.ResponseWriter, r *http.Request) {
	if api.publisher == nil {
		unavailable(w)
		return
	}
	var creds publishing.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	user, err := api.publisher.TestConnection(r.Context(), creds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, connectionResponse{Name: user.Name})
}

func (api *API) respondWithPage(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int) {
	page, err := api.pages.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, page)
}
