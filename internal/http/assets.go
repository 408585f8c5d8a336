package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/assets"
	"github.com/goliatone/go-landing/internal/landingpages"
)

const maxMultipartMemory = 32 << 20

type uploadResponse struct {
	*assets.Upload
	LandingPage *landingpages.LandingPage `json:"landing_page,omitempty"`
}

func (api *API) registerAssetRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("POST "+joinPath(base, "assets/{bucket}"), api.handleUpload)
}

// handleUpload stores the "file" part. With a landing_page_id field the page
// is updated to point at the new object, and content documents also replace
// the page's source text.
func (api *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	if api.assets == nil {
		unavailable(w)
		return
	}
	bucket := r.PathValue("bucket")
	if !assets.ValidBucket(bucket) {
		writeError(w, assets.ErrInvalidBucket)
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "file is required")
		return
	}
	defer file.Close()

	owner := actorID(r)
	if raw := strings.TrimSpace(r.FormValue("user_id")); raw != "" {
		if owner, err = parseUUID(raw); err != nil {
			badRequest(w, "invalid user_id")
			return
		}
	}
	upload, err := api.assets.Upload(r.Context(), assets.UploadRequest{
		Bucket:   bucket,
		UserID:   owner,
		Filename: header.Filename,
		Body:     file,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	response := uploadResponse{Upload: upload}

	if raw := strings.TrimSpace(r.FormValue("landing_page_id")); raw != "" && api.pages != nil {
		pageID, err := parseUUID(raw)
		if err != nil {
			badRequest(w, "invalid landing_page_id")
			return
		}
		page, err := api.pages.UpdateSources(r.Context(), sourcesFor(pageID, actorID(r), upload))
		if err != nil {
			writeError(w, err)
			return
		}
		response.LandingPage = page
	}
	writeJSON(w, http.StatusCreated, response)
}

func sourcesFor(pageID, actor uuid.UUID, upload *assets.Upload) landingpages.UpdateSourcesRequest {
	req := landingpages.UpdateSourcesRequest{ID: pageID, ActorID: actor}
	url := upload.PublicURL
	switch upload.Bucket {
	case assets.BucketContentDocuments:
		req.ContentDocumentURL = &url
		if upload.ExtractError == "" {
			text := upload.ExtractedText
			req.SourceText = &text
		}
	case assets.BucketWireframes:
		req.WireframeURL = &url
	case assets.BucketDesignInspirations:
		req.DesignInspirationURL = &url
	}
	return req
}

func (api *API) handleObject(w http.ResponseWriter, r *http.Request) {
	if api.assets == nil {
		unavailable(w)
		return
	}
	object, err := api.assets.Get(r.Context(), r.PathValue("bucket"), r.PathValue("path"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", object.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(object.Data)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(object.Data)
}
