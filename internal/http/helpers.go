package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/assets"
	"github.com/goliatone/go-landing/internal/editor"
	"github.com/goliatone/go-landing/internal/extract"
	"github.com/goliatone/go-landing/internal/generation"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/publishing"
	landingvalidation "github.com/goliatone/go-landing/internal/validation"
	"github.com/goliatone/go-landing/internal/workspace"
)

const maxJSONBody = 4 << 20

type errorResponse struct {
	Error   string                              `json:"error"`
	Code    string                              `json:"code,omitempty"`
	Message string                              `json:"message,omitempty"`
	Fields  map[string]string                   `json:"fields,omitempty"`
	Issues  []landingvalidation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	decoder.UseNumber()
	return decoder.Decode(target)
}

// decodeOptionalJSON accepts an empty body.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, target any) error {
	if err := decodeJSON(w, r, target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, html)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func unavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	switch generation.Code(err) {
	case generation.CodeUnavailable:
		return http.StatusServiceUnavailable, errorResponse{Error: "generation_unavailable", Code: generation.CodeUnavailable, Message: err.Error()}
	case generation.CodeRateLimited:
		return http.StatusTooManyRequests, errorResponse{Error: "rate_limited", Code: generation.CodeRateLimited, Message: err.Error()}
	case generation.CodeQuotaExhausted:
		return http.StatusPaymentRequired, errorResponse{Error: "quota_exhausted", Code: generation.CodeQuotaExhausted, Message: err.Error()}
	case generation.CodeUpstreamFailed:
		return http.StatusBadGateway, errorResponse{Error: "upstream_failed", Code: generation.CodeUpstreamFailed, Message: err.Error()}
	case generation.CodePersistFailed:
		return http.StatusInternalServerError, errorResponse{Error: "persist_failed", Code: generation.CodePersistFailed, Message: err.Error()}
	}

	var pageNotFound *landingpages.NotFoundError
	var sectionNotFound *editor.SectionNotFoundError
	if errors.As(err, &pageNotFound) || errors.As(err, &sectionNotFound) ||
		errors.Is(err, workspace.ErrSessionNotFound) ||
		errors.Is(err, assets.ErrNotFound) ||
		errors.Is(err, publishing.ErrNotPublished) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for key, fieldErr := range fieldErrs {
			fields[key] = fieldErr.Error()
		}
		return http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: err.Error(), Fields: fields}
	}

	if errors.Is(err, landingvalidation.ErrSchemaValidation) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  landingvalidation.Issues(err),
		}
	}

	if errors.Is(err, landingpages.ErrArchived) || errors.Is(err, landingpages.ErrSlugTaken) {
		return http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()}
	}

	if errors.Is(err, assets.ErrTooLarge) {
		return http.StatusRequestEntityTooLarge, errorResponse{Error: "too_large", Message: err.Error()}
	}

	var wpErr *publishing.WordPressError
	if errors.As(err, &wpErr) {
		return http.StatusBadGateway, errorResponse{Error: "wordpress_failed", Message: wpErr.Error()}
	}

	if errors.Is(err, landingpages.ErrTitleRequired) ||
		errors.Is(err, landingpages.ErrIDRequired) ||
		errors.Is(err, landingpages.ErrStatusInvalid) ||
		errors.Is(err, workspace.ErrUnknownOperation) ||
		errors.Is(err, editor.ErrFieldRequired) ||
		errors.Is(err, editor.ErrSectionTypeRequired) ||
		errors.Is(err, editor.ErrNotArray) ||
		errors.Is(err, editor.ErrNotObject) ||
		errors.Is(err, assets.ErrInvalidBucket) ||
		errors.Is(err, assets.ErrInvalidPath) ||
		errors.Is(err, assets.ErrUnsupportedURL) ||
		errors.Is(err, extract.ErrUnsupportedFormat) ||
		errors.Is(err, extract.ErrCorruptDocument) ||
		errors.Is(err, publishing.ErrMissingCredentials) ||
		errors.Is(err, publishing.ErrInvalidStatus) ||
		errors.Is(err, publishing.ErrContentRequired) {
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	return uuid.Parse(trimmed)
}

// actorID reads the acting user from the actor header. A missing or invalid
// header yields uuid.Nil.
func actorID(r *http.Request) uuid.UUID {
	id, err := parseUUID(r.Header.Get(ActorHeader))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
