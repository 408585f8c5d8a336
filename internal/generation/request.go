package generation

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Request is one generation call.
type Request struct {
	LandingPageID        uuid.UUID
	ActorID              uuid.UUID
	Title                string
	Description          string
	DocumentText         string
	ContentDocumentURL   string
	WireframeURL         string
	DesignInspirationURL string
	Tone                 string
	Language             string
	TargetAudience       string
}

// normalized trims every field and canonicalizes the language tag. Unknown
// language names are passed through as free text.
func (r Request) normalized() Request {
	out := r
	out.Title = strings.TrimSpace(r.Title)
	out.Description = strings.TrimSpace(r.Description)
	out.DocumentText = strings.TrimSpace(r.DocumentText)
	out.ContentDocumentURL = strings.TrimSpace(r.ContentDocumentURL)
	out.WireframeURL = strings.TrimSpace(r.WireframeURL)
	out.DesignInspirationURL = strings.TrimSpace(r.DesignInspirationURL)
	out.Tone = strings.TrimSpace(r.Tone)
	out.TargetAudience = strings.TrimSpace(r.TargetAudience)
	out.Language = NormalizeLanguage(r.Language)
	return out
}

// NormalizeLanguage returns the canonical BCP 47 form of value when it
// parses as a tag, and the trimmed input otherwise.
func NormalizeLanguage(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return value
	}
	return tag.String()
}

// languageName renders a tag as its English display name for the prompt.
func languageName(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	if name := display.English.Tags().Name(parsed); name != "" {
		return name
	}
	return tag
}
