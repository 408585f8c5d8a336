package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-landing/internal/validation"
)

const validPayload = `{
  "sections": [
    {"type": "hero", "content": {"headline": "Acme", "ctaText": "Go"}},
    {"type": "features", "content": {"features": [{"icon": "🚀", "title": "Fast", "description": "Very"}]}}
  ],
  "metadata": {"primaryColor": "#112233", "headline": "Acme", "subheadline": "Rockets"}
}`

func TestLandingPageValidatorAcceptsToolPayload(t *testing.T) {
	payload, err := validation.LandingPage().ValidateJSON([]byte(validPayload))
	if err != nil {
		t.Fatalf("expected payload to validate, got %v", err)
	}
	if sections, ok := payload["sections"].([]any); !ok || len(sections) != 2 {
		t.Fatalf("unexpected decoded payload %+v", payload)
	}
}

func TestLandingPageValidatorReportsIssues(t *testing.T) {
	raw := `{
  "sections": [{"type": "pricing", "content": {}}, {"type": "testimonials", "content": {"testimonials": [{"quote": "Great"}]}}],
  "metadata": {"primaryColor": "#112233"}
}`
	_, err := validation.LandingPage().ValidateJSON([]byte(raw))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := validation.Issues(err)
	if len(issues) < 3 {
		t.Fatalf("expected issues for enum, missing name and metadata fields, got %+v", issues)
	}
	locations := make([]string, 0, len(issues))
	for _, issue := range issues {
		locations = append(locations, issue.Location)
	}
	joined := strings.Join(locations, ",")
	for _, want := range []string{"/sections/0/type", "/sections/1/content/testimonials/0", "/metadata"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected issue at %s, got %s", want, joined)
		}
	}
}

func TestValidateJSONRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[]`, `"text"`, `{broken`} {
		if _, err := validation.LandingPage().ValidateJSON([]byte(raw)); !errors.Is(err, validation.ErrSchemaValidation) {
			t.Fatalf("%s: expected ErrSchemaValidation, got %v", raw, err)
		}
	}
}

func TestNewValidatorRejectsBrokenSchema(t *testing.T) {
	if _, err := validation.NewValidator(map[string]any{"type": 42}); !errors.Is(err, validation.ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
	if _, err := validation.NewValidator(nil); !errors.Is(err, validation.ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid for empty schema, got %v", err)
	}
}

func TestSchemaReturnsCopy(t *testing.T) {
	v := validation.LandingPage()
	schema := v.Schema()
	schema["required"] = []any{}
	if got := v.Schema()["required"].([]any); len(got) != 2 {
		t.Fatalf("validator schema was mutated: %v", got)
	}
}
