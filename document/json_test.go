package document_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-landing/document"
)

func TestParseMissingSectionsYieldsEmptyDocument(t *testing.T) {
	for _, payload := range []string{``, `  `, `null`, `{}`, `{"metadata":{"headline":"Hi"}}`, `{"sections":null}`} {
		doc, err := document.Parse([]byte(payload))
		if err != nil {
			t.Fatalf("parse %q: %v", payload, err)
		}
		if len(doc.Sections) != 0 {
			t.Fatalf("parse %q: expected no sections, got %d", payload, len(doc.Sections))
		}
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := document.Parse([]byte(`{"sections":[`))
	if !errors.Is(err, document.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestRoundTripPreservesUnknownKeys(t *testing.T) {
	input := `{
		"version": 2,
		"sections": [
			{"id": "hero-1", "type": "hero", "content": {"headline": "Hi", "badge": {"text": "new"}}, "hidden": true},
			{"id": 42, "type": "carousel", "content": {"slides": [1, 2.5]}}
		],
		"metadata": {"primaryColor": "#ff0000", "font": "Inter", "headline": 7}
	}`

	doc, err := document.Parse([]byte(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[1].ID != "42" || doc.Sections[1].Type != "carousel" {
		t.Fatalf("unexpected unknown section %+v", doc.Sections[1])
	}
	if doc.Sections[1].Type.Known() {
		t.Fatal("carousel must not be a known type")
	}
	if doc.Metadata.PrimaryColor != "#ff0000" || doc.Metadata.Headline != "" {
		t.Fatalf("unexpected metadata %+v", doc.Metadata)
	}

	encoded, err := document.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got, want any
	if err := json.Unmarshal(encoded, &got); err != nil {
		t.Fatalf("unmarshal encoded: %v", err)
	}
	if err := json.Unmarshal([]byte(input), &want); err != nil {
		t.Fatalf("unmarshal input: %v", err)
	}
	// ids are normalized to strings; everything else must match.
	want.(map[string]any)["sections"].([]any)[1].(map[string]any)["id"] = "42"

	gotJSON, _ := json.Marshal(got)
	wantJSON, _ := json.Marshal(want)
	if string(gotJSON) != string(wantJSON) {
		t.Fatalf("round trip mismatch\nwant: %s\ngot:  %s", wantJSON, gotJSON)
	}
}

func TestRoundTripKeepsNonObjectContent(t *testing.T) {
	input := `{"sections":[{"id":"raw-1","type":"html","content":"<p>raw</p>"},{"id":"list-1","type":"custom","content":[1,2]}]}`

	doc, err := document.Parse([]byte(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Sections[0].Content) != 0 {
		t.Fatalf("expected empty content map, got %#v", doc.Sections[0].Content)
	}

	encoded, err := document.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got struct {
		Sections []struct {
			Content any `json:"content"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(encoded, &got); err != nil {
		t.Fatalf("unmarshal encoded: %v", err)
	}
	if got.Sections[0].Content != "<p>raw</p>" {
		t.Fatalf("expected string content kept, got %#v", got.Sections[0].Content)
	}
	if list, ok := got.Sections[1].Content.([]any); !ok || len(list) != 2 {
		t.Fatalf("expected array content kept, got %#v", got.Sections[1].Content)
	}
}

func TestMarshalEmptyDocumentEmitsSectionsArray(t *testing.T) {
	encoded, err := document.Marshal(document.Document{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `{"metadata":{},"sections":[]}` {
		t.Fatalf("unexpected encoding %s", encoded)
	}
}

func TestMetadataLastEditedRoundTrip(t *testing.T) {
	stamp := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := document.Document{Metadata: document.Metadata{LastEdited: &stamp}}

	encoded, err := document.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := document.Parse(encoded)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Metadata.LastEdited == nil || !parsed.Metadata.LastEdited.Equal(stamp) {
		t.Fatalf("expected lastEdited %v, got %v", stamp, parsed.Metadata.LastEdited)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := document.Document{Sections: []document.Section{{
		ID:   "features-1",
		Type: document.SectionFeatures,
		Content: map[string]any{
			"features": []any{map[string]any{"title": "Fast"}},
		},
	}}}

	copied := doc.Clone()
	copied.Sections[0].Items("features")[0]["title"] = "Slow"
	copied.Sections[0].Content["title"] = "Changed"

	if doc.Sections[0].Items("features")[0]["title"] != "Fast" {
		t.Fatal("nested item was shared with the clone")
	}
	if _, ok := doc.Sections[0].Content["title"]; ok {
		t.Fatal("content map was shared with the clone")
	}
}

func TestDefaultContentPerType(t *testing.T) {
	features := document.Section{Type: document.SectionFeatures, Content: document.DefaultContent(document.SectionFeatures)}
	if len(features.Items(document.FieldFeatures)) != 3 {
		t.Fatalf("expected 3 default features")
	}
	steps := document.Section{Content: document.DefaultContent(document.SectionHowItWorks)}
	if len(steps.Items(document.FieldSteps)) != 3 {
		t.Fatalf("expected 3 default steps")
	}
	cta := document.Section{Content: document.DefaultContent(document.SectionCTA)}
	if cta.Text("ctaLink") != "#" {
		t.Fatalf("expected cta link #, got %q", cta.Text("ctaLink"))
	}
	if len(document.DefaultContent("carousel")) != 0 {
		t.Fatal("unknown types start empty")
	}
}
