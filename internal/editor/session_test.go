package editor_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/editor"
)

func newSession(t *testing.T) *editor.Session {
	t.Helper()
	doc := document.Document{Sections: []document.Section{
		{ID: "hero-1", Type: document.SectionHero, Content: map[string]any{"headline": "Hello"}},
		{ID: "features-1", Type: document.SectionFeatures, Content: map[string]any{
			"features": []any{
				map[string]any{"title": "A"},
				map[string]any{"title": "B"},
			},
		}},
		{ID: "how-1", Type: document.SectionHowItWorks},
		{ID: "cta-1", Type: document.SectionCTA},
		{ID: "footer-1", Type: document.SectionFooter},
	}}
	counter := 0
	return editor.NewSession("page-1", "Acme", doc, editor.WithIDGenerator(func(t document.SectionType) string {
		counter++
		return fmt.Sprintf("%s-new-%d", t, counter)
	}))
}

func ids(doc document.Document) []string {
	out := make([]string, len(doc.Sections))
	for i, section := range doc.Sections {
		out[i] = section.ID
	}
	return out
}

func TestAddThenRemoveArrayItemRestoresSequence(t *testing.T) {
	session := newSession(t)
	before, _ := session.Snapshot()

	if err := session.AddArrayItem("features-1", "features", map[string]any{"title": "C"}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	mid, _ := session.Snapshot()
	if n := len(mid.Sections[1].Items("features")); n != 3 {
		t.Fatalf("expected 3 items, got %d", n)
	}
	if err := session.RemoveArrayItem("features-1", "features", 2); err != nil {
		t.Fatalf("remove item: %v", err)
	}

	after, _ := session.Snapshot()
	if diff := cmp.Diff(before.Sections[1].Content, after.Sections[1].Content); diff != "" {
		t.Fatalf("array not restored (-before +after):\n%s", diff)
	}
}

func TestAddArrayItemCreatesMissingArray(t *testing.T) {
	session := newSession(t)
	if err := session.AddArrayItem("how-1", "steps", document.DefaultItem("steps")); err != nil {
		t.Fatalf("add item: %v", err)
	}
	doc, _ := session.Snapshot()
	if n := len(doc.Sections[2].Items("steps")); n != 1 {
		t.Fatalf("expected 1 step, got %d", n)
	}
}

func TestArrayOperationsIgnoreOutOfRangeIndex(t *testing.T) {
	session := newSession(t)
	rev := session.Revision()

	for _, index := range []int{-1, 2, 99} {
		if err := session.RemoveArrayItem("features-1", "features", index); err != nil {
			t.Fatalf("remove %d: %v", index, err)
		}
		if err := session.UpdateArrayItem("features-1", "features", index, "title", "X"); err != nil {
			t.Fatalf("update %d: %v", index, err)
		}
	}
	if session.Revision() != rev || session.Dirty() {
		t.Fatal("out of range operations must not mutate the document")
	}
}

func TestArrayOperationsRejectNonArrayField(t *testing.T) {
	session := newSession(t)
	if err := session.AddArrayItem("hero-1", "headline", nil); !errors.Is(err, editor.ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
}

func TestUpdateArrayItemChangesOnlyThatItem(t *testing.T) {
	session := newSession(t)
	if err := session.UpdateArrayItem("features-1", "features", 1, "title", "Beta"); err != nil {
		t.Fatalf("update item: %v", err)
	}
	doc, _ := session.Snapshot()
	items := doc.Sections[1].Items("features")
	if items[0]["title"] != "A" || items[1]["title"] != "Beta" {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestReorderPreservesRelativeOrder(t *testing.T) {
	cases := []struct {
		id    string
		index int
		want  []string
	}{
		{"cta-1", 0, []string{"cta-1", "hero-1", "features-1", "how-1", "footer-1"}},
		{"hero-1", 3, []string{"features-1", "how-1", "cta-1", "hero-1", "footer-1"}},
		{"features-1", 99, []string{"hero-1", "how-1", "cta-1", "footer-1", "features-1"}},
		{"how-1", -5, []string{"how-1", "hero-1", "features-1", "cta-1", "footer-1"}},
	}
	for _, tc := range cases {
		session := newSession(t)
		if err := session.Reorder(tc.id, tc.index); err != nil {
			t.Fatalf("reorder %s: %v", tc.id, err)
		}
		doc, _ := session.Snapshot()
		if diff := cmp.Diff(tc.want, ids(doc)); diff != "" {
			t.Fatalf("reorder %s to %d (-want +got):\n%s", tc.id, tc.index, diff)
		}
	}
}

func TestReorderUnknownSection(t *testing.T) {
	session := newSession(t)
	var notFound *editor.SectionNotFoundError
	if err := session.Reorder("missing", 0); !errors.As(err, &notFound) {
		t.Fatalf("expected SectionNotFoundError, got %v", err)
	}
}

func TestDeleteSelectedSectionClearsSelection(t *testing.T) {
	session := newSession(t)
	if err := session.Select("how-1"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := session.DeleteSection("how-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if session.Selected() != "" {
		t.Fatalf("expected selection cleared, got %q", session.Selected())
	}
	doc, _ := session.Snapshot()
	if doc.FindSection("how-1") >= 0 {
		t.Fatal("section still present")
	}
}

func TestDeleteOtherSectionKeepsSelection(t *testing.T) {
	session := newSession(t)
	_ = session.Select("hero-1")
	if err := session.DeleteSection("cta-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if session.Selected() != "hero-1" {
		t.Fatalf("expected hero-1 selected, got %q", session.Selected())
	}
}

func TestAddSectionAssignsFreshIDAndDefaults(t *testing.T) {
	session := newSession(t)
	first, err := session.AddSection(document.SectionTestimonials)
	if err != nil {
		t.Fatalf("add section: %v", err)
	}
	second, err := session.AddSection(document.SectionTestimonials)
	if err != nil {
		t.Fatalf("add section: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected unique ids")
	}
	if len(first.Items("testimonials")) != 1 || first.Text("title") != "What our customers say" {
		t.Fatalf("unexpected default content %v", first.Content)
	}
	doc, _ := session.Snapshot()
	if doc.Sections[len(doc.Sections)-1].ID != second.ID {
		t.Fatal("expected section appended at the end")
	}
	if _, err := session.AddSection(""); !errors.Is(err, editor.ErrSectionTypeRequired) {
		t.Fatalf("expected ErrSectionTypeRequired, got %v", err)
	}
}

func TestDefaultIDGeneratorNeverRepeats(t *testing.T) {
	session := editor.NewSession("k", "t", document.Document{})
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		section, err := session.AddSection(document.SectionHero)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if seen[section.ID] {
			t.Fatalf("duplicate id %s", section.ID)
		}
		seen[section.ID] = true
	}
}

func TestDirtyClearedOnlyByMatchingSave(t *testing.T) {
	session := newSession(t)
	if session.Dirty() {
		t.Fatal("new session must be clean")
	}
	if err := session.UpdateField("hero-1", "headline", "Hi"); err != nil {
		t.Fatalf("update: %v", err)
	}
	_, captured := session.Snapshot()
	if err := session.UpdateField("hero-1", "headline", "Hey"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if session.MarkSaved(captured) {
		t.Fatal("stale save must not clear dirty state")
	}
	if !session.Dirty() {
		t.Fatal("expected session still dirty")
	}
	if !session.MarkSaved(session.Revision()) || session.Dirty() {
		t.Fatal("expected current save to clear dirty state")
	}
}

func TestNewSessionAssignsMissingAndDuplicateIDs(t *testing.T) {
	doc := document.Document{Sections: []document.Section{
		{Type: document.SectionHero},
		{ID: "x", Type: document.SectionCTA},
		{ID: "x", Type: document.SectionFooter},
	}}
	session := editor.NewSession("page-9", "T", doc)
	snap, _ := session.Snapshot()
	got := ids(snap)
	if got[0] == "" || got[1] != "x" || got[2] == "x" || got[0] == got[2] {
		t.Fatalf("unexpected ids %v", got)
	}
	if doc.Sections[0].ID != "" {
		t.Fatal("session must not mutate the caller's document")
	}
}

func TestListenersReceiveIndependentSnapshots(t *testing.T) {
	session := newSession(t)
	var changes []editor.Change
	unsubscribe := session.Subscribe(func(c editor.Change) {
		c.Document.Sections[0].Content["headline"] = "tampered"
		changes = append(changes, c)
	})

	if err := session.UpdateField("hero-1", "headline", "New"); err != nil {
		t.Fatalf("update: %v", err)
	}
	unsubscribe()
	_ = session.UpdateField("hero-1", "headline", "Newer")

	if len(changes) != 1 || changes[0].Op != editor.OpUpdateField || changes[0].Revision != 1 {
		t.Fatalf("unexpected changes %+v", changes)
	}
	doc, _ := session.Snapshot()
	if doc.Sections[0].Text("headline") != "Newer" {
		t.Fatal("listener mutation leaked into the session")
	}
}

func TestUpdateMetadata(t *testing.T) {
	session := newSession(t)
	_ = session.UpdateMetadata("primaryColor", "#000000")
	_ = session.UpdateMetadata("font", "Inter")
	doc, _ := session.Snapshot()
	if doc.Metadata.PrimaryColor != "#000000" || doc.Metadata.Extra["font"] != "Inter" {
		t.Fatalf("unexpected metadata %+v", doc.Metadata)
	}
}
