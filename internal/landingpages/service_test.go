package landingpages_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/activity"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

type stubRenderer struct {
	calls int
}

func (r *stubRenderer) Render(doc document.Document, title string) string {
	r.calls++
	return "<html>" + title + "</html>"
}

type recordingSink struct {
	records []interfaces.ActivityRecord
}

func (s *recordingSink) Log(_ context.Context, record interfaces.ActivityRecord) error {
	s.records = append(s.records, record)
	return nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newService(t *testing.T, opts ...landingpages.ServiceOption) (landingpages.Service, *landingpages.MemoryLandingPageRepository) {
	t.Helper()
	repo := landingpages.NewMemoryLandingPageRepository()
	return landingpages.NewService(repo, opts...), repo
}

func TestServiceCreateAssignsSlugAndDraftStatus(t *testing.T) {
	now := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	svc, _ := newService(t, landingpages.WithClock(fixedClock(now)))

	owner := uuid.New()
	page, err := svc.Create(context.Background(), landingpages.CreateRequest{
		UserID:      owner,
		Title:       "  Acme Rockets ",
		Description: "Fast rockets",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if page.Title != "Acme Rockets" {
		t.Fatalf("expected trimmed title, got %q", page.Title)
	}
	if page.Status != landingpages.StatusDraft {
		t.Fatalf("expected draft status, got %q", page.Status)
	}
	if !strings.HasPrefix(page.Slug, "acme-rockets-") {
		t.Fatalf("unexpected slug %q", page.Slug)
	}
	if len(page.Content.Sections) != 0 {
		t.Fatalf("expected empty content, got %d sections", len(page.Content.Sections))
	}

	bySlug, err := svc.GetBySlug(context.Background(), page.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != page.ID {
		t.Fatalf("slug lookup returned %s, want %s", bySlug.ID, page.ID)
	}
}

func TestServiceCreateRequiresTitle(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Create(context.Background(), landingpages.CreateRequest{Title: "   "}); !errors.Is(err, landingpages.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestGenerateSlugFallsBackForEmptyTitles(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	slug := landingpages.GenerateSlug("", at)
	if !strings.HasPrefix(slug, "landing-page-") {
		t.Fatalf("expected fallback slug, got %q", slug)
	}
	if slug == landingpages.GenerateSlug("", at.Add(time.Millisecond)) {
		t.Fatalf("expected different timestamps to produce different slugs")
	}
}

func TestServiceSaveContentStampsLastEditedAndRenders(t *testing.T) {
	now := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	renderer := &stubRenderer{}
	svc, _ := newService(t, landingpages.WithClock(fixedClock(now)), landingpages.WithRenderer(renderer))
	ctx := context.Background()

	page, err := svc.Create(ctx, landingpages.CreateRequest{Title: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	doc := document.Document{Sections: []document.Section{{ID: "hero-1", Type: document.SectionHero, Content: map[string]any{"headline": "Hi"}}}}

	saved, err := svc.SaveContent(ctx, landingpages.SaveContentRequest{ID: page.ID, Document: doc})
	if err != nil {
		t.Fatalf("save content: %v", err)
	}
	if saved.Content.Metadata.LastEdited == nil || !saved.Content.Metadata.LastEdited.Equal(now) {
		t.Fatalf("expected lastEdited %v, got %v", now, saved.Content.Metadata.LastEdited)
	}
	if saved.GeneratedHTML != "<html>Acme</html>" || renderer.calls != 1 {
		t.Fatalf("expected rendered html, got %q (calls=%d)", saved.GeneratedHTML, renderer.calls)
	}
	if doc.Metadata.LastEdited != nil {
		t.Fatalf("caller document must not be mutated")
	}

	withHTML, err := svc.SaveContent(ctx, landingpages.SaveContentRequest{ID: page.ID, Document: doc, HTML: "<p>given</p>"})
	if err != nil {
		t.Fatalf("save content with html: %v", err)
	}
	if withHTML.GeneratedHTML != "<p>given</p>" || renderer.calls != 1 {
		t.Fatalf("expected supplied html to be stored as-is")
	}
}

func TestServiceStoreGenerationResetsStatus(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	page, _ := svc.Create(ctx, landingpages.CreateRequest{Title: "Acme"})
	if _, err := svc.MarkPublished(ctx, landingpages.MarkPublishedRequest{ID: page.ID, ExternalID: "42"}); err != nil {
		t.Fatalf("mark published: %v", err)
	}

	doc := document.Document{Sections: []document.Section{{ID: "cta-1", Type: document.SectionCTA, Content: map[string]any{}}}}
	stored, err := svc.StoreGeneration(ctx, landingpages.StoreGenerationRequest{ID: page.ID, Document: doc, HTML: "<html></html>", Source: "tool_call"})
	if err != nil {
		t.Fatalf("store generation: %v", err)
	}
	if stored.Status != landingpages.StatusDraft {
		t.Fatalf("expected draft after generation, got %q", stored.Status)
	}
	if len(stored.Content.Sections) != 1 || stored.GeneratedHTML != "<html></html>" {
		t.Fatalf("content and html must be written together: %+v", stored)
	}
	if stored.ExternalID != "42" {
		t.Fatalf("expected external id to survive regeneration, got %q", stored.ExternalID)
	}
}

func TestServiceMarkPublishedAndArchive(t *testing.T) {
	now := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	sink := &recordingSink{}
	svc, _ := newService(t,
		landingpages.WithClock(fixedClock(now)),
		landingpages.WithActivity(activity.NewEmitter(sink, fixedClock(now))),
	)
	ctx := context.Background()
	actor := uuid.New()
	page, _ := svc.Create(ctx, landingpages.CreateRequest{Title: "Acme", UserID: actor})

	published, err := svc.MarkPublished(ctx, landingpages.MarkPublishedRequest{
		ID:         page.ID,
		ActorID:    actor,
		ExternalID: "17",
		URL:        "https://example.com/acme",
	})
	if err != nil {
		t.Fatalf("mark published: %v", err)
	}
	if published.Status != landingpages.StatusPublished || published.PublishedAt == nil || !published.PublishedAt.Equal(now) {
		t.Fatalf("unexpected published record: %+v", published)
	}

	archived, err := svc.Archive(ctx, page.ID, actor)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived.Status != landingpages.StatusArchived {
		t.Fatalf("expected archived, got %q", archived.Status)
	}
	if _, err := svc.SaveContent(ctx, landingpages.SaveContentRequest{ID: page.ID}); !errors.Is(err, landingpages.ErrArchived) {
		t.Fatalf("expected ErrArchived, got %v", err)
	}

	verbs := make([]string, 0, len(sink.records))
	for _, record := range sink.records {
		verbs = append(verbs, record.Verb)
		if record.ObjectID != page.ID.String() {
			t.Fatalf("unexpected object id %q", record.ObjectID)
		}
	}
	if got := strings.Join(verbs, ","); got != "created,published,archived" {
		t.Fatalf("unexpected activity verbs %q", got)
	}
}

func TestServiceListFiltersByUserNewestFirst(t *testing.T) {
	current := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	svc, _ := newService(t, landingpages.WithClock(func() time.Time {
		current = current.Add(time.Minute)
		return current
	}))
	ctx := context.Background()
	owner := uuid.New()

	first, _ := svc.Create(ctx, landingpages.CreateRequest{Title: "First", UserID: owner})
	second, _ := svc.Create(ctx, landingpages.CreateRequest{Title: "Second", UserID: owner})
	if _, err := svc.Create(ctx, landingpages.CreateRequest{Title: "Other", UserID: uuid.New()}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	pages, err := svc.List(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pages) != 2 || pages[0].ID != second.ID || pages[1].ID != first.ID {
		t.Fatalf("expected newest first for owner, got %+v", pages)
	}

	all, err := svc.List(ctx, uuid.Nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(all))
	}
}

func TestServiceUpdateSourcesAndDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	page, _ := svc.Create(ctx, landingpages.CreateRequest{Title: "Acme", Tone: "formal"})

	text := "Extracted text"
	url := "https://cdn.example.com/storage/v1/object/public/wireframes/u/1.png"
	updated, err := svc.UpdateSources(ctx, landingpages.UpdateSourcesRequest{ID: page.ID, SourceText: &text, WireframeURL: &url})
	if err != nil {
		t.Fatalf("update sources: %v", err)
	}
	if updated.SourceText != text || updated.WireframeURL != url || updated.Tone != "formal" {
		t.Fatalf("unexpected sources: %+v", updated)
	}

	if err := svc.Delete(ctx, page.ID, uuid.Nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, page.ID); !landingpages.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(ctx, page.ID, uuid.Nil); !landingpages.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestMemoryRepositoryReturnsClones(t *testing.T) {
	repo := landingpages.NewMemoryLandingPageRepository()
	ctx := context.Background()
	record := &landingpages.LandingPage{
		ID:    uuid.New(),
		Title: "Acme",
		Slug:  "acme",
		Content: landingpages.Content{Document: document.Document{
			Sections: []document.Section{{ID: "hero-1", Type: document.SectionHero, Content: map[string]any{"headline": "Hi"}}},
		}},
	}
	if _, err := repo.Create(ctx, record); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, &landingpages.LandingPage{ID: uuid.New(), Slug: "acme"}); !errors.Is(err, landingpages.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	loaded, _ := repo.GetByID(ctx, record.ID)
	loaded.Content.Sections[0].Content["headline"] = "changed"

	again, _ := repo.GetByID(ctx, record.ID)
	if again.Content.Sections[0].Text("headline") != "Hi" {
		t.Fatalf("repository leaked internal state")
	}
}
