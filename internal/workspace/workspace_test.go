package workspace_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/autosave"
	"github.com/goliatone/go-landing/internal/editor"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/render"
	"github.com/goliatone/go-landing/internal/workspace"
)

type heldTimer struct {
	stopped bool
}

func (t *heldTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// neverFire keeps scheduled saves pending so tests drive saving explicitly.
func neverFire(time.Duration, func()) autosave.Timer {
	return &heldTimer{}
}

func setup(t *testing.T) (*workspace.Manager, landingpages.Service, *landingpages.LandingPage) {
	t.Helper()
	ctx := context.Background()
	pages := landingpages.NewService(landingpages.NewMemoryLandingPageRepository())
	page, err := pages.Create(ctx, landingpages.CreateRequest{Title: "Acme"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	doc := document.Document{Sections: []document.Section{
		{ID: "hero-1", Type: document.SectionHero, Content: map[string]any{"headline": "Old headline"}},
		{ID: "features-1", Type: document.SectionFeatures, Content: map[string]any{"features": []any{}}},
	}}
	if _, err := pages.SaveContent(ctx, landingpages.SaveContentRequest{ID: page.ID, Document: doc, HTML: "<html></html>"}); err != nil {
		t.Fatalf("seed content: %v", err)
	}
	manager := workspace.NewManager(pages, render.New(), workspace.WithSchedulerOptions(autosave.WithAfterFunc(neverFire)))
	return manager, pages, page
}

func TestWorkspaceApplyUpdatesPreviewAndSaves(t *testing.T) {
	ctx := context.Background()
	manager, pages, page := setup(t)

	ws, err := manager.Open(ctx, page.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	frame, _ := manager.Preview(ws.ID)
	if !strings.Contains(frame.HTML, "Old headline") {
		t.Fatalf("expected initial preview to render stored content")
	}

	state, err := manager.Apply(ws.ID, workspace.Operation{Op: editor.OpUpdateField, SectionID: "hero-1", Field: "headline", Value: "New headline"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !state.Dirty || state.Save.State != autosave.StateUnsaved || state.Revision != 1 {
		t.Fatalf("unexpected state after edit: %+v", state)
	}
	frame, _ = manager.Preview(ws.ID)
	if frame.Revision != 1 || !strings.Contains(frame.HTML, "New headline") {
		t.Fatalf("preview did not follow the edit: rev=%d", frame.Revision)
	}

	if _, err := manager.Apply(ws.ID, workspace.Operation{Op: editor.OpAddArrayItem, SectionID: "features-1", ArrayField: document.FieldFeatures}); err != nil {
		t.Fatalf("add array item: %v", err)
	}

	state, err = manager.Save(ctx, ws.ID)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if state.Dirty || state.Save.State != autosave.StateIdle || state.Save.LastSavedAt == nil {
		t.Fatalf("unexpected state after save: %+v", state.Save)
	}

	stored, _ := pages.Get(ctx, page.ID)
	if got := stored.Content.Sections[0].Text("headline"); got != "New headline" {
		t.Fatalf("expected persisted headline, got %q", got)
	}
	if n := len(stored.Content.Sections[1].Items(document.FieldFeatures)); n != 1 {
		t.Fatalf("expected default feature item to persist, got %d", n)
	}
	if !strings.Contains(stored.GeneratedHTML, "New headline") {
		t.Fatalf("expected persisted html to match content")
	}
}

func TestWorkspaceCloseCancelsPendingAutosave(t *testing.T) {
	ctx := context.Background()
	manager, pages, page := setup(t)
	ws, _ := manager.Open(ctx, page.ID, uuid.Nil)

	if _, err := manager.Apply(ws.ID, workspace.Operation{Op: editor.OpDeleteSection, SectionID: "hero-1"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := manager.Close(ctx, ws.ID, false); err != nil {
		t.Fatalf("close: %v", err)
	}
	stored, _ := pages.Get(ctx, page.ID)
	if len(stored.Content.Sections) != 2 {
		t.Fatalf("closing without flush must not persist, got %d sections", len(stored.Content.Sections))
	}
	if _, err := manager.Get(ws.ID); !errors.Is(err, workspace.ErrSessionNotFound) {
		t.Fatalf("expected closed session to be gone, got %v", err)
	}
}

func TestWorkspaceCloseAllFlushes(t *testing.T) {
	ctx := context.Background()
	manager, pages, page := setup(t)
	ws, _ := manager.Open(ctx, page.ID, uuid.Nil)

	if _, err := manager.Apply(ws.ID, workspace.Operation{Op: editor.OpUpdateMetadata, Key: "primaryColor", Value: "#123456"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := manager.CloseAll(ctx); err != nil {
		t.Fatalf("close all: %v", err)
	}
	stored, _ := pages.Get(ctx, page.ID)
	if stored.Content.Metadata.PrimaryColor != "#123456" {
		t.Fatalf("expected flushed metadata, got %q", stored.Content.Metadata.PrimaryColor)
	}
}

func TestWorkspaceRejectsUnknownOperationsAndSessions(t *testing.T) {
	ctx := context.Background()
	manager, _, page := setup(t)
	ws, _ := manager.Open(ctx, page.ID, uuid.Nil)

	if _, err := manager.Apply(ws.ID, workspace.Operation{Op: "explode"}); !errors.Is(err, workspace.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
	var notFound *editor.SectionNotFoundError
	if _, err := manager.Apply(ws.ID, workspace.Operation{Op: editor.OpUpdateField, SectionID: "missing", Field: "x"}); !errors.As(err, &notFound) {
		t.Fatalf("expected SectionNotFoundError, got %v", err)
	}
	if _, err := manager.Apply(uuid.New(), workspace.Operation{Op: editor.OpReorder}); !errors.Is(err, workspace.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := manager.Open(ctx, uuid.New(), uuid.Nil); !landingpages.IsNotFound(err) {
		t.Fatalf("expected not found for unknown page, got %v", err)
	}
}
