// Package preview keeps a rendered view of an editing session current.
package preview

import (
	"sync"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/editor"
)

// Renderer renders a document to HTML.
type Renderer interface {
	Render(doc document.Document, titleFallback string) string
}

// Frame is one rendered state of the document.
type Frame struct {
	Revision uint64
	HTML     string
}

// Synchronizer re-renders the whole document after every applied mutation.
// Frames are replaced, never patched, and older revisions never overwrite
// newer ones.
type Synchronizer struct {
	renderer Renderer

	mu       sync.RWMutex
	current  Frame
	rendered bool
	watchers []func(Frame)
}

// New constructs a Synchronizer.
func New(renderer Renderer) *Synchronizer {
	return &Synchronizer{renderer: renderer}
}

// Attach renders the session's current state and re-renders on each change
// until the returned detach function is called.
func (s *Synchronizer) Attach(session *editor.Session) func() {
	detach := session.Subscribe(func(change editor.Change) {
		s.Update(change.Revision, change.Document, change.Title)
	})
	doc, revision := session.Snapshot()
	s.Update(revision, doc, session.Title())
	return detach
}

// Update renders doc as revision. Stale revisions are ignored.
func (s *Synchronizer) Update(revision uint64, doc document.Document, title string) {
	s.mu.RLock()
	stale := s.rendered && revision < s.current.Revision
	s.mu.RUnlock()
	if stale {
		return
	}

	frame := Frame{Revision: revision, HTML: s.renderer.Render(doc, title)}

	s.mu.Lock()
	if s.rendered && frame.Revision < s.current.Revision {
		s.mu.Unlock()
		return
	}
	s.current = frame
	s.rendered = true
	watchers := append([]func(Frame){}, s.watchers...)
	s.mu.Unlock()

	for _, watch := range watchers {
		watch(frame)
	}
}

// Current returns the latest frame.
func (s *Synchronizer) Current() Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// OnFrame registers fn to receive each new frame, for example to push it to a
// display surface.
func (s *Synchronizer) OnFrame(fn func(Frame)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	s.mu.Unlock()
}
