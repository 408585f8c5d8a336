package editor

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/identity"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Change describes one applied mutation.
type Change struct {
	Op        string
	SectionID string
	Revision  uint64
	Title     string
	Document  document.Document
}

// Listener observes applied mutations. Listeners run synchronously on the
// mutating goroutine after the session lock is released and receive their
// own copy of the document.
type Listener func(Change)

// Session owns the working copy of one document. All mutations go through it.
type Session struct {
	mu        sync.Mutex
	doc       document.Document
	title     string
	selected  string
	dirty     bool
	revision  uint64
	newID     func(document.SectionType) string
	logger    interfaces.Logger
	nextToken int
	listeners map[int]Listener
}

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator overrides the id generator used by AddSection.
func WithIDGenerator(fn func(document.SectionType) string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession takes ownership of doc. Sections without an id, or repeating an
// earlier id, are assigned a stable one derived from key and position.
func NewSession(key, title string, doc document.Document, opts ...Option) *Session {
	s := &Session{
		doc:       doc.Clone(),
		title:     strings.TrimSpace(title),
		newID:     NewSectionID,
		logger:    logging.NoOp(),
		listeners: map[int]Listener{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.doc.Sections == nil {
		s.doc.Sections = []document.Section{}
	}
	seen := make(map[string]struct{}, len(s.doc.Sections))
	for i := range s.doc.Sections {
		section := &s.doc.Sections[i]
		if _, dup := seen[section.ID]; section.ID == "" || dup {
			section.ID = identity.SectionID(key, i, string(section.Type))
		}
		if section.Content == nil {
			section.Content = map[string]any{}
		}
		seen[section.ID] = struct{}{}
	}
	return s
}

// Title returns the document title used for rendering fallbacks.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// Snapshot returns a copy of the working document and its revision.
func (s *Session) Snapshot() (document.Document, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), s.revision
}

// Dirty reports whether edits exist that have not been persisted.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Revision increases by one on every applied mutation.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// MarkSaved records a successful persist of revision. Dirty is cleared only
// when no mutation happened after that revision was captured.
func (s *Session) MarkSaved(revision uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if revision == s.revision {
		s.dirty = false
		return true
	}
	return false
}

// Selected returns the selected section id, or "".
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select marks a section as selected. An empty id clears the selection.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = strings.TrimSpace(id)
	if id == "" {
		s.selected = ""
		return nil
	}
	if s.doc.FindSection(id) < 0 {
		return &SectionNotFoundError{ID: id}
	}
	s.selected = id
	return nil
}

// Subscribe registers l and returns a function that removes it.
func (s *Session) Subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}
	s.mu.Lock()
	token := s.nextToken
	s.nextToken++
	s.listeners[token] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, token)
		s.mu.Unlock()
	}
}

// mutate runs fn under the lock. When fn reports a change the revision is
// bumped, the session is marked dirty and listeners are notified.
func (s *Session) mutate(op, sectionID string, fn func() (bool, error)) error {
	s.mu.Lock()
	changed, err := fn()
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	s.revision++
	s.dirty = true
	change := Change{
		Op:        op,
		SectionID: sectionID,
		Revision:  s.revision,
		Title:     s.title,
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, token := range slices.Sorted(maps.Keys(s.listeners)) {
		listeners = append(listeners, s.listeners[token])
	}
	var snapshot document.Document
	if len(listeners) > 0 {
		snapshot = s.doc.Clone()
	}
	s.mu.Unlock()

	s.logger.Debug("editor.mutation.applied", "op", op, "section_id", sectionID, "revision", change.Revision)
	for i, l := range listeners {
		change.Document = snapshot
		if i < len(listeners)-1 {
			change.Document = snapshot.Clone()
		}
		l(change)
	}
	return nil
}

func (s *Session) section(id string) (*document.Section, error) {
	idx := s.doc.FindSection(id)
	if idx < 0 {
		return nil, &SectionNotFoundError{ID: id}
	}
	return &s.doc.Sections[idx], nil
}

func cloneItem(item map[string]any) map[string]any {
	if item == nil {
		return map[string]any{}
	}
	return document.CloneMap(item)
}
