// Package workspace wires editing sessions to live preview and autosave.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/autosave"
	"github.com/goliatone/go-landing/internal/editor"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/preview"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

var (
	ErrSessionNotFound  = errors.New("workspace: session not found")
	ErrUnknownOperation = errors.New("workspace: unknown operation")
)

// Pages is the landing page persistence used by sessions.
type Pages interface {
	Get(ctx context.Context, id uuid.UUID) (*landingpages.LandingPage, error)
	SaveContent(ctx context.Context, req landingpages.SaveContentRequest) (*landingpages.LandingPage, error)
}

type Option func(*Manager)

func WithDelay(delay time.Duration) Option {
	return func(m *Manager) {
		if delay > 0 {
			m.delay = delay
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSchedulerOptions forwards extra options to every autosave scheduler.
func WithSchedulerOptions(opts ...autosave.Option) Option {
	return func(m *Manager) {
		m.schedulerOpts = append(m.schedulerOpts, opts...)
	}
}

func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// Manager owns the open editing sessions.
type Manager struct {
	pages         Pages
	renderer      preview.Renderer
	logger        interfaces.Logger
	delay         time.Duration
	newID         func() uuid.UUID
	schedulerOpts []autosave.Option

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Workspace
}

func NewManager(pages Pages, renderer preview.Renderer, opts ...Option) *Manager {
	m := &Manager{
		pages:    pages,
		renderer: renderer,
		logger:   logging.NoOp(),
		delay:    autosave.DefaultDelay,
		newID:    uuid.New,
		sessions: make(map[uuid.UUID]*Workspace),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Workspace is one open editing session.
type Workspace struct {
	ID            uuid.UUID
	LandingPageID uuid.UUID
	ActorID       uuid.UUID
	OpenedAt      time.Time

	session   *editor.Session
	preview   *preview.Synchronizer
	autosave  *autosave.Scheduler
	detachers []func()
}

// Session exposes the editor session.
func (w *Workspace) Session() *editor.Session {
	return w.session
}

// Open loads a landing page into a new editing session.
func (m *Manager) Open(ctx context.Context, landingPageID, actor uuid.UUID) (*Workspace, error) {
	page, err := m.pages.Get(ctx, landingPageID)
	if err != nil {
		return nil, err
	}
	id := m.newID()
	logger := logging.WithSession(logging.WithLandingPage(m.logger, page.ID.String()), id.String())

	session := editor.NewSession(page.ID.String(), page.Title, page.Content.Document, editor.WithLogger(logger))
	synchronizer := preview.New(m.renderer)

	persist := func(ctx context.Context, doc document.Document) error {
		_, err := m.pages.SaveContent(ctx, landingpages.SaveContentRequest{
			ID:       page.ID,
			ActorID:  actor,
			Document: doc,
			HTML:     m.renderer.Render(doc, session.Title()),
		})
		return err
	}
	opts := append([]autosave.Option{autosave.WithDelay(m.delay), autosave.WithLogger(logger)}, m.schedulerOpts...)
	scheduler := autosave.New(session, persist, opts...)

	ws := &Workspace{
		ID:            id,
		LandingPageID: page.ID,
		ActorID:       actor,
		OpenedAt:      time.Now().UTC(),
		session:       session,
		preview:       synchronizer,
		autosave:      scheduler,
	}
	ws.detachers = append(ws.detachers,
		synchronizer.Attach(session),
		session.Subscribe(func(editor.Change) { scheduler.Notify() }),
	)

	m.mu.Lock()
	m.sessions[id] = ws
	m.mu.Unlock()
	logger.Info("editor.session.opened", "sections", len(page.Content.Sections))
	return ws, nil
}

// Get returns an open session.
func (m *Manager) Get(id uuid.UUID) (*Workspace, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ws, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ws, nil
}

// Close detaches the session and cancels its pending autosave. With flush
// set, unsaved changes are written first.
func (m *Manager) Close(ctx context.Context, id uuid.UUID, flush bool) error {
	m.mu.Lock()
	ws, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	var err error
	if flush {
		err = ws.autosave.Flush(ctx)
	}
	ws.autosave.Close()
	for _, detach := range ws.detachers {
		detach()
	}
	m.logger.Info("editor.session.closed", "session_id", id.String(), "flushed", flush)
	return err
}

// CloseAll closes every open session, flushing unsaved work.
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.RLock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		if err := m.Close(ctx, id, true); err != nil && !errors.Is(err, ErrSessionNotFound) {
			errs = append(errs, fmt.Errorf("session %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// Apply runs one editor operation and returns the resulting state.
func (m *Manager) Apply(id uuid.UUID, op Operation) (*State, error) {
	ws, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	if err := op.apply(ws.session); err != nil {
		return nil, err
	}
	return ws.State(), nil
}

// Save writes unsaved changes now.
func (m *Manager) Save(ctx context.Context, id uuid.UUID) (*State, error) {
	ws, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ws.autosave.Flush(ctx); err != nil {
		return ws.State(), err
	}
	return ws.State(), nil
}

// Preview returns the latest rendered frame.
func (m *Manager) Preview(id uuid.UUID) (preview.Frame, error) {
	ws, err := m.Get(id)
	if err != nil {
		return preview.Frame{}, err
	}
	return ws.preview.Current(), nil
}

// SaveState is the autosave status as shown to the user.
type SaveState struct {
	State       autosave.State `json:"state"`
	LastError   string         `json:"last_error,omitempty"`
	LastSavedAt *time.Time     `json:"last_saved_at,omitempty"`
}

// State is a point-in-time view of a session.
type State struct {
	SessionID     uuid.UUID         `json:"session_id"`
	LandingPageID uuid.UUID         `json:"landing_page_id"`
	Title         string            `json:"title"`
	Revision      uint64            `json:"revision"`
	Dirty         bool              `json:"dirty"`
	Selected      string            `json:"selected,omitempty"`
	Save          SaveState         `json:"save"`
	Document      document.Document `json:"content"`
}

// State captures the current session state.
func (w *Workspace) State() *State {
	doc, revision := w.session.Snapshot()
	status := w.autosave.Status()
	save := SaveState{State: status.State}
	if status.LastError != nil {
		save.LastError = status.LastError.Error()
	}
	if !status.LastSavedAt.IsZero() {
		at := status.LastSavedAt
		save.LastSavedAt = &at
	}
	return &State{
		SessionID:     w.ID,
		LandingPageID: w.LandingPageID,
		Title:         w.session.Title(),
		Revision:      revision,
		Dirty:         w.session.Dirty(),
		Selected:      w.session.Selected(),
		Save:          save,
		Document:      doc,
	}
}
