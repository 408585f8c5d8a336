package landingpages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/activity"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Service manages the landing page lifecycle.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*LandingPage, error)
	Get(ctx context.Context, id uuid.UUID) (*LandingPage, error)
	GetBySlug(ctx context.Context, slug string) (*LandingPage, error)
	List(ctx context.Context, userID uuid.UUID) ([]*LandingPage, error)
	UpdateSources(ctx context.Context, req UpdateSourcesRequest) (*LandingPage, error)
	SaveContent(ctx context.Context, req SaveContentRequest) (*LandingPage, error)
	StoreGeneration(ctx context.Context, req StoreGenerationRequest) (*LandingPage, error)
	MarkPublished(ctx context.Context, req MarkPublishedRequest) (*LandingPage, error)
	Archive(ctx context.Context, id, actor uuid.UUID) (*LandingPage, error)
	Delete(ctx context.Context, id, actor uuid.UUID) error
}

// HTMLRenderer renders a document into a standalone HTML page.
type HTMLRenderer interface {
	Render(doc document.Document, titleFallback string) string
}

// CreateRequest captures the inputs of a new landing page.
type CreateRequest struct {
	UserID               uuid.UUID
	Title                string
	Description          string
	Tone                 string
	Language             string
	TargetAudience       string
	ContentDocumentURL   string
	WireframeURL         string
	DesignInspirationURL string
	SourceText           string
}

// UpdateSourcesRequest replaces the generation hints and asset links. Nil
// fields are left untouched.
type UpdateSourcesRequest struct {
	ID                   uuid.UUID
	ActorID              uuid.UUID
	Description          *string
	Tone                 *string
	Language             *string
	TargetAudience       *string
	ContentDocumentURL   *string
	WireframeURL         *string
	DesignInspirationURL *string
	SourceText           *string
}

// SaveContentRequest persists an edited document. An empty HTML is rendered
// from the document.
type SaveContentRequest struct {
	ID       uuid.UUID
	ActorID  uuid.UUID
	Document document.Document
	HTML     string
}

// StoreGenerationRequest persists a generated document and its render.
type StoreGenerationRequest struct {
	ID       uuid.UUID
	ActorID  uuid.UUID
	Document document.Document
	HTML     string
	Source   string
}

// MarkPublishedRequest records an external publication.
type MarkPublishedRequest struct {
	ID          uuid.UUID
	ActorID     uuid.UUID
	ExternalID  string
	URL         string
	PublishedAt time.Time
}

// ServiceOption configures the service.
type ServiceOption func(*service)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithRenderer sets the renderer used when callers do not supply HTML.
func WithRenderer(renderer HTMLRenderer) ServiceOption {
	return func(s *service) {
		s.renderer = renderer
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActivity emits lifecycle events through emitter.
func WithActivity(emitter *activity.Emitter) ServiceOption {
	return func(s *service) {
		s.activity = emitter
	}
}

type service struct {
	pages    LandingPageRepository
	now      func() time.Time
	id       IDGenerator
	renderer HTMLRenderer
	logger   interfaces.Logger
	activity *activity.Emitter
}

// NewService constructs the landing page service.
func NewService(pages LandingPageRepository, opts ...ServiceOption) Service {
	s := &service{
		pages:  pages,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*LandingPage, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	now := s.now().UTC()
	record := &LandingPage{
		ID:                   s.id(),
		UserID:               req.UserID,
		Title:                title,
		Description:          strings.TrimSpace(req.Description),
		Slug:                 GenerateSlug(title, now),
		Status:               StatusDraft,
		Content:              Content{Document: document.Document{}},
		ContentDocumentURL:   req.ContentDocumentURL,
		WireframeURL:         req.WireframeURL,
		DesignInspirationURL: req.DesignInspirationURL,
		SourceText:           req.SourceText,
		Tone:                 req.Tone,
		Language:             req.Language,
		TargetAudience:       req.TargetAudience,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	created, err := s.pages.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logFor(created.ID).Info("landing_page.created", "slug", created.Slug)
	s.emit(ctx, activity.VerbCreated, req.UserID, created.ID, map[string]any{"slug": created.Slug})
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*LandingPage, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	return s.pages.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*LandingPage, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, &NotFoundError{Key: slug}
	}
	return s.pages.GetBySlug(ctx, slug)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]*LandingPage, error) {
	return s.pages.List(ctx, userID)
}

func (s *service) UpdateSources(ctx context.Context, req UpdateSourcesRequest) (*LandingPage, error) {
	record, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	assign(&record.Description, req.Description)
	assign(&record.Tone, req.Tone)
	assign(&record.Language, req.Language)
	assign(&record.TargetAudience, req.TargetAudience)
	assign(&record.ContentDocumentURL, req.ContentDocumentURL)
	assign(&record.WireframeURL, req.WireframeURL)
	assign(&record.DesignInspirationURL, req.DesignInspirationURL)
	assign(&record.SourceText, req.SourceText)
	record.UpdatedAt = s.now().UTC()
	return s.pages.Update(ctx, record)
}

// SaveContent writes content and HTML together and stamps metadata.lastEdited.
func (s *service) SaveContent(ctx context.Context, req SaveContentRequest) (*LandingPage, error) {
	record, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if record.Status == StatusArchived {
		return nil, ErrArchived
	}
	now := s.now().UTC()
	doc := req.Document.Clone()
	doc.Metadata.LastEdited = &now

	record.Content = Content{Document: doc}
	record.GeneratedHTML = s.renderHTML(req.HTML, doc, record.Title)
	record.UpdatedAt = now

	updated, err := s.pages.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logFor(updated.ID).Debug("landing_page.content.saved", "sections", len(doc.Sections))
	s.emit(ctx, activity.VerbSaved, req.ActorID, updated.ID, map[string]any{"sections": len(doc.Sections)})
	return updated, nil
}

// StoreGeneration writes a generated document and resets the status to draft.
func (s *service) StoreGeneration(ctx context.Context, req StoreGenerationRequest) (*LandingPage, error) {
	record, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	doc := req.Document.Clone()
	record.Content = Content{Document: doc}
	record.GeneratedHTML = s.renderHTML(req.HTML, doc, record.Title)
	record.Status = StatusDraft
	record.UpdatedAt = s.now().UTC()

	updated, err := s.pages.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logFor(updated.ID).Info("landing_page.generation.stored", "source", req.Source, "sections", len(doc.Sections))
	s.emit(ctx, activity.VerbGenerated, req.ActorID, updated.ID, map[string]any{
		"source":   req.Source,
		"sections": len(doc.Sections),
	})
	return updated, nil
}

func (s *service) MarkPublished(ctx context.Context, req MarkPublishedRequest) (*LandingPage, error) {
	record, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	at := req.PublishedAt
	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()
	record.Status = StatusPublished
	record.PublishedAt = &at
	if req.ExternalID != "" {
		record.ExternalID = req.ExternalID
	}
	if req.URL != "" {
		record.PublishedURL = req.URL
	}
	record.UpdatedAt = s.now().UTC()

	updated, err := s.pages.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logFor(updated.ID).Info("landing_page.published", "external_id", updated.ExternalID, "url", updated.PublishedURL)
	s.emit(ctx, activity.VerbPublished, req.ActorID, updated.ID, map[string]any{
		"external_id": updated.ExternalID,
		"url":         updated.PublishedURL,
	})
	return updated, nil
}

func (s *service) Archive(ctx context.Context, id, actor uuid.UUID) (*LandingPage, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status == StatusArchived {
		return record, nil
	}
	record.Status = StatusArchived
	record.UpdatedAt = s.now().UTC()
	updated, err := s.pages.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, activity.VerbArchived, actor, updated.ID, nil)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id, actor uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	if err := s.pages.Delete(ctx, id); err != nil {
		return err
	}
	s.logFor(id).Info("landing_page.deleted")
	s.emit(ctx, activity.VerbDeleted, actor, id, nil)
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*LandingPage, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	return s.pages.GetByID(ctx, id)
}

func (s *service) renderHTML(supplied string, doc document.Document, title string) string {
	if supplied != "" || s.renderer == nil {
		return supplied
	}
	return s.renderer.Render(doc, title)
}

func (s *service) logFor(id uuid.UUID) interfaces.Logger {
	return logging.WithLandingPage(s.logger, id.String())
}

func (s *service) emit(ctx context.Context, verb string, actor, id uuid.UUID, meta map[string]any) {
	if err := s.activity.Emit(ctx, activity.Event{Verb: verb, ActorID: actor, ObjectID: id, Metadata: meta}); err != nil {
		s.logFor(id).Warn("landing_page.activity.failed", "verb", verb, "error", err)
	}
}

func assign(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

// IsNotFound reports whether err signals a missing landing page.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
