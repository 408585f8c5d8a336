package generation

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/identity"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// DefaultMaxImageBytes bounds a data URI forwarded to the service.
const DefaultMaxImageBytes = 8 << 20

// ImageSource resolves a stored image URL to a data URI.
type ImageSource interface {
	DataURI(ctx context.Context, publicURL string) (string, error)
}

// Renderer renders a document to HTML.
type Renderer interface {
	Render(doc document.Document, titleFallback string) string
}

// Store persists a generation result atomically.
type Store interface {
	StoreGeneration(ctx context.Context, req landingpages.StoreGenerationRequest) (*landingpages.LandingPage, error)
}

// Result is a generated document and its render.
type Result struct {
	Document document.Document         `json:"content"`
	HTML     string                    `json:"html"`
	Source   Source                    `json:"source"`
	Page     *landingpages.LandingPage `json:"landing_page,omitempty"`
}

type Option func(*Generator)

func WithImageSource(source ImageSource) Option {
	return func(g *Generator) {
		g.images = source
	}
}

func WithStore(store Store) Option {
	return func(g *Generator) {
		g.store = store
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

func WithMaxImageBytes(limit int) Option {
	return func(g *Generator) {
		if limit > 0 {
			g.maxImageBytes = limit
		}
	}
}

// Generator produces landing page documents through a Completer.
type Generator struct {
	client        Completer
	renderer      Renderer
	images        ImageSource
	store         Store
	logger        interfaces.Logger
	now           func() time.Time
	maxImageBytes int
}

func NewGenerator(client Completer, renderer Renderer, opts ...Option) *Generator {
	g := &Generator{
		client:        client,
		renderer:      renderer,
		logger:        logging.NoOp(),
		now:           time.Now,
		maxImageBytes: DefaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate calls the generation service and falls back to a personalized
// document when its answer is unusable. When req names a landing page the
// document and HTML are stored together; a store failure discards the result.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	req = req.normalized()
	if req.Title == "" {
		return nil, goerrors.Wrap(ErrTitleRequired, goerrors.CategoryValidation, "title is required").
			WithTextCode("GENERATION_TITLE_REQUIRED")
	}
	if g.client == nil || !g.client.Configured() {
		return nil, wrapUnavailable(ErrMissingCredentials)
	}

	logger := g.logger.WithContext(ctx)
	if req.LandingPageID != uuid.Nil {
		logger = logging.WithLandingPage(logger, req.LandingPageID.String())
	}
	logger.Info("generation.start",
		"has_wireframe", req.WireframeURL != "",
		"has_inspiration", req.DesignInspirationURL != "",
		"has_document", req.DocumentText != "" || req.ContentDocumentURL != "",
	)

	images := g.fetchImages(ctx, logger, req.WireframeURL, req.DesignInspirationURL)
	resp, err := g.client.Complete(ctx, ChatRequest{
		Messages:   BuildMessages(req, images),
		Tools:      []Tool{LandingPageTool()},
		ToolChoice: &ToolChoice{Type: "function", Function: ToolChoiceFunction{Name: ToolName}},
	})
	if err != nil && !errors.Is(err, ErrMalformedResponse) {
		logger.Error("generation.upstream.failed", "code", Code(err), "error", err)
		return nil, err
	}

	doc, source, ok := ParseResponse(resp)
	if !ok {
		logger.Warn("generation.fallback.used", "malformed", err != nil)
		doc = Fallback(req.Title, req.Description, g.now())
		source = SourceFallback
	}
	doc = assignSectionIDs(doc, req)

	result := &Result{
		Document: doc,
		HTML:     g.render(doc, req.Title),
		Source:   source,
	}

	if req.LandingPageID != uuid.Nil && g.store != nil {
		page, err := g.store.StoreGeneration(ctx, landingpages.StoreGenerationRequest{
			ID:       req.LandingPageID,
			ActorID:  req.ActorID,
			Document: result.Document,
			HTML:     result.HTML,
			Source:   string(source),
		})
		if err != nil {
			logger.Error("generation.persist.failed", "error", err)
			return nil, wrapPersist(err)
		}
		result.Page = page
	}

	logger.Info("generation.success", "source", source, "sections", len(doc.Sections))
	return result, nil
}

func (g *Generator) render(doc document.Document, title string) string {
	if g.renderer == nil {
		return ""
	}
	return g.renderer.Render(doc, title)
}

// fetchImages resolves each URL concurrently. Failures are logged and the
// image is skipped; the returned slice keeps the input order.
func (g *Generator) fetchImages(ctx context.Context, logger interfaces.Logger, urls ...string) []string {
	out := make([]string, len(urls))
	if g.images == nil {
		return nil
	}
	group, groupCtx := errgroup.WithContext(ctx)
	for i, url := range urls {
		if url == "" {
			continue
		}
		group.Go(func() error {
			uri, err := g.images.DataURI(groupCtx, url)
			if err != nil {
				logger.Warn("generation.image.skipped", "url", url, "error", err)
				return nil
			}
			if len(uri) > g.maxImageBytes {
				logger.Warn("generation.image.skipped", "url", url, "reason", "too large", "bytes", len(uri))
				return nil
			}
			out[i] = uri
			return nil
		})
	}
	_ = group.Wait()

	images := out[:0]
	for _, uri := range out {
		if uri != "" {
			images = append(images, uri)
		}
	}
	return images
}

func assignSectionIDs(doc document.Document, req Request) document.Document {
	key := req.Title
	if req.LandingPageID != uuid.Nil {
		key = req.LandingPageID.String()
	}
	seen := make(map[string]struct{}, len(doc.Sections))
	for i := range doc.Sections {
		id := doc.Sections[i].ID
		if _, dup := seen[id]; id == "" || dup {
			id = identity.SectionID(key, i, string(doc.Sections[i].Type))
			doc.Sections[i].ID = id
		}
		seen[id] = struct{}{}
	}
	return doc
}
