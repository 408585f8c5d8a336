package publishing

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// ErrNotPublished is returned when a public page is requested for a page
// that has not been published.
var ErrNotPublished = errors.New("publishing: landing page is not published")

// Pages is the subset of the landing page service the publisher uses.
type Pages interface {
	Get(ctx context.Context, id uuid.UUID) (*landingpages.LandingPage, error)
	GetBySlug(ctx context.Context, slug string) (*landingpages.LandingPage, error)
	MarkPublished(ctx context.Context, req landingpages.MarkPublishedRequest) (*landingpages.LandingPage, error)
}

// WordPress creates remote pages.
type WordPress interface {
	TestConnection(ctx context.Context, creds Credentials) (*WordPressUser, error)
	CreatePage(ctx context.Context, creds Credentials, input PageInput) (*WordPressPage, error)
}

// PublishRequest publishes a landing page to WordPress.
type PublishRequest struct {
	ID          uuid.UUID
	ActorID     uuid.UUID
	Credentials Credentials
	Status      string
	Slug        string
}

// PublishResult describes the remote page and the updated record.
type PublishResult struct {
	ExternalID string
	URL        string
	Page       *landingpages.LandingPage
}

// Export is a downloadable standalone page.
type Export struct {
	Filename string
	HTML     string
}

type Option func(*Publisher)

func WithClock(clock func() time.Time) Option {
	return func(p *Publisher) {
		if clock != nil {
			p.now = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPageURLs enables public URLs for exported and served pages.
func WithPageURLs(urls *PageURLs) Option {
	return func(p *Publisher) {
		p.urls = urls
	}
}

// Publisher exports, serves and publishes rendered landing pages.
type Publisher struct {
	pages     Pages
	renderer  landingpages.HTMLRenderer
	wordpress WordPress
	urls      *PageURLs
	now       func() time.Time
	logger    interfaces.Logger
}

func NewPublisher(pages Pages, renderer landingpages.HTMLRenderer, wordpress WordPress, opts ...Option) *Publisher {
	p := &Publisher{
		pages:     pages,
		renderer:  renderer,
		wordpress: wordpress,
		now:       time.Now,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Export returns the page HTML as a file named after the slug.
func (p *Publisher) Export(ctx context.Context, id uuid.UUID) (*Export, error) {
	page, err := p.pages.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := page.Slug
	if name == "" {
		name = "landing-page"
	}
	return &Export{Filename: name + ".html", HTML: p.pageHTML(page)}, nil
}

// Public returns the HTML of a published page by slug.
func (p *Publisher) Public(ctx context.Context, slug string) (string, error) {
	page, err := p.pages.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if page.Status != landingpages.StatusPublished {
		return "", ErrNotPublished
	}
	return p.pageHTML(page), nil
}

// PublicURL returns the hosted URL for slug, or "" when no URL scheme is
// configured.
func (p *Publisher) PublicURL(slug string) (string, error) {
	if p.urls == nil {
		return "", nil
	}
	return p.urls.PageURL(slug)
}

// TestConnection checks WordPress credentials.
func (p *Publisher) TestConnection(ctx context.Context, creds Credentials) (*WordPressUser, error) {
	return p.wordpress.TestConnection(ctx, creds)
}

// Publish creates a WordPress page from the landing page body and records
// the remote id and link on the landing page.
func (p *Publisher) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	page, err := p.pages.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if page.Status == landingpages.StatusArchived {
		return nil, landingpages.ErrArchived
	}
	body, err := BodyFragment(p.pageHTML(page))
	if err != nil {
		return nil, err
	}

	remoteSlug := strings.TrimSpace(req.Slug)
	if remoteSlug == "" {
		remoteSlug = wordpressSlug(page.Title)
	}
	remote, err := p.wordpress.CreatePage(ctx, req.Credentials, PageInput{
		Title:   page.Title,
		Content: body,
		Slug:    remoteSlug,
		Status:  req.Status,
	})
	if err != nil {
		p.logger.Error("publishing.wordpress.failed", "landing_page_id", page.ID.String(), "error", err)
		return nil, err
	}

	externalID := strconv.Itoa(remote.ID)
	updated, err := p.pages.MarkPublished(ctx, landingpages.MarkPublishedRequest{
		ID:          page.ID,
		ActorID:     req.ActorID,
		ExternalID:  externalID,
		URL:         remote.Link,
		PublishedAt: p.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	p.logger.Info("publishing.wordpress.created", "landing_page_id", page.ID.String(), "external_id", externalID)
	return &PublishResult{ExternalID: externalID, URL: remote.Link, Page: updated}, nil
}

func (p *Publisher) pageHTML(page *landingpages.LandingPage) string {
	if strings.TrimSpace(page.GeneratedHTML) != "" {
		return page.GeneratedHTML
	}
	return p.renderer.Render(page.Content.Document, page.Title)
}

func wordpressSlug(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		return strings.Join(strings.Fields(strings.ToLower(title)), "-")
	}
	return normalized
}
