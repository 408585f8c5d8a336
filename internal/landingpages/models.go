package landingpages

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-landing/document"
)

// Status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// LandingPage is the persisted landing page row.
type LandingPage struct {
	bun.BaseModel `bun:"table:landing_pages,alias:lp"`

	ID                   uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	UserID               uuid.UUID  `bun:"user_id,type:uuid" json:"user_id"`
	Title                string     `bun:"title,notnull" json:"title"`
	Description          string     `bun:"description" json:"description,omitempty"`
	Slug                 string     `bun:"slug,notnull" json:"slug"`
	Status               string     `bun:"status,notnull" json:"status"`
	Content              Content    `bun:"content_json,type:jsonb" json:"content"`
	GeneratedHTML        string     `bun:"generated_html" json:"generated_html,omitempty"`
	ContentDocumentURL   string     `bun:"content_document_url" json:"content_document_url,omitempty"`
	WireframeURL         string     `bun:"wireframe_url" json:"wireframe_url,omitempty"`
	DesignInspirationURL string     `bun:"design_inspiration_url" json:"design_inspiration_url,omitempty"`
	SourceText           string     `bun:"source_text" json:"source_text,omitempty"`
	Tone                 string     `bun:"tone" json:"tone,omitempty"`
	Language             string     `bun:"language" json:"language,omitempty"`
	TargetAudience       string     `bun:"target_audience" json:"target_audience,omitempty"`
	ExternalID           string     `bun:"external_id" json:"external_id,omitempty"`
	PublishedURL         string     `bun:"published_url" json:"published_url,omitempty"`
	PublishedAt          *time.Time `bun:"published_at,nullzero" json:"published_at,omitempty"`
	CreatedAt            time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt            time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Content stores a document in the content_json column.
type Content struct {
	document.Document
}

// Value encodes the document as JSON text.
func (c Content) Value() (driver.Value, error) {
	encoded, err := document.Marshal(c.Document)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan decodes JSON text or bytes. NULL yields an empty document.
func (c *Content) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		c.Document = document.Document{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("landingpages: cannot scan %T into content", src)
	}
	doc, err := document.Parse(raw)
	if err != nil {
		return errors.Join(ErrContentInvalid, err)
	}
	c.Document = doc
	return nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	return document.Marshal(c.Document)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	doc, err := document.Parse(data)
	if err != nil {
		return err
	}
	c.Document = doc
	return nil
}

func clonePage(page *LandingPage) *LandingPage {
	if page == nil {
		return nil
	}
	cloned := *page
	cloned.Content = Content{Document: page.Content.Document.Clone()}
	if page.PublishedAt != nil {
		at := *page.PublishedAt
		cloned.PublishedAt = &at
	}
	return &cloned
}
