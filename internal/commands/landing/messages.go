package landingcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/publishing"
)

const (
	generatePageMessageType = "landing.pages.generate"
	saveContentMessageType  = "landing.pages.save_content"
	publishPageMessageType  = "landing.pages.publish"
	exportPageMessageType   = "landing.pages.export"
)

// GeneratePageCommand regenerates the content of a stored landing page. Empty
// hint fields fall back to the values stored on the page.
type GeneratePageCommand struct {
	LandingPageID  uuid.UUID `json:"landing_page_id"`
	ActorID        uuid.UUID `json:"actor_id"`
	DocumentText   string    `json:"document_text,omitempty"`
	Tone           string    `json:"tone,omitempty"`
	Language       string    `json:"language,omitempty"`
	TargetAudience string    `json:"target_audience,omitempty"`
}

func (GeneratePageCommand) Type() string { return generatePageMessageType }

func (m GeneratePageCommand) Validate() error {
	errs := validation.Errors{}
	if m.LandingPageID == uuid.Nil {
		errs["landing_page_id"] = validation.NewError("landing.pages.generate.id_required", "landing_page_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveContentCommand persists an edited document.
type SaveContentCommand struct {
	LandingPageID uuid.UUID         `json:"landing_page_id"`
	ActorID       uuid.UUID         `json:"actor_id"`
	Document      document.Document `json:"content"`
}

func (SaveContentCommand) Type() string { return saveContentMessageType }

func (m SaveContentCommand) Validate() error {
	errs := validation.Errors{}
	if m.LandingPageID == uuid.Nil {
		errs["landing_page_id"] = validation.NewError("landing.pages.save_content.id_required", "landing_page_id is required")
	}
	for _, section := range m.Document.Sections {
		if strings.TrimSpace(section.ID) == "" {
			errs["content"] = validation.NewError("landing.pages.save_content.section_id_required", "every section needs an id")
			break
		}
		if strings.TrimSpace(string(section.Type)) == "" {
			errs["content"] = validation.NewError("landing.pages.save_content.section_type_required",
				"section "+section.ID+" needs a type")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishPageCommand publishes a landing page to WordPress.
type PublishPageCommand struct {
	LandingPageID uuid.UUID              `json:"landing_page_id"`
	ActorID       uuid.UUID              `json:"actor_id"`
	Credentials   publishing.Credentials `json:"credentials"`
	Status        string                 `json:"status,omitempty"`
	Slug          string                 `json:"slug,omitempty"`
}

func (PublishPageCommand) Type() string { return publishPageMessageType }

func (m PublishPageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.LandingPageID, validation.By(requireID)),
		validation.Field(&m.Status, validation.In(publishing.WordPressDraft, publishing.WordPressPublish)),
		validation.Field(&m.Credentials, validation.By(requireCredentials)),
	)
}

// ExportPageCommand writes the standalone page HTML into Dir.
type ExportPageCommand struct {
	LandingPageID uuid.UUID `json:"landing_page_id"`
	Dir           string    `json:"dir"`
}

func (ExportPageCommand) Type() string { return exportPageMessageType }

func (m ExportPageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.LandingPageID, validation.By(requireID)),
		validation.Field(&m.Dir, validation.Required),
	)
}

func requireID(value any) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("landing.pages.id_required", "is required")
	}
	return nil
}

func requireCredentials(value any) error {
	creds, _ := value.(publishing.Credentials)
	if strings.TrimSpace(creds.SiteURL) == "" || strings.TrimSpace(creds.Username) == "" || strings.TrimSpace(creds.AppPassword) == "" {
		return validation.NewError("landing.pages.publish.credentials_required", "site_url, username and app_password are required")
	}
	return nil
}
