package landingpages

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LandingPageRepository is the persistence contract. Update writes every
// mutable column in a single statement.
type LandingPageRepository interface {
	Create(ctx context.Context, record *LandingPage) (*LandingPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*LandingPage, error)
	GetBySlug(ctx context.Context, slug string) (*LandingPage, error)
	List(ctx context.Context, userID uuid.UUID) ([]*LandingPage, error)
	Update(ctx context.Context, record *LandingPage) (*LandingPage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewLandingPageRepository builds the go-repository-bun repository for
// landing pages.
func NewLandingPageRepository(db *bun.DB) repository.Repository[*LandingPage] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LandingPage]{
		NewRecord: func() *LandingPage { return &LandingPage{} },
		GetID: func(p *LandingPage) uuid.UUID {
			return p.ID
		},
		SetID: func(p *LandingPage, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *LandingPage) string {
			return p.Slug
		},
	})
}
