package landingpages

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryLandingPageRepository is an in-memory landing page store for tests
// and the local CLI.
type MemoryLandingPageRepository struct {
	mu        sync.RWMutex
	pages     map[uuid.UUID]*LandingPage
	slugIndex map[string]uuid.UUID
}

// NewMemoryLandingPageRepository constructs the repository.
func NewMemoryLandingPageRepository() *MemoryLandingPageRepository {
	return &MemoryLandingPageRepository{
		pages:     make(map[uuid.UUID]*LandingPage),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied landing page.
func (m *MemoryLandingPageRepository) Create(_ context.Context, record *LandingPage) (*LandingPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.slugIndex[record.Slug]; exists {
		return nil, ErrSlugTaken
	}
	copied := clonePage(record)
	m.pages[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePage(copied), nil
}

// GetByID retrieves a landing page by identifier.
func (m *MemoryLandingPageRepository) GetByID(_ context.Context, id uuid.UUID) (*LandingPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return clonePage(page), nil
}

// GetBySlug retrieves a landing page by slug.
func (m *MemoryLandingPageRepository) GetBySlug(_ context.Context, slug string) (*LandingPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Key: slug}
	}
	return clonePage(m.pages[id]), nil
}

// List returns the landing pages owned by userID, newest first. uuid.Nil
// lists every page.
func (m *MemoryLandingPageRepository) List(_ context.Context, userID uuid.UUID) ([]*LandingPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*LandingPage, 0, len(m.pages))
	for _, record := range m.pages {
		if userID != uuid.Nil && record.UserID != userID {
			continue
		}
		out = append(out, clonePage(record))
	}
	slices.SortFunc(out, func(a, b *LandingPage) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
	return out, nil
}

// Update replaces the stored landing page.
func (m *MemoryLandingPageRepository) Update(_ context.Context, record *LandingPage) (*LandingPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.pages[record.ID]
	if !ok {
		return nil, &NotFoundError{Key: record.ID.String()}
	}
	if existing.Slug != record.Slug {
		if _, taken := m.slugIndex[record.Slug]; taken {
			return nil, ErrSlugTaken
		}
		delete(m.slugIndex, existing.Slug)
		m.slugIndex[record.Slug] = record.ID
	}
	copied := clonePage(record)
	copied.CreatedAt = existing.CreatedAt
	m.pages[record.ID] = copied
	return clonePage(copied), nil
}

// Delete removes the landing page.
func (m *MemoryLandingPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.pages[id]
	if !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.slugIndex, existing.Slug)
	delete(m.pages, id)
	return nil
}
