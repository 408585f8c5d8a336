package landing

import (
	"context"
	"net/http"

	"github.com/goliatone/go-landing/internal/assets"
	"github.com/goliatone/go-landing/internal/di"
	"github.com/goliatone/go-landing/internal/generation"
	apihttp "github.com/goliatone/go-landing/internal/http"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/publishing"
	"github.com/goliatone/go-landing/internal/render"
	"github.com/goliatone/go-landing/internal/workspace"
)

// LandingPageService exports the landing page service contract.
type LandingPageService = landingpages.Service

// LandingPage exports the persisted landing page record.
type LandingPage = landingpages.LandingPage

// Module represents the top level landing page runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Migrate applies the embedded schema for the configured database dialect.
func (m *Module) Migrate(ctx context.Context) ([]string, error) {
	return m.container.Migrate(ctx, GetMigrationsFS())
}

// HTTPHandler builds the JSON API and public page routes.
func (m *Module) HTTPHandler() (http.Handler, error) {
	handlers := m.container.Handlers()
	api := apihttp.NewAPI(
		apihttp.WithLandingPages(m.container.LandingPageService()),
		apihttp.WithCommands(handlers.Generate, handlers.Save, handlers.Publish),
		apihttp.WithPublisher(m.container.Publisher()),
		apihttp.WithWorkspaces(m.container.Workspaces()),
		apihttp.WithAssets(m.container.Assets()),
		apihttp.WithLogger(m.container.LoggerProvider().GetLogger("landing.http")),
	)
	return api.Handler()
}

// LandingPages returns the landing page service.
func (m *Module) LandingPages() LandingPageService {
	return m.container.LandingPageService()
}

// Renderer returns the document renderer.
func (m *Module) Renderer() *render.Renderer {
	return m.container.Renderer()
}

// Generator returns the generation adapter.
func (m *Module) Generator() *generation.Generator {
	return m.container.Generator()
}

// Workspaces returns the editing session manager.
func (m *Module) Workspaces() *workspace.Manager {
	return m.container.Workspaces()
}

// Publisher returns the export and WordPress publisher.
func (m *Module) Publisher() *publishing.Publisher {
	return m.container.Publisher()
}

// Assets returns the upload manager.
func (m *Module) Assets() *assets.Manager {
	return m.container.Assets()
}

// Close stops editing sessions and releases owned resources.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
