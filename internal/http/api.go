package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-landing/internal/assets"
	landingcmd "github.com/goliatone/go-landing/internal/commands/landing"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/publishing"
	"github.com/goliatone/go-landing/internal/workspace"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// ActorHeader carries the acting user id.
const ActorHeader = "X-Actor-ID"

type Executor[T any] interface {
	Execute(ctx context.Context, msg T) error
}

// API registers the landing page endpoints.
type API struct {
	basePath   string
	pages      landingpages.Service
	generate   Executor[landingcmd.GeneratePageCommand]
	save       Executor[landingcmd.SaveContentCommand]
	publish    Executor[landingcmd.PublishPageCommand]
	publisher  *publishing.Publisher
	workspaces *workspace.Manager
	assets     *assets.Manager
	logger     interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath prefixes every non-public route.
func WithBasePath(path string) Option {
	return func(api *API) {
		api.basePath = strings.TrimSpace(path)
	}
}

func WithLandingPages(service landingpages.Service) Option {
	return func(api *API) {
		api.pages = service
	}
}

// WithCommands wires the command handlers used by mutating routes.
func WithCommands(
	generate Executor[landingcmd.GeneratePageCommand],
	save Executor[landingcmd.SaveContentCommand],
	publish Executor[landingcmd.PublishPageCommand],
) Option {
	return func(api *API) {
		api.generate = generate
		api.save = save
		api.publish = publish
	}
}

func WithPublisher(publisher *publishing.Publisher) Option {
	return func(api *API) {
		api.publisher = publisher
	}
}

func WithWorkspaces(manager *workspace.Manager) Option {
	return func(api *API) {
		api.workspaces = manager
	}
}

func WithAssets(manager *assets.Manager) Option {
	return func(api *API) {
		api.assets = manager
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the endpoints to mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}
	base := api.basePath
	api.registerLandingPageRoutes(mux, base)
	api.registerAssetRoutes(mux, base)
	api.registerSessionRoutes(mux, base)
	api.registerPublicRoutes(mux)
	return nil
}

// Handler returns a mux with every route registered.
func (api *API) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}
