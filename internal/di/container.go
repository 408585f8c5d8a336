package di

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-landing/internal/activity"
	"github.com/goliatone/go-landing/internal/assets"
	"github.com/goliatone/go-landing/internal/commands"
	landingcmd "github.com/goliatone/go-landing/internal/commands/landing"
	"github.com/goliatone/go-landing/internal/extract"
	"github.com/goliatone/go-landing/internal/generation"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/logging/console"
	"github.com/goliatone/go-landing/internal/logging/gologger"
	"github.com/goliatone/go-landing/internal/migrations"
	"github.com/goliatone/go-landing/internal/publishing"
	"github.com/goliatone/go-landing/internal/render"
	"github.com/goliatone/go-landing/internal/runtimeconfig"
	"github.com/goliatone/go-landing/internal/workspace"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Handlers groups the command handlers exposed by the container.
type Handlers struct {
	Generate *landingcmd.GeneratePageHandler
	Save     *landingcmd.SaveContentHandler
	Publish  *landingcmd.PublishPageHandler
	Export   *landingcmd.ExportPageHandler
}

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	activitySink   interfaces.ActivitySink
	now            func() time.Time

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	gcsClient     *storage.Client
	assetStore    assets.Store
	completer     generation.Completer
	pageRepo      landingpages.LandingPageRepository

	renderer   *render.Renderer
	pageSvc    landingpages.Service
	extractor  *extract.Registry
	assets     *assets.Manager
	generator  *generation.Generator
	workspaces *workspace.Manager
	wordpress  *publishing.WordPressClient
	publisher  *publishing.Publisher
	handlers   Handlers
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB uses db instead of opening Config.Database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLandingPageRepository bypasses the database entirely.
func WithLandingPageRepository(repo landingpages.LandingPageRepository) Option {
	return func(c *Container) {
		c.pageRepo = repo
	}
}

// WithCache overrides the repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithActivitySink forwards lifecycle events to sink, typically a go-users
// activity repository.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithAssetStore overrides the store selected by Config.Storage.
func WithAssetStore(store assets.Store) Option {
	return func(c *Container) {
		c.assetStore = store
	}
}

// WithGCSClient supplies the client used by the gcs storage backend.
func WithGCSClient(client *storage.Client) Option {
	return func(c *Container) {
		c.gcsClient = client
	}
}

// WithCompleter replaces the chat completion client.
func WithCompleter(completer generation.Completer) Option {
	return func(c *Container) {
		c.completer = completer
	}
}

// WithClock overrides the time source shared by services.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer validates cfg and wires every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func() error{
		c.configureLogging,
		c.configureRepositories,
		c.configureAssets,
		c.configureServices,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureRepositories() error {
	if c.pageRepo != nil {
		return nil
	}
	if c.bunDB == nil {
		db, err := openDB(c.Config.Database)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if c.Config.Cache.Enabled && c.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		cacheCfg.TTL = c.Config.Cache.DefaultTTL
		service, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return fmt.Errorf("di: cache service: %w", err)
		}
		c.cacheService = service
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	if c.cacheService != nil {
		c.pageRepo = landingpages.NewBunLandingPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return nil
	}
	c.pageRepo = landingpages.NewBunLandingPageRepository(c.bunDB)
	return nil
}

func openDB(cfg runtimeconfig.DatabaseConfig) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	}
}

func (c *Container) configureAssets() error {
	if c.assetStore == nil {
		cfg := c.Config.Storage
		switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
		case "memory":
			c.assetStore = assets.NewMemoryStore()
		case "gcs":
			if c.gcsClient == nil {
				client, err := storage.NewClient(context.Background())
				if err != nil {
					return fmt.Errorf("di: gcs client: %w", err)
				}
				c.gcsClient = client
			}
			store, err := assets.NewGCSStore(c.gcsClient, map[string]string{
				assets.BucketContentDocuments:   cfg.Buckets.ContentDocuments,
				assets.BucketWireframes:         cfg.Buckets.Wireframes,
				assets.BucketDesignInspirations: cfg.Buckets.DesignInspirations,
			})
			if err != nil {
				return err
			}
			c.assetStore = store
		default:
			store, err := assets.NewFSStore(cfg.Root)
			if err != nil {
				return err
			}
			c.assetStore = store
		}
	}

	c.extractor = extract.NewRegistry()
	assetOpts := []assets.Option{
		assets.WithClock(c.now),
		assets.WithExtractor(c.extractor),
		assets.WithLogger(logging.AssetsLogger(c.loggerProvider)),
	}
	if c.Config.Storage.MaxUploadSize > 0 {
		assetOpts = append(assetOpts, assets.WithMaxSize(c.Config.Storage.MaxUploadSize))
	}
	c.assets = assets.NewManager(c.assetStore, c.Config.Storage.PublicBaseURL, assetOpts...)
	return nil
}

func (c *Container) configureServices() error {
	c.renderer = render.New(render.WithClock(c.now))

	sink := c.activitySink
	if sink == nil {
		sink = activity.LogSink{Logger: logging.ModuleLogger(c.loggerProvider, "landing.activity")}
	}
	c.pageSvc = landingpages.NewService(c.pageRepo,
		landingpages.WithClock(c.now),
		landingpages.WithRenderer(c.renderer),
		landingpages.WithLogger(logging.PagesLogger(c.loggerProvider)),
		landingpages.WithActivity(activity.NewEmitter(sink, c.now)),
	)

	if c.completer == nil {
		gen := c.Config.Generation
		c.completer = generation.NewClient(generation.ClientConfig{
			Endpoint: gen.Endpoint,
			APIKey:   gen.APIKey,
			Model:    gen.Model,
			Timeout:  gen.Timeout,
		})
	}
	c.generator = generation.NewGenerator(c.completer, c.renderer,
		generation.WithImageSource(c.assets),
		generation.WithStore(c.pageSvc),
		generation.WithLogger(logging.GenerationLogger(c.loggerProvider)),
		generation.WithClock(c.now),
		generation.WithMaxImageBytes(c.Config.Generation.MaxImageBytes),
	)

	c.workspaces = workspace.NewManager(c.pageSvc, c.renderer,
		workspace.WithDelay(c.Config.Editor.AutosaveDelay),
		workspace.WithLogger(logging.EditorLogger(c.loggerProvider)),
	)

	publishingLogger := logging.PublishingLogger(c.loggerProvider)
	c.wordpress = publishing.NewWordPressClient(c.Config.Publishing.RequestTimeout)
	c.publisher = publishing.NewPublisher(c.pageSvc, c.renderer, c.wordpress,
		publishing.WithClock(c.now),
		publishing.WithLogger(publishingLogger),
		publishing.WithPageURLs(publishing.NewPageURLs(c.Config.Publishing.PublicBaseURL, c.Config.Publishing.PagePath)),
	)

	c.handlers = Handlers{
		Generate: landingcmd.NewGeneratePageHandler(c.pageSvc, c.generator, commands.CommandLogger(c.loggerProvider, "generate")),
		Save:     landingcmd.NewSaveContentHandler(c.pageSvc, commands.CommandLogger(c.loggerProvider, "save")),
		Publish:  landingcmd.NewPublishPageHandler(c.publisher, commands.CommandLogger(c.loggerProvider, "publish")),
		Export:   landingcmd.NewExportPageHandler(c.publisher, commands.CommandLogger(c.loggerProvider, "export")),
	}
	return nil
}

// Migrate applies the schema files in fsys to the container database.
func (c *Container) Migrate(ctx context.Context, fsys fs.FS) ([]string, error) {
	if c.bunDB == nil {
		return nil, nil
	}
	return migrations.Apply(ctx, c.bunDB, fsys, c.now)
}

// Close stops editing sessions and releases owned resources.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.workspaces != nil {
		_ = c.workspaces.CloseAll(context.Background())
	}
	var firstErr error
	if c.gcsClient != nil {
		if err := c.gcsClient.Close(); err != nil {
			firstErr = err
		}
	}
	if c.ownsDB && c.bunDB != nil {
		if err := c.bunDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }
func (c *Container) BunDB() *bun.DB                            { return c.bunDB }
func (c *Container) Renderer() *render.Renderer                { return c.renderer }
func (c *Container) LandingPageService() landingpages.Service  { return c.pageSvc }
func (c *Container) Assets() *assets.Manager                   { return c.assets }
func (c *Container) AssetStore() assets.Store                  { return c.assetStore }
func (c *Container) Extractor() *extract.Registry              { return c.extractor }
func (c *Container) Generator() *generation.Generator          { return c.generator }
func (c *Container) Workspaces() *workspace.Manager            { return c.workspaces }
func (c *Container) Publisher() *publishing.Publisher          { return c.publisher }
func (c *Container) Handlers() Handlers                        { return c.handlers }
