package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrLoggingProviderRequired = errors.New("landing config: logging provider is required")
	ErrLoggingProviderUnknown  = errors.New("landing config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("landing config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("landing config: logging format is invalid")
	ErrDatabaseDriverUnknown   = errors.New("landing config: database driver must be sqlite or postgres")
	ErrDatabaseDSNRequired     = errors.New("landing config: database dsn is required")
	ErrStorageBackendUnknown   = errors.New("landing config: storage backend must be fs, gcs or memory")
	ErrStorageRootRequired     = errors.New("landing config: storage root is required for the fs backend")
	ErrStorageBucketsRequired  = errors.New("landing config: gcs backend requires a bucket for every asset kind")
	ErrAutosaveDelayInvalid    = errors.New("landing config: autosave delay must be positive")
	ErrCacheTTLInvalid         = errors.New("landing config: cache ttl must be positive when cache is enabled")
)

// Config aggregates the runtime settings of the landing page module.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Database   DatabaseConfig   `yaml:"database"`
	Cache      CacheConfig      `yaml:"cache"`
	Storage    StorageConfig    `yaml:"storage"`
	Generation GenerationConfig `yaml:"generation"`
	Editor     EditorConfig     `yaml:"editor"`
	Publishing PublishingConfig `yaml:"publishing"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DatabaseConfig selects the bun dialect and connection string.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// StorageConfig selects where uploaded assets live.
type StorageConfig struct {
	Backend       string        `yaml:"backend"`
	Root          string        `yaml:"root"`
	PublicBaseURL string        `yaml:"public_base_url"`
	MaxUploadSize int64         `yaml:"max_upload_size"`
	Buckets       BucketsConfig `yaml:"buckets"`
}

// BucketsConfig maps logical asset buckets to GCS bucket names.
type BucketsConfig struct {
	ContentDocuments   string `yaml:"content_documents"`
	Wireframes         string `yaml:"wireframes"`
	DesignInspirations string `yaml:"design_inspirations"`
}

// GenerationConfig configures the chat completion client.
type GenerationConfig struct {
	Endpoint      string        `yaml:"endpoint"`
	APIKey        string        `yaml:"api_key"`
	Model         string        `yaml:"model"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxImageBytes int           `yaml:"max_image_bytes"`
}

// EditorConfig configures editing sessions.
type EditorConfig struct {
	AutosaveDelay time.Duration `yaml:"autosave_delay"`
}

// PublishingConfig configures public pages and WordPress calls.
type PublishingConfig struct {
	PublicBaseURL  string        `yaml:"public_base_url"`
	PagePath       string        `yaml:"page_path"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DefaultConfig returns a configuration that runs locally without external
// services: sqlite in memory, assets on disk and console logging.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file:landing.db?cache=shared&_fk=1",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Storage: StorageConfig{
			Backend:       "fs",
			Root:          "storage",
			PublicBaseURL: "http://localhost:8080",
			MaxUploadSize: 20 << 20,
		},
		Generation: GenerationConfig{
			Model:         "gpt-4o-mini",
			Timeout:       90 * time.Second,
			MaxImageBytes: 8 << 20,
		},
		Editor: EditorConfig{
			AutosaveDelay: 3 * time.Second,
		},
		Publishing: PublishingConfig{
			PublicBaseURL:  "http://localhost:8080",
			PagePath:       "/p/:slug",
			RequestTimeout: 30 * time.Second,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if err := cfg.Logging.validate(); err != nil {
		return err
	}
	switch normalize(cfg.Database.Driver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: %s", ErrDatabaseDriverUnknown, cfg.Database.Driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return ErrDatabaseDSNRequired
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	switch normalize(cfg.Storage.Backend) {
	case "memory":
	case "fs":
		if strings.TrimSpace(cfg.Storage.Root) == "" {
			return ErrStorageRootRequired
		}
	case "gcs":
		b := cfg.Storage.Buckets
		if strings.TrimSpace(b.ContentDocuments) == "" || strings.TrimSpace(b.Wireframes) == "" || strings.TrimSpace(b.DesignInspirations) == "" {
			return ErrStorageBucketsRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageBackendUnknown, cfg.Storage.Backend)
	}
	if cfg.Editor.AutosaveDelay <= 0 {
		return ErrAutosaveDelayInvalid
	}
	return nil
}

func (l LoggingConfig) validate() error {
	provider := normalize(l.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(l.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(l.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
