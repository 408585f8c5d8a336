package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-landing/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"missing logging provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "" }, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown logging provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"invalid level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"invalid gologger format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
		{"unknown driver", func(c *runtimeconfig.Config) { c.Database.Driver = "mysql" }, runtimeconfig.ErrDatabaseDriverUnknown},
		{"missing dsn", func(c *runtimeconfig.Config) { c.Database.DSN = " " }, runtimeconfig.ErrDatabaseDSNRequired},
		{"cache ttl", func(c *runtimeconfig.Config) {
			c.Cache.Enabled = true
			c.Cache.DefaultTTL = 0
		}, runtimeconfig.ErrCacheTTLInvalid},
		{"fs root", func(c *runtimeconfig.Config) { c.Storage.Root = "" }, runtimeconfig.ErrStorageRootRequired},
		{"gcs buckets", func(c *runtimeconfig.Config) {
			c.Storage.Backend = "gcs"
			c.Storage.Buckets.Wireframes = "wf"
		}, runtimeconfig.ErrStorageBucketsRequired},
		{"unknown backend", func(c *runtimeconfig.Config) { c.Storage.Backend = "s3" }, runtimeconfig.ErrStorageBackendUnknown},
		{"autosave delay", func(c *runtimeconfig.Config) { c.Editor.AutosaveDelay = 0 }, runtimeconfig.ErrAutosaveDelayInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMergesYAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.yaml")
	yaml := `
server:
  addr: ":9090"
database:
  driver: postgres
  dsn: postgres://localhost/landing
editor:
  autosave_delay: 5s
generation:
  api_key: from-file
storage:
  backend: memory
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(runtimeconfig.APIKeyEnv, "")

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Database.Driver != "postgres" || cfg.Storage.Backend != "memory" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Editor.AutosaveDelay != 5*time.Second {
		t.Fatalf("expected 5s autosave delay, got %v", cfg.Editor.AutosaveDelay)
	}
	if cfg.Generation.APIKey != "from-file" {
		t.Fatalf("expected file api key, got %q", cfg.Generation.APIKey)
	}
	if cfg.Generation.Model != "gpt-4o-mini" || cfg.Logging.Provider != "console" {
		t.Fatalf("expected defaults to survive, got %+v", cfg)
	}
}

func TestLoadAppliesAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv(runtimeconfig.APIKeyEnv, " env-key ")
	cfg, err := runtimeconfig.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Generation.APIKey != "env-key" {
		t.Fatalf("expected env api key, got %q", cfg.Generation.APIKey)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := runtimeconfig.Decode([]byte("themes:\n  base_path: x\n"), &cfg); err == nil {
		t.Fatal("expected unknown key error")
	}
}
