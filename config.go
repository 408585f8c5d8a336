package landing

import "github.com/goliatone/go-landing/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrDatabaseDriverUnknown   = runtimeconfig.ErrDatabaseDriverUnknown
	ErrDatabaseDSNRequired     = runtimeconfig.ErrDatabaseDSNRequired
	ErrStorageBackendUnknown   = runtimeconfig.ErrStorageBackendUnknown
	ErrStorageRootRequired     = runtimeconfig.ErrStorageRootRequired
	ErrStorageBucketsRequired  = runtimeconfig.ErrStorageBucketsRequired
	ErrAutosaveDelayInvalid    = runtimeconfig.ErrAutosaveDelayInvalid
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config           = runtimeconfig.Config
	ServerConfig     = runtimeconfig.ServerConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
	DatabaseConfig   = runtimeconfig.DatabaseConfig
	CacheConfig      = runtimeconfig.CacheConfig
	StorageConfig    = runtimeconfig.StorageConfig
	BucketsConfig    = runtimeconfig.BucketsConfig
	GenerationConfig = runtimeconfig.GenerationConfig
	EditorConfig     = runtimeconfig.EditorConfig
	PublishingConfig = runtimeconfig.PublishingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file over the defaults and applies environment
// overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
