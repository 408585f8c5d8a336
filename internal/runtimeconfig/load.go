package runtimeconfig

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// APIKeyEnv overrides Generation.APIKey when set.
const APIKeyEnv = "LANDING_GENERATION_API_KEY"

// Load reads a YAML file over DefaultConfig and validates the result. An empty
// path yields the defaults plus environment overrides.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("landing config: read %s: %w", path, err)
		}
		if err := Decode(raw, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg, os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode merges YAML into cfg. Unknown keys are rejected.
func Decode(raw []byte, cfg *Config) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("landing config: decode: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if key, ok := lookup(APIKeyEnv); ok && strings.TrimSpace(key) != "" {
		cfg.Generation.APIKey = strings.TrimSpace(key)
	}
}
