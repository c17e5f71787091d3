// Package cliconfig persists the CLI's user-level settings: the
// default packing strategy and any container catalogue overrides.
// Adapted from the teacher's dot-directory settings idiom, but stored
// as YAML the way ehrlich-b-wingthing/internal/config/wing.go persists
// its own wing.yaml.
package cliconfig

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/loadplan/internal/model"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration.
type Config struct {
	DefaultStrategy    string                         `yaml:"default_strategy"`
	LogLevel           string                         `yaml:"log_level"`
	ContainerOverrides map[string]model.ContainerSpec `yaml:"container_overrides,omitempty"`
	RecentManifests    []string                       `yaml:"recent_manifests"`
}

// Default returns a Config populated with the engine's built-in
// defaults: SMART_MIX strategy, info-level logging, no overrides.
func Default() Config {
	return Config{
		DefaultStrategy: "smart-mix",
		LogLevel:        "info",
		RecentManifests: []string{},
	}
}

// DefaultDir returns the default directory for CLI configuration:
// ~/.loadplan on every platform.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".loadplan")
}

// DefaultPath returns the default path of the CLI config file.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads a Config from path. A missing file is not an error: it
// yields Default() so first-run invocations work with no setup.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.RecentManifests == nil {
		cfg.RecentManifests = []string{}
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating any missing parent
// directories.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CatalogueWithOverrides builds a Catalogue from the engine defaults,
// replacing any container type named in cfg.ContainerOverrides.
func CatalogueWithOverrides(cfg Config) *model.Catalogue {
	catalogue := model.NewCatalogue()
	for containerType, spec := range cfg.ContainerOverrides {
		spec.Type = containerType
		catalogue.Add(spec)
	}
	return catalogue
}

// RememberManifest prepends path to cfg's recent-manifest list,
// deduplicating and capping it at 10 entries.
func RememberManifest(cfg Config, path string) Config {
	filtered := []string{path}
	for _, p := range cfg.RecentManifests {
		if p != path {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) > 10 {
		filtered = filtered[:10]
	}
	cfg.RecentManifests = filtered
	return cfg
}
