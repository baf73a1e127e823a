package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// Config represents the application configuration
type Config struct {
	BasePath  string         `mapstructure:"base_path" yaml:"base_path"`
	LinkBase  string         `mapstructure:"link_base" yaml:"link_base"`
	Languages []string       `mapstructure:"languages" yaml:"languages"`
	Entities  EntitiesConfig `mapstructure:"entities" yaml:"entities"`
	Walker    WalkerConfig   `mapstructure:"walker" yaml:"walker"`
	Cache     CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Logging   LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// EntitiesConfig controls how documentation roots are registered
type EntitiesConfig struct {
	AutomaticRegistration bool            `mapstructure:"automatic_registration" yaml:"automatic_registration"`
	DetectGitVersion      bool            `mapstructure:"detect_git_version" yaml:"detect_git_version"`
	Denylist              []string        `mapstructure:"denylist" yaml:"denylist"`
	Register              []EntityDetails `mapstructure:"register" yaml:"register"`
}

// EntityDetails is one explicit entity registration.
// Path and Title are required; Key defaults to Title.
type EntityDetails struct {
	Path          string `mapstructure:"path" yaml:"path"`
	Title         string `mapstructure:"title" yaml:"title"`
	Key           string `mapstructure:"key" yaml:"key"`
	Version       string `mapstructure:"version" yaml:"version"`
	Stable        bool   `mapstructure:"stable" yaml:"stable"`
	DefaultEntity bool   `mapstructure:"default_entity" yaml:"default_entity"`
}

// WalkerConfig contains directory walker settings
type WalkerConfig struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	Ignore     []string `mapstructure:"ignore" yaml:"ignore"`
}

// CacheConfig contains manifest cache settings
type CacheConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Backend   string `mapstructure:"backend" yaml:"backend"`
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	abs, err := filepath.Abs(utils.ExpandPath(c.BasePath))
	if err != nil {
		return fmt.Errorf("invalid base_path: %w", err)
	}
	c.BasePath = abs

	if len(c.Languages) == 0 {
		c.Languages = DefaultLanguages
	}
	if len(c.Walker.Extensions) == 0 {
		c.Walker.Extensions = DefaultExtensions
	}
	exts := make([]string, 0, len(c.Walker.Extensions))
	for _, ext := range c.Walker.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Walker.Extensions = exts

	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultCacheBackend
	}
	switch c.Cache.Backend {
	case BackendBadger, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid cache.backend %q (use %s, %s or %s)",
			c.Cache.Backend, BackendBadger, BackendSQLite, BackendMemory)
	}
	if c.Cache.Directory != "" {
		c.Cache.Directory = utils.ExpandPath(c.Cache.Directory)
	}
	return nil
}

// LanguageTable returns the configured language codes as a set
func (c *Config) LanguageTable() map[string]bool {
	table := make(map[string]bool, len(c.Languages))
	for _, lang := range c.Languages {
		table[lang] = true
	}
	return table
}
