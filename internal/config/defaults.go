package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	DefaultBasePath = "."
	DefaultLinkBase = "dev/docs"

	// Entity defaults
	DefaultAutomaticRegistration = true
	DefaultDetectGitVersion      = false
	DefaultAutomaticVersion      = "master"

	// Cache defaults
	DefaultCacheEnabled = true
	DefaultCacheBackend = BackendBadger

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// Cache backends
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultLanguages is the language table used to recognize language
// subdirectories of an entity root
var DefaultLanguages = []string{
	"ar", "bg", "cs", "da", "de", "el", "en", "eo", "es", "et", "fa", "fi",
	"fr", "he", "hi", "hr", "hu", "id", "is", "it", "ja", "ko", "lt", "lv",
	"ms", "nb", "nl", "pl", "pt", "ro", "ru", "sk", "sl", "sr", "sv", "th",
	"tr", "uk", "vi", "zh",
}

// DefaultDenylist holds top-level directories never scanned for docs
var DefaultDenylist = []string{"themes"}

// DefaultExtensions holds the document extensions indexed by the walker
var DefaultExtensions = []string{".md", ".markdown", ".html", ".htm"}

// DefaultIgnore holds names the walker skips entirely
var DefaultIgnore = []string{".git", ".svn", "_images", "_assets", "node_modules"}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docmanifest"
	}
	return filepath.Join(home, ".docmanifest")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		BasePath:  DefaultBasePath,
		LinkBase:  DefaultLinkBase,
		Languages: append([]string(nil), DefaultLanguages...),
		Entities: EntitiesConfig{
			AutomaticRegistration: DefaultAutomaticRegistration,
			DetectGitVersion:      DefaultDetectGitVersion,
			Denylist:              append([]string(nil), DefaultDenylist...),
		},
		Walker: WalkerConfig{
			Extensions: append([]string(nil), DefaultExtensions...),
			Ignore:     append([]string(nil), DefaultIgnore...),
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			Backend:   DefaultCacheBackend,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
