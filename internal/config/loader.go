package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults
// Uses the global viper instance to access CLI flag bindings
func Load() (*Config, error) {
	return load(viper.GetViper())
}

// LoadWithViper loads configuration into a fresh viper instance and returns it.
// A non-empty configFile replaces the default search paths.
func LoadWithViper(configFile string) (*Config, *viper.Viper, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	cfg, err := load(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (DOCMANIFEST_*)
	v.SetEnvPrefix("DOCMANIFEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("base_path", DefaultBasePath)
	v.SetDefault("link_base", DefaultLinkBase)
	v.SetDefault("languages", DefaultLanguages)

	// Entity defaults
	v.SetDefault("entities.automatic_registration", DefaultAutomaticRegistration)
	v.SetDefault("entities.detect_git_version", DefaultDetectGitVersion)
	v.SetDefault("entities.denylist", DefaultDenylist)

	// Walker defaults
	v.SetDefault("walker.extensions", DefaultExtensions)
	v.SetDefault("walker.ignore", DefaultIgnore)

	// Cache defaults
	v.SetDefault("cache.enabled", DefaultCacheEnabled)
	v.SetDefault("cache.backend", DefaultCacheBackend)
	v.SetDefault("cache.directory", CacheDir())

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

// EnsureCacheDir creates the cache directory if it doesn't exist
func EnsureCacheDir() error {
	return os.MkdirAll(CacheDir(), 0755)
}
