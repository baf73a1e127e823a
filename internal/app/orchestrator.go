package app

import (
	"context"
	"fmt"
	"io"

	"github.com/quantmind-br/docmanifest-go/internal/cache"
	"github.com/quantmind-br/docmanifest-go/internal/config"
	"github.com/quantmind-br/docmanifest-go/internal/entity"
	"github.com/quantmind-br/docmanifest-go/internal/git"
	"github.com/quantmind-br/docmanifest-go/internal/manifest"
	"github.com/quantmind-br/docmanifest-go/internal/metadata"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
	"github.com/quantmind-br/docmanifest-go/internal/walker"
)

// Orchestrator wires configuration, cache, registry, builder and index
// together for one process
type Orchestrator struct {
	config  *config.Config
	logger  *utils.Logger
	store   cache.Store
	builder *manifest.Builder
	index   *manifest.Index
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Config  *config.Config
	Verbose bool
	// ForceRegen skips the manifest cache on first use
	ForceRegen bool
	// Progress is called after each entity is walked
	Progress manifest.ProgressFunc
	// LogOutput overrides where logs are written (stderr by default)
	LogOutput io.Writer
	// Git overrides the client used for branch versions
	Git git.Client
}

// NewOrchestrator creates a new orchestrator with the given configuration.
// Entity registration errors surface here, before anything is walked.
func NewOrchestrator(ctx context.Context, opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config

	// Validate config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Create logger
	logLevel := "info"
	logFormat := "pretty"
	if cfg.Logging.Level != "" {
		logLevel = cfg.Logging.Level
	}
	if cfg.Logging.Format != "" {
		logFormat = cfg.Logging.Format
	}
	if opts.Verbose {
		logLevel = "debug"
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  logFormat,
		Output:  opts.LogOutput,
		Verbose: opts.Verbose,
	})

	registry, err := entity.NewRegistry(ctx, entity.Options{
		Config: cfg,
		Logger: logger,
		Git:    opts.Git,
	})
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{config: cfg, logger: logger}

	var store *manifest.Store
	if cfg.Cache.Enabled {
		cacheDir := cfg.Cache.Directory
		if cacheDir == "" {
			cacheDir = config.CacheDir()
		}

		o.store, err = cache.New(cache.Options{
			Backend:   cfg.Cache.Backend,
			Directory: utils.ExpandPath(cacheDir),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		store = manifest.NewStore(o.store, cache.ManifestKey(cfg.BasePath, cfg.LinkBase), logger)
	}

	o.builder = manifest.NewBuilder(manifest.BuilderOptions{
		Registry: registry,
		Walker: walker.New(walker.Options{
			Extensions: cfg.Walker.Extensions,
			Ignore:     cfg.Walker.Ignore,
		}),
		Extractor: metadata.NewExtractor(),
		Store:     store,
		Logger:    logger,
		Progress:  opts.Progress,
	})

	o.index = manifest.NewIndex(manifest.IndexOptions{
		Builder:    o.builder,
		Store:      store,
		ForceRegen: opts.ForceRegen,
		LinkBase:   cfg.LinkBase,
		Logger:     logger,
	})

	logger.Debug().
		Str("base_path", cfg.BasePath).
		Int("entities", registry.Len()).
		Bool("cache", cfg.Cache.Enabled).
		Msg("Orchestrator ready")

	return o, nil
}

// Index returns the manifest index
func (o *Orchestrator) Index() *manifest.Index {
	return o.index
}

// Logger returns the configured logger
func (o *Orchestrator) Logger() *utils.Logger {
	return o.logger
}

// Config returns the validated configuration
func (o *Orchestrator) Config() *config.Config {
	return o.config
}

// Build rebuilds the manifest. With persist the result replaces the cached
// manifest and the index; without it both are left untouched.
func (o *Orchestrator) Build(ctx context.Context, persist bool) (*manifest.Manifest, *manifest.BuildStats, error) {
	var (
		m     *manifest.Manifest
		stats *manifest.BuildStats
		err   error
	)
	if persist {
		m, stats, err = o.index.Refresh(ctx)
	} else {
		m, stats, err = o.builder.Regenerate(ctx, false)
	}
	if err != nil {
		if ctx.Err() != nil {
			o.logger.Warn().Msg("Build cancelled")
			return nil, nil, ctx.Err()
		}
		return nil, nil, err
	}
	return m, stats, nil
}

// CacheStats returns backend statistics, or nil when caching is disabled
func (o *Orchestrator) CacheStats() map[string]interface{} {
	if o.store == nil {
		return nil
	}
	return o.store.Stats()
}

// ClearCache drops every cached entry
func (o *Orchestrator) ClearCache() error {
	if o.store == nil {
		return fmt.Errorf("cache is disabled")
	}
	return o.store.Clear()
}

// Close releases all resources held by the orchestrator
func (o *Orchestrator) Close() error {
	if o.store != nil {
		return o.store.Close()
	}
	return nil
}
