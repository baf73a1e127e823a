package manifest

import (
	"context"
	"errors"
	"sync"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/entity"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// errNoBuilder is returned when an index without a builder has to build
var errNoBuilder = errors.New("manifest: index has no builder")

// IndexOptions contains options for creating an index
type IndexOptions struct {
	Builder *Builder
	// Store is optional; without it every process builds its own manifest
	Store *Store
	// ForceRegen skips the cache lookup on first use
	ForceRegen bool
	// LinkBase prefixes the links of navigation entries
	LinkBase string
	Logger   *utils.Logger
}

// Index owns the manifest of one process. The manifest is built or loaded
// at most once; Refresh is the only way to rebuild it.
type Index struct {
	builder    *Builder
	registry   *entity.Registry
	store      *Store
	forceRegen bool
	linkBase   string
	logger     *utils.Logger

	mu        sync.Mutex
	manifest  *Manifest
	lastBuild *BuildStats
}

// NewIndex creates a new Index
func NewIndex(opts IndexOptions) *Index {
	idx := &Index{
		builder:    opts.Builder,
		store:      opts.Store,
		forceRegen: opts.ForceRegen,
		linkBase:   opts.LinkBase,
		logger:     utils.OrNop(opts.Logger).WithComponent("index"),
	}
	if opts.Builder != nil {
		idx.registry = opts.Builder.Registry()
	}
	if idx.registry == nil {
		idx.registry = entity.NewRegistryFromEntities(nil)
	}
	return idx
}

// Pages returns the manifest, loading or building it on first use
func (i *Index) Pages(ctx context.Context) (*Manifest, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.manifest != nil {
		return i.manifest, nil
	}

	if !i.forceRegen && i.store != nil {
		if m, ok := i.store.Load(ctx); ok {
			i.manifest = m
			return m, nil
		}
	}

	if i.builder == nil {
		return nil, errNoBuilder
	}
	m, stats, err := i.builder.Regenerate(ctx, i.store != nil)
	if err != nil {
		return nil, err
	}
	i.manifest = m
	i.lastBuild = stats
	return m, nil
}

// Refresh rebuilds the manifest, persists it and swaps it in
func (i *Index) Refresh(ctx context.Context) (*Manifest, *BuildStats, error) {
	if i.builder == nil {
		return nil, nil, errNoBuilder
	}
	m, stats, err := i.builder.Regenerate(ctx, i.store != nil)
	if err != nil {
		return nil, nil, err
	}

	i.mu.Lock()
	i.manifest = m
	i.lastBuild = stats
	i.mu.Unlock()

	i.logger.Debug().Int("pages", m.Len()).Msg("Manifest refreshed")
	return m, stats, nil
}

// LastBuild returns the statistics of the last build in this process, or
// nil when the manifest came from the cache
func (i *Index) LastBuild() *BuildStats {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.lastBuild
}

// Entities returns the registered entities in registry order
func (i *Index) Entities() []*domain.Entity {
	return i.registry.Entities()
}

// Registry returns the entity registry
func (i *Index) Registry() *entity.Registry {
	return i.registry
}
