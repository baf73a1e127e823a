package manifest

import (
	"context"
	"fmt"
	"time"

	"github.com/quantmind-br/docmanifest-go/internal/content"
	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/entity"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// ProgressFunc is called after each entity has been walked
type ProgressFunc func(done, total int, e *domain.Entity)

// BuilderOptions contains options for creating a builder
type BuilderOptions struct {
	Registry  *entity.Registry
	Walker    domain.Walker
	Extractor domain.MetadataExtractor
	// Store receives the manifest when Regenerate is asked to persist
	Store    *Store
	Logger   *utils.Logger
	Progress ProgressFunc
}

// BuildStats summarizes one Regenerate call
type BuildStats struct {
	Entities    int           `json:"entities"`
	Pages       int           `json:"pages"`
	Folders     int           `json:"folders"`
	Overwritten int           `json:"overwritten"`
	Persisted   bool          `json:"persisted"`
	Duration    time.Duration `json:"duration"`
}

// Builder walks the registered entities into a manifest
type Builder struct {
	registry  *entity.Registry
	walker    domain.Walker
	extractor domain.MetadataExtractor
	store     *Store
	logger    *utils.Logger
	progress  ProgressFunc
}

// NewBuilder creates a new Builder
func NewBuilder(opts BuilderOptions) *Builder {
	return &Builder{
		registry:  opts.Registry,
		walker:    opts.Walker,
		extractor: opts.Extractor,
		store:     opts.Store,
		logger:    utils.OrNop(opts.Logger).WithComponent("builder"),
		progress:  opts.Progress,
	}
}

// Registry returns the registry the builder walks
func (b *Builder) Registry() *entity.Registry {
	return b.registry
}

// build carries the state of one Regenerate call
type build struct {
	*Builder
	manifest *Manifest
	entity   *domain.Entity
	logger   *utils.Logger
	stats    BuildStats
}

// Regenerate walks every entity in registry order and returns the complete
// manifest. Any walker error aborts the build. When persist is set and a
// store is configured the manifest is saved; a failed save is logged and
// reported through BuildStats.Persisted.
func (b *Builder) Regenerate(ctx context.Context, persist bool) (*Manifest, *BuildStats, error) {
	if b.registry == nil || b.walker == nil {
		return nil, nil, fmt.Errorf("manifest: builder requires a registry and a walker")
	}

	start := time.Now()
	entities := b.registry.Entities()
	run := &build{Builder: b, manifest: New()}

	b.logger.Info().Int("entities", len(entities)).Msg("Building manifest")

	for i, e := range entities {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		run.entity = e
		run.logger = b.logger.WithEntity(e.Key, e.Language, e.Version)

		if err := run.onFolder("", e.RootPath, 0); err != nil {
			return nil, nil, err
		}
		if err := b.walker.Walk(ctx, e.RootPath, run.onFolder, run.onFile); err != nil {
			run.logger.Error().Err(err).Str("root", e.RootPath).Msg("Walk failed, aborting build")
			return nil, nil, fmt.Errorf("manifest: %w", domain.NewWalkError(e.RootPath, err))
		}

		run.stats.Entities++
		if b.progress != nil {
			b.progress(i+1, len(entities), e)
		}
	}

	run.stats.Duration = time.Since(start)

	if persist && b.store != nil {
		if err := b.store.Save(ctx, run.manifest); err != nil {
			b.logger.Warn().Err(err).Msg("Failed to persist manifest")
		} else {
			run.stats.Persisted = true
		}
	}

	b.logger.Info().
		Int("entities", run.stats.Entities).
		Int("pages", run.stats.Pages).
		Int("folders", run.stats.Folders).
		Int("overwritten", run.stats.Overwritten).
		Dur("duration", run.stats.Duration).
		Msg("Manifest built")

	return run.manifest, &run.stats, nil
}

func (r *build) onFolder(basename, path string, depth int) error {
	c, err := content.New(domain.KindFolder, r.entity, basename, path)
	if err != nil {
		return err
	}
	r.stats.Folders++
	r.add(content.Record(c))
	return nil
}

func (r *build) onFile(basename, path string, depth int) error {
	c, err := content.New(domain.KindPage, r.entity, basename, path)
	if err != nil {
		return err
	}
	page := c.(*content.Page)

	if r.extractor != nil {
		meta, err := r.extractor.Extract(path)
		if err != nil {
			// fall back to the file name
			r.logger.Warn().Err(err).Str("path", path).Msg("Failed to read document metadata")
		} else {
			page.SetMetadata(meta)
		}
	}

	r.stats.Pages++
	r.add(content.Record(page))
	return nil
}

func (r *build) add(rec *domain.PageRecord) {
	if r.manifest.Set(rec) {
		r.stats.Overwritten++
		r.logger.Debug().
			Str("url", rec.URL).
			Str("path", rec.Filepath).
			Msg("Duplicate URL, record replaced")
	}
}
