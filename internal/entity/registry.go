// Package entity discovers and registers documentation roots and expands
// them into one Entity per language subdirectory.
package entity

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/docmanifest-go/internal/config"
	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/git"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// DocsDirName is the subdirectory that marks a project as documented
const DocsDirName = "docs"

// Options contains options for creating a registry
type Options struct {
	Config *config.Config
	Logger *utils.Logger
	// Git reads branch names when entities.detect_git_version is set.
	// Defaults to the go-git client.
	Git git.Client
}

// Registry holds the entities of an installation in registry order
type Registry struct {
	config    *config.Config
	languages map[string]bool
	git       git.Client
	logger    *utils.Logger
	entities  []*domain.Entity
}

// candidate is a documentation root before language expansion
type candidate struct {
	key           string
	title         string
	root          string
	version       string
	stable        bool
	defaultEntity bool
}

// NewRegistry validates the configured registrations and builds the entity
// list. Any invalid registration fails the whole registry.
func NewRegistry(ctx context.Context, opts Options) (*Registry, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, domain.NewConfigurationError("config", "", "config is required")
	}

	r := &Registry{
		config:    cfg,
		languages: cfg.LanguageTable(),
		git:       opts.Git,
		logger:    utils.OrNop(opts.Logger).WithComponent("registry"),
	}
	if r.git == nil && cfg.Entities.DetectGitVersion {
		r.git = git.NewClient()
	}

	// explicit registrations are validated before anything is scanned
	explicit := make([]candidate, 0, len(cfg.Entities.Register))
	for i, details := range cfg.Entities.Register {
		c, err := r.registerExplicit(details)
		if err != nil {
			r.logger.Error().Err(err).Int("index", i).Msg("Invalid entity registration")
			return nil, err
		}
		explicit = append(explicit, c)
	}

	var candidates []candidate
	if cfg.Entities.AutomaticRegistration {
		discovered, err := r.discoverAutomatic(ctx)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, discovered...)
	}
	candidates = append(candidates, explicit...)

	for _, c := range candidates {
		entities, err := r.expandLanguages(c)
		if err != nil {
			return nil, err
		}
		r.entities = append(r.entities, entities...)
	}

	r.warnOverlaps()

	r.logger.Debug().
		Int("candidates", len(candidates)).
		Int("entities", len(r.entities)).
		Msg("Registry ready")

	return r, nil
}

// NewRegistryFromEntities wraps an already built entity list
func NewRegistryFromEntities(entities []*domain.Entity) *Registry {
	list := make([]*domain.Entity, len(entities))
	copy(list, entities)
	return &Registry{
		logger:   utils.NopLogger(),
		entities: list,
	}
}

// discoverAutomatic scans the top-level directories of the base path and
// treats every one holding a docs directory as a candidate
func (r *Registry) discoverAutomatic(ctx context.Context) ([]candidate, error) {
	base := r.config.BasePath
	dirs, err := utils.ListDirs(base)
	if err != nil {
		return nil, domain.NewConfigurationError("base_path", base, "cannot list directory: "+err.Error())
	}

	denied := make(map[string]bool, len(r.config.Entities.Denylist))
	for _, name := range r.config.Entities.Denylist {
		denied[name] = true
	}

	var out []candidate
	for _, name := range dirs {
		if denied[name] || utils.IsHidden(name) {
			continue
		}

		dir := filepath.Join(base, name)
		docs := filepath.Join(dir, DocsDirName)
		if !utils.IsDir(docs) {
			continue
		}

		out = append(out, candidate{
			key:     name,
			title:   name,
			root:    docs,
			version: r.detectVersion(ctx, dir),
			stable:  true,
		})
	}

	r.logger.Debug().Int("count", len(out)).Str("base_path", base).Msg("Discovered entities")
	return out, nil
}

// detectVersion returns the checked-out branch of dir when git version
// detection is on, otherwise the default automatic version
func (r *Registry) detectVersion(ctx context.Context, dir string) string {
	if !r.config.Entities.DetectGitVersion || r.git == nil {
		return config.DefaultAutomaticVersion
	}

	branch, err := r.git.CurrentBranch(ctx, dir)
	if err != nil || branch == "" {
		r.logger.Debug().Err(err).Str("path", dir).Msg("No git branch, using default version")
		return config.DefaultAutomaticVersion
	}
	return branch
}

// registerExplicit validates one configured registration
func (r *Registry) registerExplicit(details config.EntityDetails) (candidate, error) {
	if strings.TrimSpace(details.Path) == "" {
		return candidate{}, domain.NewConfigurationError("path", "", "entity registration requires a path")
	}
	if strings.TrimSpace(details.Title) == "" {
		return candidate{}, domain.NewConfigurationError("title", details.Path, "entity registration requires a title")
	}

	root := utils.ResolvePath(r.config.BasePath, details.Path)
	if !utils.IsDir(root) {
		return candidate{}, domain.NewConfigurationError("path", root, "not a directory")
	}

	key := details.Key
	if key == "" {
		key = details.Title
	}

	return candidate{
		key:           key,
		title:         details.Title,
		root:          root,
		version:       details.Version,
		stable:        details.Stable,
		defaultEntity: details.DefaultEntity,
	}, nil
}

// expandLanguages emits one entity per language subdirectory of the root
func (r *Registry) expandLanguages(c candidate) ([]*domain.Entity, error) {
	dirs, err := utils.ListDirs(c.root)
	if err != nil {
		return nil, domain.NewConfigurationError("path", c.root, "cannot list directory: "+err.Error())
	}

	var out []*domain.Entity
	for _, name := range dirs {
		if !r.languages[name] {
			continue
		}
		out = append(out, &domain.Entity{
			Key:             c.key,
			Title:           c.title,
			RootPath:        filepath.Join(c.root, name),
			Language:        name,
			Version:         c.version,
			IsStable:        c.stable,
			IsDefaultEntity: c.defaultEntity,
			LinkBase:        r.config.LinkBase,
		})
	}

	if len(out) == 0 {
		r.logger.Warn().Str("key", c.key).Str("path", c.root).Msg("Entity has no language directories")
	}
	return out, nil
}

// warnOverlaps logs entity roots that contain one another
func (r *Registry) warnOverlaps() {
	for i, a := range r.entities {
		for _, b := range r.entities[i+1:] {
			if a.Owns(b.RootPath) || b.Owns(a.RootPath) {
				r.logger.Warn().
					Str("first", a.RootPath).
					Str("second", b.RootPath).
					Msg("Entity roots overlap, the first registered entity owns shared files")
			}
		}
	}
}

// Entities returns the registered entities in registry order
func (r *Registry) Entities() []*domain.Entity {
	out := make([]*domain.Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// Len returns the number of registered entities
func (r *Registry) Len() int {
	return len(r.entities)
}

// OwnerOf returns the first entity whose root contains path, or nil
func (r *Registry) OwnerOf(path string) *domain.Entity {
	for _, e := range r.entities {
		if e.Owns(path) {
			return e
		}
	}
	return nil
}

// Find returns the first entity matching key, language and version
func (r *Registry) Find(key, language, version string) *domain.Entity {
	for _, e := range r.entities {
		if e.Key == key && e.Language == language && e.Version == version {
			return e
		}
	}
	return nil
}
