package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/docmanifest-go/internal/config"
	"github.com/quantmind-br/docmanifest-go/internal/entity"
	"github.com/quantmind-br/docmanifest-go/internal/metadata"
	"github.com/quantmind-br/docmanifest-go/internal/walker"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under base. Keys ending in "/" are directories.
func writeTree(t *testing.T, base string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(base, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
}

// fixture is a small installation with one default, stable entity
type fixture struct {
	base     string
	root     string
	cfg      *config.Config
	registry *entity.Registry
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()

	base := t.TempDir()
	writeTree(t, base, files)
	cfg := newConfig(t, base)

	registry, err := entity.NewRegistry(context.Background(), entity.Options{Config: cfg})
	require.NoError(t, err)

	return &fixture{
		base:     base,
		root:     filepath.Join(base, "manual", "en"),
		cfg:      cfg,
		registry: registry,
	}
}

// newConfig registers base/manual as the default, stable entity
func newConfig(t *testing.T, base string) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.BasePath = base
	cfg.Entities.AutomaticRegistration = false
	cfg.Entities.Register = []config.EntityDetails{
		{Path: "manual", Title: "Manual", Stable: true, DefaultEntity: true},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

// scenarioFiles is the en/index.md, en/foo.md, en/subfolder/bar.md tree
func scenarioFiles() map[string]string {
	return map[string]string{
		"manual/en/index.md":         "# Manual\n\nWelcome.",
		"manual/en/foo.md":           "# Foo\n\nAbout foo.",
		"manual/en/subfolder/bar.md": "Bar body.",
	}
}

func (f *fixture) builder(store *Store) *Builder {
	return NewBuilder(BuilderOptions{
		Registry:  f.registry,
		Walker:    walker.New(walker.Options{Extensions: f.cfg.Walker.Extensions, Ignore: f.cfg.Walker.Ignore}),
		Extractor: metadata.NewExtractor(),
		Store:     store,
	})
}

func (f *fixture) index(store *Store) *Index {
	return NewIndex(IndexOptions{
		Builder:  f.builder(store),
		Store:    store,
		LinkBase: f.cfg.LinkBase,
	})
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}
