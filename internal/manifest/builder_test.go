package manifest

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/entity"
	"github.com/quantmind-br/docmanifest-go/internal/mocks"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Scenario(t *testing.T) {
	f := newFixture(t, scenarioFiles())

	m, stats, err := f.builder(nil).Regenerate(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, []string{"en/", "en/foo/", "en/subfolder/", "en/subfolder/bar/"}, m.Keys())
	for _, key := range m.Keys() {
		assert.Equal(t, key, NormalizeURL(key))
	}

	root := m.Get("en/")
	assert.Equal(t, "index.md", root.Basename)
	assert.Equal(t, domain.KindPage, root.Kind)
	assert.Equal(t, "Manual", root.Title)
	assert.Equal(t, f.path("index.md"), root.Filepath)

	foo := m.Get("en/foo/")
	assert.Equal(t, "Foo", foo.Title)
	assert.Equal(t, "About foo.", foo.Summary)

	folder := m.Get("en/subfolder/")
	assert.Equal(t, domain.KindFolder, folder.Kind)
	assert.Equal(t, "Subfolder", folder.Title)
	assert.Empty(t, folder.Summary)

	bar := m.Get("en/subfolder/bar/")
	assert.Equal(t, "Bar", bar.Title)
	assert.Equal(t, "Bar body.", bar.Summary)

	assert.Equal(t, 1, stats.Entities)
	assert.Equal(t, 3, stats.Pages)
	assert.Equal(t, 2, stats.Folders)
	assert.Equal(t, 1, stats.Overwritten)
	assert.False(t, stats.Persisted)
}

func TestBuilder_FolderOverwrittenByPageKeepsPosition(t *testing.T) {
	f := newFixture(t, map[string]string{
		"manual/en/api/intro.md": "# Intro",
		"manual/en/api.md":       "# API",
		"manual/en/zeta.md":      "# Zeta",
	})

	m, stats, err := f.builder(nil).Regenerate(context.Background(), false)
	require.NoError(t, err)

	// "api" sorts before "api.md", so the page replaces the folder record
	assert.Equal(t, []string{"en/", "en/api/", "en/api/intro/", "en/zeta/"}, m.Keys())
	assert.Equal(t, domain.KindPage, m.Get("en/api/").Kind)
	assert.Equal(t, "API", m.Get("en/api/").Title)
	assert.Equal(t, 1, stats.Overwritten)
}

func TestBuilder_MetadataFailureDegrades(t *testing.T) {
	f := newFixture(t, map[string]string{
		"manual/en/02_broken-page.md": "---\ntitle: [oops\n---\n# Heading",
	})

	m, _, err := f.builder(nil).Regenerate(context.Background(), false)
	require.NoError(t, err)

	rec := m.Get("en/02_broken-page/")
	require.NotNil(t, rec)
	assert.Equal(t, "Broken Page", rec.Title)
	assert.Empty(t, rec.Summary)
}

func TestBuilder_ExtractorErrorPerFile(t *testing.T) {
	f := newFixture(t, map[string]string{
		"manual/en/a.md": "x",
		"manual/en/b.md": "y",
	})

	extractor := &mocks.MockMetadataExtractor{}
	extractor.On("Extract", f.path("a.md")).Return(nil, errors.New("unreadable"))
	extractor.On("Extract", f.path("b.md")).Return(&domain.DocumentMeta{Title: "Bee", Summary: "Buzz"}, nil)

	b := NewBuilder(BuilderOptions{
		Registry:  f.registry,
		Walker:    f.builder(nil).walker,
		Extractor: extractor,
	})

	m, _, err := b.Regenerate(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "A", m.Get("en/a/").Title)
	assert.Equal(t, "Bee", m.Get("en/b/").Title)
	assert.Equal(t, "Buzz", m.Get("en/b/").Summary)
	extractor.AssertExpectations(t)
}

func TestBuilder_WalkerErrorAborts(t *testing.T) {
	root := filepath.FromSlash("/srv/docs/en")
	registry := entity.NewRegistryFromEntities([]*domain.Entity{
		{Key: "docs", Title: "Docs", RootPath: root, Language: "en", IsStable: true, LinkBase: "dev/docs"},
	})

	walkErr := errors.New("permission denied")
	w := &mocks.MockWalker{}
	w.On("Walk", mock.Anything, root, mock.Anything, mock.Anything).Return(walkErr)

	var progressed int
	b := NewBuilder(BuilderOptions{
		Registry: registry,
		Walker:   w,
		Progress: func(done, total int, e *domain.Entity) { progressed++ },
	})

	m, stats, err := b.Regenerate(context.Background(), true)
	require.Error(t, err)
	assert.Nil(t, m)
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, walkErr)

	var we *domain.WalkError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, root, we.Root)
	assert.Contains(t, err.Error(), "manifest: walk ")
	assert.Equal(t, 0, progressed)
}

func TestBuilder_CancelledContext(t *testing.T) {
	f := newFixture(t, scenarioFiles())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, _, err := f.builder(nil).Regenerate(ctx, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, m)
}

func TestBuilder_RequiresRegistryAndWalker(t *testing.T) {
	_, _, err := NewBuilder(BuilderOptions{}).Regenerate(context.Background(), false)
	assert.Error(t, err)
}

func TestBuilder_MultipleEntitiesInRegistryOrder(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"zeta/docs/en/z.md":    "# Z",
		"alpha/docs/en/a.md":   "# A",
		"alpha/docs/de/a.md":   "# A de",
		"themes/docs/en/t.md":  "# T",
		"manual/en/manual.md":  "# Manual",
		"manual/en/_images/":   "",
		"manual/en/.hidden.md": "# Hidden",
	})

	cfg := newConfig(t, base)
	cfg.Entities.AutomaticRegistration = true
	registry, err := entity.NewRegistry(context.Background(), entity.Options{Config: cfg})
	require.NoError(t, err)
	f := &fixture{base: base, cfg: cfg, registry: registry}

	var calls []string
	b := f.builder(nil)
	b.progress = func(done, total int, e *domain.Entity) {
		calls = append(calls, e.Key+"/"+e.Language)
		assert.Equal(t, 4, total)
	}

	m, stats, err := b.Regenerate(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Entities)
	assert.Equal(t, []string{"alpha/de", "alpha/en", "zeta/en", "Manual/en"}, calls)
	assert.Equal(t, []string{
		"de/alpha/", "de/alpha/a/",
		"en/alpha/", "en/alpha/a/",
		"en/zeta/", "en/zeta/z/",
		"en/", "en/manual/",
	}, m.Keys())
}

func TestBuilder_PersistsToStore(t *testing.T) {
	f := newFixture(t, scenarioFiles())
	store := newMemoryStore(t)

	_, stats, err := f.builder(store).Regenerate(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, stats.Persisted)

	loaded, ok := store.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, 4, loaded.Len())
}

func TestBuilder_LogsWithNilLogger(t *testing.T) {
	b := NewBuilder(BuilderOptions{Logger: nil})
	assert.NotNil(t, b.logger)
	assert.IsType(t, &utils.Logger{}, b.logger)
}
