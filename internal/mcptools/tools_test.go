package mcptools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/docmanifest-go/internal/config"
	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/entity"
	"github.com/quantmind-br/docmanifest-go/internal/manifest"
	"github.com/quantmind-br/docmanifest-go/internal/metadata"
	"github.com/quantmind-br/docmanifest-go/internal/walker"
)

func newTestIndex(t *testing.T) (*manifest.Index, string) {
	t.Helper()

	base := t.TempDir()
	files := map[string]string{
		"manual/en/index.md":         "# Manual\n\nWelcome.",
		"manual/en/foo.md":           "# Foo\n\nAbout foo.",
		"manual/en/subfolder/bar.md": "# Bar\n\nAbout bar.",
	}
	for name, body := range files {
		path := filepath.Join(base, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}

	cfg := config.Default()
	cfg.BasePath = base
	cfg.Entities.AutomaticRegistration = false
	cfg.Entities.Register = []config.EntityDetails{
		{Path: "manual", Title: "Manual", Stable: true, DefaultEntity: true},
	}
	require.NoError(t, cfg.Validate())

	registry, err := entity.NewRegistry(context.Background(), entity.Options{Config: cfg})
	require.NoError(t, err)

	builder := manifest.NewBuilder(manifest.BuilderOptions{
		Registry:  registry,
		Walker:    walker.New(walker.Options{Extensions: cfg.Walker.Extensions, Ignore: cfg.Walker.Ignore}),
		Extractor: metadata.NewExtractor(),
	})
	idx := manifest.NewIndex(manifest.IndexOptions{Builder: builder, LinkBase: cfg.LinkBase})
	return idx, filepath.Join(base, "manual", "en")
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestPageHandler(t *testing.T) {
	idx, root := newTestIndex(t)

	res := call(t, pageHandler(idx), map[string]interface{}{"url": "/en/foo"})
	assert.False(t, res.IsError)

	var view PageView
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &view))
	assert.Equal(t, "en/foo/", view.URL)
	assert.Equal(t, "/dev/docs/en/foo/", view.Link)
	assert.Equal(t, "Foo", view.Title)
	assert.Equal(t, "About foo.", view.Summary)
	assert.Equal(t, domain.KindPage, view.Kind)
	assert.Equal(t, filepath.Join(root, "foo.md"), view.Filepath)
	assert.Equal(t, "en", view.Language)
}

func TestPageHandler_NotFound(t *testing.T) {
	idx, _ := newTestIndex(t)

	res := call(t, pageHandler(idx), map[string]interface{}{"url": "en/missing"})
	assert.False(t, res.IsError)
	assert.Equal(t, "No page at en/missing/", text(t, res))
}

func TestChildrenHandler(t *testing.T) {
	idx, root := newTestIndex(t)

	t.Run("by url", func(t *testing.T) {
		res := call(t, childrenHandler(idx), map[string]interface{}{"path": "en/"})
		var children []domain.Child
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &children))
		require.Len(t, children, 2)
		assert.Equal(t, "en/foo/", children[0].URL)
		assert.Equal(t, "en/subfolder/", children[1].URL)
		assert.Empty(t, children[1].Children)
	})

	t.Run("by path with depth", func(t *testing.T) {
		res := call(t, childrenHandler(idx), map[string]interface{}{"path": root, "depth": float64(0)})
		var children []domain.Child
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &children))
		require.Len(t, children, 2)
		require.Len(t, children[1].Children, 1)
		assert.Equal(t, "en/subfolder/bar/", children[1].Children[0].URL)
	})

	t.Run("missing path", func(t *testing.T) {
		res := call(t, childrenHandler(idx), map[string]interface{}{})
		assert.True(t, res.IsError)
	})

	t.Run("negative depth", func(t *testing.T) {
		res := call(t, childrenHandler(idx), map[string]interface{}{"path": "en/", "depth": float64(-1)})
		assert.True(t, res.IsError)
	})

	t.Run("no results", func(t *testing.T) {
		res := call(t, childrenHandler(idx), map[string]interface{}{"path": "fr/"})
		assert.Equal(t, "No results.", text(t, res))
	})
}

func TestBreadcrumbsHandler(t *testing.T) {
	idx, _ := newTestIndex(t)

	res := call(t, breadcrumbsHandler(idx), map[string]interface{}{"url": "en/subfolder/bar"})
	var crumbs []domain.NavLink
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &crumbs))
	require.NotEmpty(t, crumbs)
	assert.Equal(t, "Bar", crumbs[len(crumbs)-1].Title)
}

func TestSequenceHandlers(t *testing.T) {
	idx, root := newTestIndex(t)

	res := call(t, sequenceHandler(idx, idx.NextPage), map[string]interface{}{"filepath": filepath.Join(root, "foo.md")})
	var next domain.PageRecord
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &next))
	assert.Equal(t, "en/subfolder/", next.URL)

	res = call(t, sequenceHandler(idx, idx.PreviousPage), map[string]interface{}{"filepath": filepath.Join(root, "foo.md")})
	var prev domain.PageRecord
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &prev))
	assert.Equal(t, "en/", prev.URL)

	res = call(t, sequenceHandler(idx, idx.NextPage), map[string]interface{}{})
	assert.True(t, res.IsError)
}

func TestVersionsHandler(t *testing.T) {
	idx, _ := newTestIndex(t)

	res := call(t, versionsHandler(idx), map[string]interface{}{"url": "en/foo"})
	var view VersionsView
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &view))
	require.NotNil(t, view.Stable)
	assert.Equal(t, "Manual", view.Stable.Key)
	require.Len(t, view.Languages, 1)
	assert.Equal(t, "en", view.Languages[0].Language)
}

func TestEntitiesHandler(t *testing.T) {
	idx, root := newTestIndex(t)

	res := call(t, entitiesHandler(idx), nil)
	var entities []domain.Entity
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &entities))
	require.Len(t, entities, 1)
	assert.Equal(t, root, entities[0].RootPath)
}

func TestRegisterTools(t *testing.T) {
	idx, _ := newTestIndex(t)
	s := server.NewMCPServer("docmanifest-test", "0.0.0", server.WithToolCapabilities(true))

	assert.NotPanics(t, func() { RegisterTools(s, idx) })
}
