package walker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visit struct {
	kind  string
	name  string
	rel   string
	depth int
}

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# "+f), 0644))
	}
}

func record(t *testing.T, w *FileWalker, root string) []visit {
	t.Helper()
	var visits []visit
	rel := func(p string) string {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		return filepath.ToSlash(r)
	}

	err := w.Walk(context.Background(), root,
		func(basename, path string, depth int) error {
			visits = append(visits, visit{"folder", basename, rel(path), depth})
			return nil
		},
		func(basename, path string, depth int) error {
			visits = append(visits, visit{"file", basename, rel(path), depth})
			return nil
		},
	)
	require.NoError(t, err)
	return visits
}

func TestFileWalker_PreOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"index.md",
		"foo.md",
		"subfolder/bar.md",
		"subfolder/deeper/baz.md",
		"zeta.md",
	)

	w := New(Options{Extensions: []string{".md"}})
	visits := record(t, w, root)

	assert.Equal(t, []visit{
		{"file", "foo.md", "foo.md", 1},
		{"file", "index.md", "index.md", 1},
		{"folder", "subfolder", "subfolder", 1},
		{"file", "bar.md", "subfolder/bar.md", 2},
		{"folder", "deeper", "subfolder/deeper", 2},
		{"file", "baz.md", "subfolder/deeper/baz.md", 3},
		{"file", "zeta.md", "zeta.md", 1},
	}, visits)
}

func TestFileWalker_Filters(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"guide.md",
		"page.HTML",
		"image.png",
		".hidden.md",
		".git/config.md",
		"_images/shot.md",
		"notes/todo.txt",
	)

	w := New(Options{
		Extensions: []string{".md", ".html"},
		Ignore:     []string{".git", "_images"},
	})
	visits := record(t, w, root)

	assert.Equal(t, []visit{
		{"file", "guide.md", "guide.md", 1},
		{"folder", "notes", "notes", 1},
		{"file", "page.HTML", "page.HTML", 1},
	}, visits)
}

func TestFileWalker_HookErrorStopsWalk(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.md", "b.md", "c.md")

	boom := errors.New("boom")
	var seen []string
	err := New(Options{Extensions: []string{".md"}}).Walk(context.Background(), root, nil,
		func(basename, path string, depth int) error {
			seen = append(seen, basename)
			if basename == "b.md" {
				return boom
			}
			return nil
		},
	)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a.md", "b.md"}, seen)
}

func TestFileWalker_MissingRoot(t *testing.T) {
	err := New(Options{}).Walk(context.Background(), filepath.Join(t.TempDir(), "missing"), nil, nil)
	assert.Error(t, err)
}

func TestFileWalker_ContextCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(Options{Extensions: []string{".md"}}).Walk(ctx, root, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileWalker_Accepts(t *testing.T) {
	w := New(Options{Extensions: []string{".md"}})

	assert.True(t, w.Accepts("README.MD"))
	assert.False(t, w.Accepts("README"))
	assert.True(t, w.Skips(".svn"))
	assert.False(t, w.Skips("docs"))
}
