// Package walker implements the depth-first pre-order directory traversal
// the manifest builder runs over each entity root.
package walker

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

var _ domain.Walker = (*FileWalker)(nil)

// FileWalker walks a directory tree in lexical pre-order. Directories are
// reported before their contents; only files with an accepted extension are
// reported. Ignored and hidden names are skipped along with their subtrees.
type FileWalker struct {
	extensions map[string]bool
	ignore     map[string]bool
}

// Options configures a FileWalker
type Options struct {
	Extensions []string
	Ignore     []string
}

// New creates a FileWalker
func New(opts Options) *FileWalker {
	w := &FileWalker{
		extensions: make(map[string]bool, len(opts.Extensions)),
		ignore:     make(map[string]bool, len(opts.Ignore)),
	}
	for _, ext := range opts.Extensions {
		w.extensions[strings.ToLower(ext)] = true
	}
	for _, name := range opts.Ignore {
		w.ignore[name] = true
	}
	return w
}

// Accepts reports whether a file name has an indexed extension
func (w *FileWalker) Accepts(name string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(name))]
}

// Skips reports whether a name is excluded from the walk
func (w *FileWalker) Skips(name string) bool {
	return w.ignore[name] || utils.IsHidden(name)
}

// Walk traverses root. The root itself is not reported; its direct entries
// have depth 1. Any error from the filesystem or a hook stops the walk.
func (w *FileWalker) Walk(ctx context.Context, root string, onFolder domain.FolderFunc, onFile domain.FileFunc) error {
	root = filepath.Clean(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if w.Skips(name) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		depth := depthOf(root, path)

		if d.IsDir() {
			if onFolder == nil {
				return nil
			}
			return onFolder(name, path, depth)
		}

		if !d.Type().IsRegular() || !w.Accepts(name) {
			return nil
		}
		if onFile == nil {
			return nil
		}
		return onFile(name, path, depth)
	})
}

func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
