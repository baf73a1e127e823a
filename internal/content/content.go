// Package content provides the typed values a manifest record resolves to.
//
// Content is a closed union over *Page and *Folder. Values are built through
// New, keyed by the record kind, and are bound to the entity owning the file.
package content

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// Content is a page or folder of an entity
type Content interface {
	// Link returns the absolute link, always ending in a slash
	Link() string
	// RelativeLink returns the link with the link base stripped, in manifest
	// key form
	RelativeLink() string
	Title() string
	Summary() string
	Entity() *domain.Entity
	Basename() string
	Filepath() string
	Kind() domain.Kind

	sealed()
}

var (
	_ Content = (*Page)(nil)
	_ Content = (*Folder)(nil)
)

// New builds the content value for kind
func New(kind domain.Kind, entity *domain.Entity, basename, path string) (Content, error) {
	if entity == nil {
		return nil, fmt.Errorf("content %s: entity is required", path)
	}

	base := node{entity: entity, basename: basename, filepath: filepath.Clean(path)}
	switch kind {
	case domain.KindPage:
		return &Page{node: base}, nil
	case domain.KindFolder:
		return &Folder{node: base}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
}

// FromRecord builds the content value of a manifest record, carrying over
// its stored title and summary
func FromRecord(record *domain.PageRecord, entity *domain.Entity) (Content, error) {
	c, err := New(record.Kind, entity, record.Basename, record.Filepath)
	if err != nil {
		return nil, err
	}

	switch v := c.(type) {
	case *Page:
		v.title = record.Title
		v.summary = record.Summary
	case *Folder:
		v.title = record.Title
	}
	return c, nil
}

// node holds what pages and folders share
type node struct {
	entity   *domain.Entity
	basename string
	filepath string
	title    string
}

func (n *node) sealed() {}

// Entity returns the owning entity
func (n *node) Entity() *domain.Entity { return n.entity }

// Basename returns the file or directory name
func (n *node) Basename() string { return n.basename }

// Filepath returns the absolute path on disk
func (n *node) Filepath() string { return n.filepath }

// relativeSegments returns the slash separated path of p below the entity
// root, or "" for the root itself
func (n *node) relativeSegments(p string) string {
	rel, err := filepath.Rel(n.entity.RootPath, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

func (n *node) linkFor(rel string) string {
	return utils.JoinLinks(n.entity.Link(), rel, "/")
}

func (n *node) fallbackTitle() string {
	if n.basename == "" || filepath.Clean(n.filepath) == filepath.Clean(n.entity.RootPath) {
		return n.entity.Title
	}
	return utils.CleanPageName(n.basename)
}

// Page is a single document
type Page struct {
	node
	summary string
}

// Kind returns domain.KindPage
func (p *Page) Kind() domain.Kind { return domain.KindPage }

// Link returns the page link. Index documents link to their folder.
func (p *Page) Link() string {
	rel := p.relativeSegments(p.filepath)
	if domain.IsIndexDocument(p.basename) {
		rel = p.relativeSegments(filepath.Dir(p.filepath))
	} else {
		rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	}
	return p.linkFor(rel)
}

// RelativeLink returns the page link without the link base
func (p *Page) RelativeLink() string {
	return utils.StripLinkBase(p.Link(), p.entity.LinkBase)
}

// Title returns the document title, falling back to the cleaned file name
func (p *Page) Title() string {
	if p.title != "" {
		return p.title
	}
	if domain.IsIndexDocument(p.basename) {
		dir := filepath.Dir(p.filepath)
		if filepath.Clean(dir) == filepath.Clean(p.entity.RootPath) {
			return p.entity.Title
		}
		return utils.CleanPageName(filepath.Base(dir))
	}
	return p.fallbackTitle()
}

// Summary returns the document summary
func (p *Page) Summary() string { return p.summary }

// SetMetadata applies extracted metadata. Empty values keep the fallbacks.
func (p *Page) SetMetadata(meta *domain.DocumentMeta) {
	if meta == nil {
		return
	}
	p.title = meta.Title
	p.summary = meta.Summary
}

// Folder is a directory of an entity
type Folder struct {
	node
}

// Kind returns domain.KindFolder
func (f *Folder) Kind() domain.Kind { return domain.KindFolder }

// Link returns the folder link
func (f *Folder) Link() string {
	return f.linkFor(f.relativeSegments(f.filepath))
}

// RelativeLink returns the folder link without the link base
func (f *Folder) RelativeLink() string {
	return utils.StripLinkBase(f.Link(), f.entity.LinkBase)
}

// Title returns the cleaned directory name, or the entity title for the root
func (f *Folder) Title() string {
	if f.title != "" {
		return f.title
	}
	return f.fallbackTitle()
}

// Summary is always empty for folders
func (f *Folder) Summary() string { return "" }

// Record converts c into its manifest record
func Record(c Content) *domain.PageRecord {
	return &domain.PageRecord{
		URL:      c.RelativeLink(),
		Title:    c.Title(),
		Basename: c.Basename(),
		Filepath: c.Filepath(),
		Kind:     c.Kind(),
		Summary:  c.Summary(),
	}
}
