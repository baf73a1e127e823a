package manifest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/docmanifest-go/internal/content"
	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// Breadcrumbs returns the trail from base to page. The trail always starts
// with the base entity link and title; every following segment of the page's
// relative link adds one crumb.
func (i *Index) Breadcrumbs(page content.Content, base *domain.Entity) []domain.NavLink {
	if page == nil || base == nil {
		return nil
	}

	trail := []domain.NavLink{{Link: base.Link(), Title: base.Title}}

	parts := strings.Split(strings.Trim(page.RelativeLink(), "/"), "/")
	baseParts := strings.Split(strings.Trim(utils.StripLinkBase(base.Link(), base.LinkBase), "/"), "/")
	if hasPrefix(parts, baseParts) {
		parts = parts[len(baseParts):]
	} else if len(parts) > 0 {
		// language segment
		parts = parts[1:]
	}

	progress := base.Link()
	for _, part := range parts {
		if part == "" {
			continue
		}
		progress = utils.JoinLinks(progress, part, "/")
		trail = append(trail, domain.NavLink{
			Link:  progress,
			Title: utils.CleanPageName(part),
		})
	}
	return trail
}

func hasPrefix(parts, prefix []string) bool {
	if len(prefix) > len(parts) {
		return false
	}
	for i := range prefix {
		if parts[i] != prefix[i] {
			return false
		}
	}
	return true
}

// NextPage returns the record following the one stored for path, or nil
// when path is the last entry or unknown
func (i *Index) NextPage(ctx context.Context, path string) (*domain.PageRecord, error) {
	m, err := i.Pages(ctx)
	if err != nil {
		return nil, err
	}

	var next *domain.PageRecord
	grab := false
	m.Each(func(_ int, rec *domain.PageRecord) bool {
		if grab {
			out := *rec
			next = &out
			return false
		}
		grab = rec.Filepath == path
		return true
	})
	return next, nil
}

// PreviousPage returns the record preceding the one stored for path, or nil
// when path is the first entry or unknown
func (i *Index) PreviousPage(ctx context.Context, path string) (*domain.PageRecord, error) {
	m, err := i.Pages(ctx)
	if err != nil {
		return nil, err
	}

	var prev, found *domain.PageRecord
	m.Each(func(_ int, rec *domain.PageRecord) bool {
		if rec.Filepath == path {
			found = prev
			return false
		}
		prev = rec
		return true
	})
	if found == nil {
		return nil, nil
	}
	out := *found
	return &out, nil
}

// listing selects the direct children of one folder, either by filesystem
// path or by manifest URL
type listing struct {
	byPath  bool
	parent  string
	current string
}

// ChildrenOf lists the direct children of path in manifest order.
//
// An absolute path inside a registered entity is matched against record file
// paths; anything else is taken as a manifest URL. When path names a page,
// its siblings are listed with the page itself in "current" mode. Index
// documents are never listed as pages: they stand for their folder.
func (i *Index) ChildrenOf(ctx context.Context, path string) ([]domain.Child, error) {
	return i.DescendantsOf(ctx, path, 1)
}

// DescendantsOf lists the children of path like ChildrenOf and expands
// folders up to maxDepth levels. A maxDepth of 0 expands everything.
func (i *Index) DescendantsOf(ctx context.Context, path string, maxDepth int) ([]domain.Child, error) {
	m, err := i.Pages(ctx)
	if err != nil {
		return nil, err
	}
	return i.children(m, i.resolveListing(m, path), 1, maxDepth), nil
}

func (i *Index) resolveListing(m *Manifest, path string) listing {
	if filepath.IsAbs(path) && i.OwnerOf(path) != nil {
		q := filepath.Clean(path)
		l := listing{byPath: true, parent: q}

		var hit *domain.PageRecord
		m.Each(func(_ int, rec *domain.PageRecord) bool {
			if rec.Filepath == q {
				hit = rec
				return false
			}
			return true
		})
		if hit != nil && hit.Kind == domain.KindPage {
			l.parent = filepath.Dir(q)
			if !hit.IsIndex() {
				l.current = q
			}
		}
		return l
	}

	q := utils.NormalizeURL(path)
	l := listing{parent: q}
	if rec := m.Get(q); rec != nil && rec.Kind == domain.KindPage && !rec.IsIndex() {
		l.parent = parentURL(q)
		l.current = q
	}
	return l
}

func (i *Index) children(m *Manifest, l listing, level, maxDepth int) []domain.Child {
	var out []domain.Child
	var keys []string

	// URLs of nested entities share prefixes; keep the parent's entity only
	var owner *domain.Entity
	if !l.byPath {
		if parent := m.Get(l.parent); parent != nil {
			owner = i.OwnerOf(parent.Filepath)
		}
	}

	m.Each(func(_ int, rec *domain.PageRecord) bool {
		if owner != nil && i.OwnerOf(rec.Filepath) != owner {
			return true
		}
		key, kind := rec.URL, rec.Kind
		if l.byPath {
			key = rec.Filepath
			if rec.IsIndex() {
				key = filepath.Dir(rec.Filepath)
			}
		}
		if rec.IsIndex() {
			kind = domain.KindFolder
		}

		if !isDirectChild(l.byPath, l.parent, key) {
			return true
		}

		mode := domain.ModeLink
		if key == l.current {
			mode = domain.ModeCurrent
		}

		out = append(out, domain.Child{
			Link:  utils.JoinLinks("/", i.linkBase, rec.URL, "/"),
			URL:   rec.URL,
			Title: rec.Title,
			Kind:  kind,
			Mode:  mode,
		})
		keys = append(keys, key)
		return true
	})

	if maxDepth == 0 || level < maxDepth {
		for n := range out {
			if out[n].Kind != domain.KindFolder {
				continue
			}
			sub := listing{byPath: l.byPath, parent: keys[n]}
			out[n].Children = i.children(m, sub, level+1, maxDepth)
		}
	}
	return out
}

// isDirectChild reports whether key sits exactly one level below parent
func isDirectChild(byPath bool, parent, key string) bool {
	if byPath {
		return key != parent && filepath.Dir(key) == parent
	}
	if parent == "/" {
		return key != "/" && utils.SlashCount(key) == 1
	}
	return strings.HasPrefix(key, parent) && utils.SlashCount(key) == utils.SlashCount(parent)+1
}

// parentURL returns the manifest URL one level up
func parentURL(url string) string {
	trimmed := strings.TrimSuffix(url, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return utils.NormalizeURL(trimmed[:idx])
	}
	return "/"
}

// AllVersions returns every entity sharing key and language with e, in
// registry order
func (i *Index) AllVersions(e *domain.Entity) []*domain.Entity {
	if e == nil {
		return nil
	}
	var out []*domain.Entity
	for _, check := range i.registry.Entities() {
		if check.SameSet(e) {
			out = append(out, check)
		}
	}
	return out
}

// StableVersion returns the first stable entity sharing key and language
// with e, or e itself when none is stable
func (i *Index) StableVersion(e *domain.Entity) *domain.Entity {
	if e == nil {
		return nil
	}
	for _, check := range i.AllVersions(e) {
		if check.IsStable {
			return check
		}
	}
	return e
}

// Versions describes every version of e's key and language. The entry whose
// version matches e is marked current.
func (i *Index) Versions(e *domain.Entity) []domain.VersionLink {
	if e == nil {
		return nil
	}
	var out []domain.VersionLink
	for _, check := range i.AllVersions(e) {
		mode := domain.ModeLink
		if check.Version == e.Version {
			mode = domain.ModeCurrent
		}
		out = append(out, domain.VersionLink{
			Title:   check.Title,
			Version: check.Version,
			Link:    check.Link(),
			Mode:    mode,
		})
	}
	return out
}

// Languages returns the entities sharing key and version with e across
// languages, in registry order
func (i *Index) Languages(e *domain.Entity) []*domain.Entity {
	if e == nil {
		return nil
	}
	var out []*domain.Entity
	for _, check := range i.registry.Entities() {
		if check.Key == e.Key && check.Version == e.Version {
			out = append(out, check)
		}
	}
	return out
}
