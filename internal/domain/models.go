package domain

import (
	"path/filepath"
	"strings"

	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// Kind tags a manifest record as a page or a folder
type Kind string

const (
	// KindPage is a leaf document with a title and summary
	KindPage Kind = "page"
	// KindFolder is a directory-level container record
	KindFolder Kind = "folder"
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	return k == KindPage || k == KindFolder
}

// LinkingMode describes how a navigation entry relates to the current page
type LinkingMode string

const (
	ModeCurrent LinkingMode = "current"
	ModeLink    LinkingMode = "link"
)

// Entity is one language+version edition of a registered documentation root.
// Entities are built by the registry and never mutated afterwards.
type Entity struct {
	Key             string `json:"key"`
	Title           string `json:"title"`
	RootPath        string `json:"root_path"`
	Language        string `json:"language"`
	Version         string `json:"version"`
	IsStable        bool   `json:"stable"`
	IsDefaultEntity bool   `json:"default_entity"`
	LinkBase        string `json:"link_base"`
}

// KeySlug returns the URL segment used for the entity key
func (e *Entity) KeySlug() string {
	return strings.Join(strings.Fields(strings.ToLower(e.Key)), "-")
}

// Link returns the absolute link of the entity root, always ending in a slash.
// The key segment is omitted for the default entity and the version segment
// is omitted for stable or unversioned entities.
func (e *Entity) Link() string {
	parts := []string{"/", e.LinkBase, e.Language}
	if !e.IsDefaultEntity {
		parts = append(parts, e.KeySlug())
	}
	if !e.IsStable && e.Version != "" {
		parts = append(parts, e.Version)
	}
	return utils.JoinLinks(append(parts, "/")...)
}

// SameSet reports whether other belongs to the same key and language group
func (e *Entity) SameSet(other *Entity) bool {
	return other != nil && e.Key == other.Key && e.Language == other.Language
}

// Owns reports whether path lies inside the entity root
func (e *Entity) Owns(path string) bool {
	root := filepath.Clean(e.RootPath)
	path = filepath.Clean(path)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// PageRecord is a single manifest entry
type PageRecord struct {
	URL      string `json:"url" yaml:"url"`
	Title    string `json:"title" yaml:"title"`
	Basename string `json:"basename" yaml:"basename"`
	Filepath string `json:"filepath" yaml:"filepath"`
	Kind     Kind   `json:"type" yaml:"type"`
	Summary  string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// IsIndex reports whether the record points at an index document
func (r *PageRecord) IsIndex() bool {
	return IsIndexDocument(r.Basename)
}

// IsIndexDocument reports whether basename names an index document
// such as index.md or INDEX.html
func IsIndexDocument(basename string) bool {
	name := strings.ToLower(basename)
	return strings.TrimSuffix(name, filepath.Ext(name)) == "index" && filepath.Ext(name) != ""
}

// NavLink is a (link, title) pair used by breadcrumbs and sequential navigation
type NavLink struct {
	Link  string `json:"link"`
	Title string `json:"title"`
}

// Child is a navigation entry listing a record below a path
type Child struct {
	Link     string      `json:"link"`
	URL      string      `json:"url"`
	Title    string      `json:"title"`
	Kind     Kind        `json:"type"`
	Mode     LinkingMode `json:"mode"`
	Children []Child     `json:"children,omitempty"`
}

// VersionLink describes a sibling version of an entity
type VersionLink struct {
	Title   string      `json:"title"`
	Version string      `json:"version"`
	Link    string      `json:"link"`
	Mode    LinkingMode `json:"mode"`
}

// DocumentMeta is what the metadata extractor reads from a document
type DocumentMeta struct {
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
}
