package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
)

// ErrMalformedMetadata indicates a metadata block that could not be parsed
var ErrMalformedMetadata = errors.New("malformed metadata")

// MaxSummaryLength caps derived summaries
const MaxSummaryLength = 300

var _ domain.MetadataExtractor = (*Extractor)(nil)

// Extractor reads metadata from markdown and HTML files
type Extractor struct {
	markdown *MarkdownReader
	html     *HTMLReader
}

// NewExtractor creates a new Extractor
func NewExtractor() *Extractor {
	return &Extractor{
		markdown: NewMarkdownReader(),
		html:     NewHTMLReader(),
	}
}

// Extract reads path and returns its title and summary. Either may be empty.
func (e *Extractor) Extract(path string) (*domain.DocumentMeta, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		meta, err := e.html.Read(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return meta, nil
	default:
		meta, err := e.markdown.Read(string(content))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return meta, nil
	}
}

func truncateSummary(s string) string {
	if len(s) > MaxSummaryLength {
		cut := MaxSummaryLength - 3
		// keep the cut on a rune boundary
		for cut > 0 && (s[cut]&0xC0) == 0x80 {
			cut--
		}
		return s[:cut] + "..."
	}
	return s
}
