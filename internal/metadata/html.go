package metadata

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"golang.org/x/net/html/charset"
)

// HTMLReader extracts metadata from HTML documents
type HTMLReader struct{}

// NewHTMLReader creates a new HTML reader
func NewHTMLReader() *HTMLReader {
	return &HTMLReader{}
}

// Read returns the title and summary of an HTML document.
// Legacy encodings declared in a meta tag are converted to UTF-8 first.
func (r *HTMLReader) Read(content []byte) (*domain.DocumentMeta, error) {
	reader, err := charset.NewReader(bytes.NewReader(content), "text/html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	return &domain.DocumentMeta{
		Title:   extractTitle(doc),
		Summary: truncateSummary(extractDescription(doc)),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	// Try <title> tag
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title != "" {
		return title
	}

	// Try <h1> tag
	h1 := strings.TrimSpace(doc.Find("h1").First().Text())
	if h1 != "" {
		return h1
	}

	// Try og:title meta tag
	ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content")
	if exists && ogTitle != "" {
		return strings.TrimSpace(ogTitle)
	}

	return ""
}

func extractDescription(doc *goquery.Document) string {
	// Try meta description
	desc, exists := doc.Find("meta[name='description']").Attr("content")
	if exists && desc != "" {
		return strings.TrimSpace(desc)
	}

	// Try og:description
	ogDesc, exists := doc.Find("meta[property='og:description']").Attr("content")
	if exists && ogDesc != "" {
		return strings.TrimSpace(ogDesc)
	}

	// First non-empty paragraph
	var para string
	doc.Find("body p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		para = strings.Join(strings.Fields(s.Text()), " ")
		return para == ""
	})
	return para
}
