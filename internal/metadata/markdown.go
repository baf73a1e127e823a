package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"gopkg.in/yaml.v3"
)

// MarkdownReader extracts metadata from markdown content
type MarkdownReader struct{}

// NewMarkdownReader creates a new markdown reader.
func NewMarkdownReader() *MarkdownReader {
	return &MarkdownReader{}
}

// Read returns the title and summary of a markdown document
func (r *MarkdownReader) Read(content string) (*domain.DocumentMeta, error) {
	fields, body, err := r.parseMetadata(content)
	if err != nil {
		return nil, err
	}

	return &domain.DocumentMeta{
		Title:   r.extractTitle(fields, body),
		Summary: r.extractSummary(fields, body),
	}, nil
}

var metadataLineRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*:\s`)

// parseMetadata splits leading metadata off content. Keys are lowercased.
func (r *MarkdownReader) parseMetadata(content string) (map[string]string, string, error) {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))

	if strings.HasPrefix(content, "---\n") {
		rest := content[4:]
		end := strings.Index("\n"+rest, "\n---")
		if end == -1 {
			return nil, content, nil
		}
		block := rest[:max(end-1, 0)]
		body := strings.TrimPrefix(rest[end:], "\n")
		body = strings.TrimPrefix(body, "---")
		fields, err := decodeFields(block)
		if err != nil {
			return nil, "", err
		}
		return fields, strings.TrimSpace(body), nil
	}

	// "Key: value" header block terminated by a blank line
	lines := strings.Split(content, "\n")
	n := 0
	for n < len(lines) && metadataLineRegex.MatchString(lines[n]) {
		n++
	}
	if n == 0 || (n < len(lines) && strings.TrimSpace(lines[n]) != "") {
		return nil, content, nil
	}

	fields, err := decodeFields(strings.Join(lines[:n], "\n"))
	if err != nil {
		return nil, "", err
	}
	return fields, strings.TrimSpace(strings.Join(lines[n:], "\n")), nil
}

func decodeFields(block string) (map[string]string, error) {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			fields[strings.ToLower(k)] = strings.TrimSpace(val)
		case []interface{}, map[string]interface{}:
		default:
			fields[strings.ToLower(k)] = fmt.Sprint(val)
		}
	}
	return fields, nil
}

func (r *MarkdownReader) extractTitle(fields map[string]string, body string) string {
	if title := fields["title"]; title != "" {
		return title
	}

	inCodeBlock := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}

		if strings.HasPrefix(trimmed, "# ") {
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			title = strings.TrimRight(title, "#")
			return strings.TrimSpace(title)
		}
	}

	return ""
}

var numberedListRegex = regexp.MustCompile(`^\d+\.\s`)
var horizontalRuleRegex = regexp.MustCompile(`^[-*_]{3,}$`)

func (r *MarkdownReader) extractSummary(fields map[string]string, body string) string {
	if summary := fields["summary"]; summary != "" {
		return truncateSummary(summary)
	}
	if desc := fields["description"]; desc != "" {
		return truncateSummary(desc)
	}

	inCodeBlock := false
	var paragraphLines []string

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		if strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "* ") ||
			strings.HasPrefix(trimmed, "+ ") ||
			numberedListRegex.MatchString(trimmed) {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		if trimmed == "" {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		if horizontalRuleRegex.MatchString(trimmed) {
			continue
		}

		paragraphLines = append(paragraphLines, trimmed)
	}

	return truncateSummary(strings.Join(paragraphLines, " "))
}
