package utils

import "strings"

// urlCutset holds the characters trimmed from both ends of a manifest URL
const urlCutset = "/ \t\r\n"

// NormalizeURL turns a URL path into its manifest key form: no leading
// slash and exactly one trailing slash. The root normalizes to "/".
func NormalizeURL(raw string) string {
	return strings.Trim(raw, urlCutset) + "/"
}

// JoinLinks joins link fragments with single slashes. The result starts with
// a slash when the first non-empty fragment does and ends with one when the
// last non-empty fragment does.
func JoinLinks(parts ...string) string {
	var segments []string
	leading, trailing, seen := false, false, false

	for _, part := range parts {
		if part == "" {
			continue
		}
		if !seen {
			leading = strings.HasPrefix(part, "/")
			seen = true
		}
		trailing = strings.HasSuffix(part, "/")

		for _, s := range strings.Split(part, "/") {
			if s != "" {
				segments = append(segments, s)
			}
		}
	}

	if len(segments) == 0 {
		if leading || trailing {
			return "/"
		}
		return ""
	}

	var sb strings.Builder
	if leading {
		sb.WriteString("/")
	}
	sb.WriteString(strings.Join(segments, "/"))
	if trailing {
		sb.WriteString("/")
	}
	return sb.String()
}

// StripLinkBase removes the configured link base from an absolute link and
// normalizes the remainder into a manifest key.
func StripLinkBase(link, linkBase string) string {
	rel := strings.TrimLeft(link, "/")
	base := strings.Trim(linkBase, "/")

	if base != "" {
		if rel == base {
			rel = ""
		} else if strings.HasPrefix(rel, base+"/") {
			rel = strings.TrimPrefix(rel, base+"/")
		}
	}

	return NormalizeURL(rel)
}

// SlashCount counts the slashes in a path
func SlashCount(p string) int {
	return strings.Count(p, "/")
}
