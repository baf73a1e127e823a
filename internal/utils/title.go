package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// sortingPrefixRegex matches ordering prefixes such as "01_" or "2-"
var sortingPrefixRegex = regexp.MustCompile(`^[0-9]*[_-]+`)

// alphaExtRegex matches file extensions made of letters only
var alphaExtRegex = regexp.MustCompile(`^\.[A-Za-z]+$`)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// CleanPageName turns a file or directory name into a display title.
// "01_getting-started.md" becomes "Getting Started".
func CleanPageName(name string) string {
	name = TrimExtension(name)
	name = sortingPrefixRegex.ReplaceAllString(name, "")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	return titleCaser.String(name)
}

// TrimExtension removes a trailing alphabetic extension, leaving version-like
// names such as "3.0" untouched.
func TrimExtension(name string) string {
	ext := filepath.Ext(name)
	if ext != "" && alphaExtRegex.MatchString(ext) {
		return strings.TrimSuffix(name, ext)
	}
	return name
}
