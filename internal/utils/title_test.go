package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPageName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"getting-started.md", "Getting Started"},
		{"01_installation.md", "Installation"},
		{"2-upgrading_notes", "Upgrading Notes"},
		{"subfolder", "Subfolder"},
		{"API-reference.md", "API Reference"},
		{"3.0", "3.0"},
		{"changelogs", "Changelogs"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanPageName(tt.input))
		})
	}
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "guide", TrimExtension("guide.md"))
	assert.Equal(t, "page", TrimExtension("page.html"))
	assert.Equal(t, "3.0", TrimExtension("3.0"))
	assert.Equal(t, "v1.2", TrimExtension("v1.2"))
	assert.Equal(t, "noext", TrimExtension("noext"))
}
