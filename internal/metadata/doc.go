// Package metadata extracts the title and summary of documentation files.
//
// Markdown files may carry metadata either as a YAML frontmatter block
// delimited by "---" lines or as a leading block of "Key: value" lines:
//
//	---
//	title: Installing
//	summary: How to install the framework.
//	---
//
//	Title: Installing
//	Summary: How to install the framework.
//
// Without metadata the title is the first level-one heading and the summary
// the first paragraph. HTML files use <title>, <h1> and the description meta
// tags.
//
// A file whose metadata block cannot be parsed yields ErrMalformedMetadata;
// callers are expected to fall back to a filename-derived title.
package metadata
