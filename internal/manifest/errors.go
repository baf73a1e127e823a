package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrCorruptCache indicates a cached payload that could not be decoded
	ErrCorruptCache = errors.New("corrupt manifest cache entry")

	// ErrVersionMismatch indicates a cached payload written by another format version
	ErrVersionMismatch = errors.New("manifest cache format version mismatch")

	// ErrUnsupportedExt indicates an unsupported export file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")

	// ErrInvalidFormat indicates an export file that is not valid YAML or JSON
	ErrInvalidFormat = errors.New("manifest must be valid YAML or JSON")

	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")
)
