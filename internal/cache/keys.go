package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// KeyPrefix constants for different cache entries
const (
	PrefixManifest = "manifest"
)

// GenerateKey returns the hex SHA256 of a raw key
func GenerateKey(raw string) string {
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:])
}

// GenerateKeyWithPrefix generates a cache key with a prefix
func GenerateKeyWithPrefix(prefix, raw string) string {
	return prefix + ":" + GenerateKey(raw)
}

// ManifestKey is the fixed key the manifest of an installation is stored
// under. Installations sharing one cache directory get distinct keys.
func ManifestKey(basePath, linkBase string) string {
	return GenerateKeyWithPrefix(PrefixManifest, filepath.Clean(basePath)+"\x00"+linkBase)
}
