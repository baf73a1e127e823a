package cache

import (
	"github.com/quantmind-br/docmanifest-go/internal/domain"
)

// Ensure the backends implement domain.Cache
var (
	_ domain.Cache = (*BadgerCache)(nil)
	_ domain.Cache = (*SQLiteCache)(nil)
)

// Store is a domain.Cache that can also report and drop its contents
type Store interface {
	domain.Cache
	// Clear removes all entries from the store
	Clear() error
	// Stats returns backend statistics
	Stats() map[string]interface{}
}

// Options contains cache configuration options
type Options struct {
	Backend   string
	Directory string
	InMemory  bool
	Logger    bool
}

// DefaultOptions returns default cache options
func DefaultOptions() Options {
	return Options{
		Backend:   BackendBadger,
		Directory: "",
		InMemory:  false,
		Logger:    false,
	}
}
