package cache

import "fmt"

// Backend names accepted by New
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// New opens the store selected by opts.Backend. "memory" is an in-memory
// badger instance.
func New(opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendBadger:
		return NewBadgerCache(opts)
	case BackendMemory:
		opts.InMemory = true
		return NewBadgerCache(opts)
	case BackendSQLite:
		return NewSQLiteCache(opts)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
