package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// FormatVersion is the version of the cached payload layout
const FormatVersion = 1

// payload is the cached form of a manifest
type payload struct {
	Version int                  `json:"version"`
	BuiltAt time.Time            `json:"built_at"`
	Pages   []*domain.PageRecord `json:"pages"`
}

// Store loads and saves the manifest under one fixed cache key
type Store struct {
	cache  domain.Cache
	key    string
	logger *utils.Logger
}

// NewStore creates a Store over cache
func NewStore(cache domain.Cache, key string, logger *utils.Logger) *Store {
	return &Store{
		cache:  cache,
		key:    key,
		logger: utils.OrNop(logger).WithComponent("store"),
	}
}

// Key returns the cache key the manifest is stored under
func (s *Store) Key() string {
	return s.key
}

// Load returns the cached manifest. Every failure is a miss.
func (s *Store) Load(ctx context.Context) (*Manifest, bool) {
	data, err := s.cache.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Debug().Str("key", s.key).Msg("Manifest cache miss")
		} else {
			s.logger.Warn().Err(err).Str("key", s.key).Msg("Manifest cache read failed")
		}
		return nil, false
	}

	m, err := decode(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("Discarding cached manifest")
		return nil, false
	}

	s.logger.Debug().Int("pages", m.Len()).Msg("Loaded manifest from cache")
	return m, true
}

// Save replaces the cached manifest. Entries never expire.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	data, err := encode(m)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, s.key, data, 0); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	s.logger.Debug().Int("pages", m.Len()).Int("bytes", len(data)).Msg("Saved manifest to cache")
	return nil
}

// Delete removes the cached manifest
func (s *Store) Delete(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key)
}

func encode(m *Manifest) ([]byte, error) {
	p := payload{
		Version: FormatVersion,
		BuiltAt: time.Now().UTC(),
	}
	m.Each(func(_ int, rec *domain.PageRecord) bool {
		p.Pages = append(p.Pages, rec)
		return true
	})

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(raw, nil), nil
}

func decode(data []byte) (*Manifest, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if p.Version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, p.Version, FormatVersion)
	}

	m := New()
	if err := m.fill(p.Pages); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	return m, nil
}
