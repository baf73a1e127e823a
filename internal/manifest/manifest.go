package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// Manifest is an insertion-ordered map from normalized URL to record.
// It is filled by the builder and read-only afterwards.
type Manifest struct {
	order   []string
	records map[string]*domain.PageRecord
}

// New creates an empty manifest
func New() *Manifest {
	return &Manifest{records: make(map[string]*domain.PageRecord)}
}

// Set stores rec under its normalized URL. A key already present keeps its
// position and reports replaced.
func (m *Manifest) Set(rec *domain.PageRecord) (replaced bool) {
	rec.URL = utils.NormalizeURL(rec.URL)
	if _, ok := m.records[rec.URL]; ok {
		replaced = true
	} else {
		m.order = append(m.order, rec.URL)
	}
	m.records[rec.URL] = rec
	return replaced
}

// Get returns a copy of the record stored under url, or nil
func (m *Manifest) Get(url string) *domain.PageRecord {
	rec, ok := m.records[utils.NormalizeURL(url)]
	if !ok {
		return nil
	}
	out := *rec
	return &out
}

// Has reports whether url is in the manifest
func (m *Manifest) Has(url string) bool {
	_, ok := m.records[utils.NormalizeURL(url)]
	return ok
}

// Len returns the number of records
func (m *Manifest) Len() int {
	return len(m.order)
}

// Keys returns the URLs in manifest order
func (m *Manifest) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Records returns copies of all records in manifest order
func (m *Manifest) Records() []domain.PageRecord {
	out := make([]domain.PageRecord, 0, len(m.order))
	for _, url := range m.order {
		out = append(out, *m.records[url])
	}
	return out
}

// Each calls fn for every record in order until fn returns false
func (m *Manifest) Each(fn func(i int, rec *domain.PageRecord) bool) {
	for i, url := range m.order {
		if !fn(i, m.records[url]) {
			return
		}
	}
}

// MarshalJSON encodes the manifest as an ordered array of records
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Records())
}

// UnmarshalJSON decodes an ordered array of records
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var records []*domain.PageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	return m.fill(records)
}

func (m *Manifest) fill(records []*domain.PageRecord) error {
	m.order = nil
	m.records = make(map[string]*domain.PageRecord, len(records))
	for i, rec := range records {
		if rec == nil {
			return fmt.Errorf("record %d: empty", i)
		}
		if !rec.Kind.Valid() {
			return fmt.Errorf("record %d (%s): %w: %q", i, rec.URL, domain.ErrInvalidKind, rec.Kind)
		}
		m.Set(rec)
	}
	return nil
}
