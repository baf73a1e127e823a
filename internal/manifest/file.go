package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"gopkg.in/yaml.v3"
)

// WriteFile exports m to path as YAML or JSON, chosen by extension
func WriteFile(path string, m *Manifest) error {
	data, err := Marshal(m, filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}

// Marshal encodes the records of m in manifest order
func Marshal(m *Manifest, ext string) ([]byte, error) {
	records := m.Records()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Marshal(records)
	case ".json":
		return json.MarshalIndent(records, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}
}

// ReadFile loads a manifest exported by WriteFile
func ReadFile(path string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return Unmarshal(data, filepath.Ext(path))
}

// Unmarshal decodes an exported manifest
func Unmarshal(data []byte, ext string) (*Manifest, error) {
	var records []*domain.PageRecord

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	m := New()
	if err := m.fill(records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return m, nil
}
