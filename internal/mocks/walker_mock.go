package mocks

import (
	"context"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockWalker mocks the domain.Walker interface
type MockWalker struct {
	mock.Mock
}

// Walk mocks a directory traversal
func (m *MockWalker) Walk(ctx context.Context, root string, onFolder domain.FolderFunc, onFile domain.FileFunc) error {
	args := m.Called(ctx, root, onFolder, onFile)
	return args.Error(0)
}

// MockMetadataExtractor mocks the domain.MetadataExtractor interface
type MockMetadataExtractor struct {
	mock.Mock
}

// Extract mocks reading document metadata
func (m *MockMetadataExtractor) Extract(path string) (*domain.DocumentMeta, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentMeta), args.Error(1)
}
