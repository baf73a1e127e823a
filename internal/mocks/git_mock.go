package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient mocks the git.Client interface
type MockGitClient struct {
	mock.Mock
}

// CurrentBranch mocks reading the checked-out branch
func (m *MockGitClient) CurrentBranch(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}
