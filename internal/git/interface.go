package git

import (
	"context"
)

// Client defines the interface for Git operations
type Client interface {
	// CurrentBranch returns the short name of the branch checked out in the
	// repository containing path. Parent directories are searched for .git.
	CurrentBranch(ctx context.Context, path string) (string, error)
}
