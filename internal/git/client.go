package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// ErrDetachedHead is returned when HEAD does not point at a branch
var ErrDetachedHead = errors.New("HEAD is not on a branch")

// RealClient implements Client using go-git
type RealClient struct{}

// NewClient creates a new RealClient
func NewClient() *RealClient {
	return &RealClient{}
}

// CurrentBranch opens the repository containing path and reads HEAD
func (c *RealClient) CurrentBranch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("read HEAD of %s: %w", path, err)
	}

	if !head.Name().IsBranch() {
		return "", ErrDetachedHead
	}
	return head.Name().Short(), nil
}
