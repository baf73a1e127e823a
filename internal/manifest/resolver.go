package manifest

import (
	"context"

	"github.com/quantmind-br/docmanifest-go/internal/content"
	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
)

// NormalizeURL trims surrounding slashes and whitespace and appends exactly
// one slash
func NormalizeURL(raw string) string {
	return utils.NormalizeURL(raw)
}

// GetPage resolves url to its page or folder. A url that is not in the
// manifest, or whose file no entity owns, yields nil.
func (i *Index) GetPage(ctx context.Context, url string) (content.Content, error) {
	m, err := i.Pages(ctx)
	if err != nil {
		return nil, err
	}

	rec := m.Get(url)
	if rec == nil {
		return nil, nil
	}

	log := i.logger.WithURL(rec.URL)
	owner := i.OwnerOf(rec.Filepath)
	if owner == nil {
		log.Debug().Str("path", rec.Filepath).Msg("No entity owns record")
		return nil, nil
	}

	c, err := content.FromRecord(rec, owner)
	if err != nil {
		log.Warn().Err(err).Msg("Unreadable manifest record")
		return nil, nil
	}
	return c, nil
}

// OwnerOf returns the first registered entity whose root contains path
func (i *Index) OwnerOf(path string) *domain.Entity {
	return i.registry.OwnerOf(path)
}
