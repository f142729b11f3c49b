package ports

import (
	"context"

	"github.com/platefull/recipe-api/internal/core/domain"
)

// TagRepository defines persistence for tags. Name, color and slug each carry
// a unique index; Create and Update return domain.ErrTagExists on collisions.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)
	Update(ctx context.Context, tag *domain.Tag) error
	// Delete removes the tag and its references from every recipe carrying it.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Tag, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Tag, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]domain.Tag, error)
	// List returns all tags ordered by name. Tags are reference data and are
	// not paginated.
	List(ctx context.Context) ([]domain.Tag, error)
}
