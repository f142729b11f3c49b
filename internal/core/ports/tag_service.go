package ports

import (
	"context"

	"github.com/platefull/recipe-api/internal/core/domain"
)

// TagInput carries data for creating or replacing a tag. When Slug is empty
// it is derived from Name.
type TagInput struct {
	Name  string
	Color string
	Slug  string
}

// TagService defines operations on tags. Reads are open to anyone; writes
// require an admin actor (IsAdminOrReadOnly).
type TagService interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Get(ctx context.Context, id string) (*domain.Tag, error)
	Create(ctx context.Context, actor domain.Actor, input TagInput) (*domain.Tag, error)
	Update(ctx context.Context, actor domain.Actor, id string, input TagInput) (*domain.Tag, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
