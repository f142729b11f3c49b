package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
	"github.com/platefull/recipe-api/pkg/slug"
)

const maxTagNameLength = 200

// TagService implements tag reference-data management. Anyone may read;
// writes are admin-only (IsAdminOrReadOnly).
type TagService struct {
	tags ports.TagRepository
	log  zerolog.Logger
}

func NewTagService(tags ports.TagRepository, log zerolog.Logger) *TagService {
	return &TagService{tags: tags, log: log}
}

func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *TagService) Get(ctx context.Context, id string) (*domain.Tag, error) {
	return s.tags.FindByID(ctx, id)
}

func (s *TagService) Create(ctx context.Context, actor domain.Actor, input ports.TagInput) (*domain.Tag, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	tag, err := tagFromInput(input)
	if err != nil {
		return nil, err
	}

	created, err := s.tags.Create(ctx, tag)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("tag_id", created.ID).Str("slug", created.Slug).Msg("tag created")
	return created, nil
}

func (s *TagService) Update(ctx context.Context, actor domain.Actor, id string, input ports.TagInput) (*domain.Tag, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.tags.FindByID(ctx, id); err != nil {
		return nil, err
	}

	tag, err := tagFromInput(input)
	if err != nil {
		return nil, err
	}
	tag.ID = id

	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("tag_id", id).Msg("tag deleted")
	return nil
}

func tagFromInput(input ports.TagInput) (*domain.Tag, error) {
	if input.Name == "" {
		return nil, domain.Validationf("name is required")
	}
	if len(input.Name) > maxTagNameLength {
		return nil, domain.Validationf("name must be at most %d characters", maxTagNameLength)
	}
	if input.Color == "" {
		return nil, domain.Validationf("color is required")
	}

	sl := input.Slug
	if sl == "" {
		sl = slug.Make(input.Name)
	}
	if !slug.IsValid(sl) {
		return nil, domain.Validationf("slug %q is not a valid slug", sl)
	}

	return &domain.Tag{Name: input.Name, Color: input.Color, Slug: sl}, nil
}

// requireAdmin is the IsAdminOrReadOnly write check: reads never get here,
// writes need a non-anonymous admin actor.
func requireAdmin(actor domain.Actor) error {
	if actor.Anonymous() {
		return domain.ErrUnauthenticated
	}
	if !actor.Admin {
		return domain.ErrForbidden
	}
	return nil
}
