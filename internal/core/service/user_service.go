package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// UserService implements user listing, profile actions and follows.
type UserService struct {
	users   ports.UserRepository
	follows ports.FollowRepository
	recipes ports.RecipeRepository
	log     zerolog.Logger
}

func NewUserService(users ports.UserRepository, follows ports.FollowRepository, recipes ports.RecipeRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, follows: follows, recipes: recipes, log: log}
}

func (s *UserService) List(ctx context.Context, actor domain.Actor, page, limit int) (*ports.UserPage, error) {
	page, limit = normalizePage(page, limit)

	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	followed, err := s.followedSet(ctx, actor, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ports.UserProfile, 0, len(users))
	for _, u := range users {
		items = append(items, ports.UserProfile{User: u, IsSubscribed: followed[u.ID]})
	}

	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *UserService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	followed, err := s.followedSet(ctx, actor, []string{user.ID})
	if err != nil {
		return nil, err
	}

	return &ports.UserProfile{User: user, IsSubscribed: followed[user.ID]}, nil
}

func (s *UserService) Me(ctx context.Context, actor domain.Actor) (*ports.UserProfile, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	// A user never counts as subscribed to themselves.
	return &ports.UserProfile{User: user, IsSubscribed: false}, nil
}

func (s *UserService) SetPassword(ctx context.Context, actor domain.Actor, currentPassword, newPassword string) error {
	if actor.Anonymous() {
		return domain.ErrUnauthenticated
	}
	if newPassword == "" {
		return domain.Validationf("new_password is required")
	}
	if len(newPassword) > maxNameLength {
		return domain.Validationf("new_password must be at most %d characters", maxNameLength)
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.Validationf("current_password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *UserService) Subscribe(ctx context.Context, actor domain.Actor, authorID string) (*ports.Subscription, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author.ID == actor.UserID {
		return nil, domain.Validationf("cannot subscribe to yourself")
	}

	follow := &domain.Follow{
		FollowerID: actor.UserID,
		FolloweeID: author.ID,
		CreatedAt:  time.Now().UTC(),
	}
	// The unique (follower, followee) index turns a concurrent duplicate
	// insert into the same ErrAlreadyFollowing a pre-check would report.
	if err := s.follows.Create(ctx, follow); err != nil {
		return nil, err
	}

	s.log.Info().Str("follower_id", actor.UserID).Str("followee_id", author.ID).Msg("subscription created")
	return s.subscription(ctx, author, 0)
}

func (s *UserService) Unsubscribe(ctx context.Context, actor domain.Actor, authorID string) error {
	if actor.Anonymous() {
		return domain.ErrUnauthenticated
	}

	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		return err
	}

	return s.follows.Delete(ctx, actor.UserID, authorID)
}

func (s *UserService) Subscriptions(ctx context.Context, actor domain.Actor, input ports.SubscriptionsInput) ([]ports.Subscription, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}

	followeeIDs, err := s.follows.Following(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	subs := make([]ports.Subscription, 0, len(followeeIDs))
	for _, id := range followeeIDs {
		author, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		sub, err := s.subscription(ctx, author, input.RecipesLimit)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

// subscription assembles the followed-author view: profile, recipe briefs
// and total recipe count.
func (s *UserService) subscription(ctx context.Context, author *domain.User, recipesLimit int) (*ports.Subscription, error) {
	records, err := s.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	briefs := make([]ports.RecipeBrief, 0, len(records))
	for _, rec := range records {
		briefs = append(briefs, ports.RecipeBrief{
			ID:          rec.ID,
			Name:        rec.Name,
			Image:       rec.Image,
			CookingTime: rec.CookingTime,
		})
	}

	return &ports.Subscription{
		User:         author,
		IsSubscribed: true,
		Recipes:      briefs,
		RecipesCount: count,
	}, nil
}

// followedSet resolves is_subscribed flags for a batch of user IDs; for an
// anonymous actor every flag collapses to false.
func (s *UserService) followedSet(ctx context.Context, actor domain.Actor, ids []string) (map[string]bool, error) {
	if actor.Anonymous() || len(ids) == 0 {
		return map[string]bool{}, nil
	}
	return s.follows.FollowingSet(ctx, actor.UserID, ids)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
