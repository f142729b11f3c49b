package ports

import (
	"context"

	"github.com/platefull/recipe-api/internal/core/domain"
)

// UserProfile is a user as seen by a particular actor.
type UserProfile struct {
	User         *domain.User
	IsSubscribed bool
}

// RecipeBrief is the compact recipe view used in subscription and
// favorite/cart responses.
type RecipeBrief struct {
	ID          string
	Name        string
	Image       string
	CookingTime int
}

// Subscription is one followed author together with their recipes.
type Subscription struct {
	User         *domain.User
	IsSubscribed bool
	Recipes      []RecipeBrief
	RecipesCount int64
}

// UserPage is one page of users.
type UserPage struct {
	Items      []UserProfile
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// SubscriptionsInput carries parameters for listing followed authors.
type SubscriptionsInput struct {
	// RecipesLimit caps how many recipes are embedded per author; 0 = all.
	RecipesLimit int
}

// UserService defines use-case operations on users and follows.
// Every method takes the acting principal explicitly; methods that require
// authentication fail with domain.ErrUnauthenticated for an anonymous actor.
type UserService interface {
	List(ctx context.Context, actor domain.Actor, page, limit int) (*UserPage, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*UserProfile, error)
	Me(ctx context.Context, actor domain.Actor) (*UserProfile, error)
	SetPassword(ctx context.Context, actor domain.Actor, currentPassword, newPassword string) error
	// Subscribe creates the (actor, author) follow pair. Self-follow fails
	// with a validation error, a duplicate pair with ErrAlreadyFollowing.
	Subscribe(ctx context.Context, actor domain.Actor, authorID string) (*Subscription, error)
	Unsubscribe(ctx context.Context, actor domain.Actor, authorID string) error
	Subscriptions(ctx context.Context, actor domain.Actor, input SubscriptionsInput) ([]Subscription, error)
}
