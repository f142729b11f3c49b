package ports

import (
	"context"

	"github.com/platefull/recipe-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
// Create returns domain.ErrUserExists when the username or email is taken
// (backed by unique indexes, so a concurrent duplicate insert fails too).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users ordered by username, plus the total count.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// FollowRepository defines persistence for (follower, followee) pairs.
// The pair is unique; Create returns domain.ErrAlreadyFollowing on a
// duplicate and Delete returns domain.ErrFollowNotFound on a missing pair.
type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, followerID, followeeID string) error
	// Following returns the IDs of users the given user follows.
	Following(ctx context.Context, followerID string) ([]string, error)
	// FollowingSet reports which of the candidate IDs the user follows.
	FollowingSet(ctx context.Context, followerID string, candidateIDs []string) (map[string]bool, error)
}
