package ports

import (
	"context"
	"time"

	"github.com/platefull/recipe-api/internal/core/domain"
)

// RegisterInput carries everything needed to create a new account.
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// AuthService issues and revokes access tokens.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login authenticates by email and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the token with the given ID until it would have expired.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// TokenRevoker persists revoked token IDs (Redis-backed in production).
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
