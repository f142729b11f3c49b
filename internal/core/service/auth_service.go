package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

const (
	maxEmailLength = 254
	maxNameLength  = 150
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// AuthService implements registration, login and token revocation.
type AuthService struct {
	users     ports.UserRepository
	revoker   ports.TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, revoker: revoker, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout revokes the token until its natural expiry; the auth middleware
// rejects revoked token IDs afterwards.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.ErrUnauthenticated
	}
	return s.revoker.Revoke(ctx, tokenID, expiresAt)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"jti":      newTokenID(),
		"user_id":  user.ID,
		"username": user.Username,
		"admin":    user.IsAdmin(),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}

func validateRegisterInput(input ports.RegisterInput) error {
	switch {
	case input.Username == "":
		return domain.Validationf("username is required")
	case len(input.Username) > maxNameLength:
		return domain.Validationf("username must be at most %d characters", maxNameLength)
	case !usernameRe.MatchString(input.Username):
		return domain.Validationf("username may contain only letters, digits and .@+-")
	case input.Email == "":
		return domain.Validationf("email is required")
	case len(input.Email) > maxEmailLength:
		return domain.Validationf("email must be at most %d characters", maxEmailLength)
	case input.FirstName == "":
		return domain.Validationf("first_name is required")
	case len(input.FirstName) > maxNameLength:
		return domain.Validationf("first_name must be at most %d characters", maxNameLength)
	case input.LastName == "":
		return domain.Validationf("last_name is required")
	case len(input.LastName) > maxNameLength:
		return domain.Validationf("last_name must be at most %d characters", maxNameLength)
	case input.Password == "":
		return domain.Validationf("password is required")
	case len(input.Password) > maxNameLength:
		return domain.Validationf("password must be at most %d characters", maxNameLength)
	}
	return nil
}
