package ports

import (
	"context"

	"github.com/soulflow/wellness-platform/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries login credentials. ClientIP feeds the brute-force limiter.
type LoginInput struct {
	Email    string
	Password string
	ClientIP string
}

// AuthService implements registration, login and current-user lookup.
// Register and Login return a signed session token alongside the user; the
// transport layer decides how the token is delivered (HTTP-only cookie).
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, input LoginInput) (string, *domain.User, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
