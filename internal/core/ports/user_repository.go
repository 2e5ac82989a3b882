package ports

import (
	"context"
	"time"

	"github.com/soulflow/wellness-platform/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	// FindUsernames resolves a set of user IDs to usernames in one query.
	// Unknown IDs are simply absent from the result map.
	FindUsernames(ctx context.Context, ids []string) (map[string]string, error)
}
