package ports

import (
	"context"

	"github.com/soulflow/wellness-platform/internal/core/domain"
)

// OwnedFilter carries the query parameters for listing an author's sessions.
type OwnedFilter struct {
	AuthorID string
	Status   domain.SessionStatus // empty = all
	Page     int                  // 1-based
	Limit    int
}

// PublishedFilter carries the query parameters for the public listing.
// Search matches title or tag membership, case-insensitively.
type PublishedFilter struct {
	Category   string
	Difficulty string
	Search     string
	Page       int // 1-based
	Limit      int
}

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, s *domain.Session) (*domain.Session, error)
	// ListByAuthor returns a page of the author's sessions sorted by most
	// recently updated first, plus the total match count.
	ListByAuthor(ctx context.Context, filter OwnedFilter) ([]*domain.Session, int64, error)
	// ListPublished returns a page of published sessions sorted by publish
	// time descending, plus the total match count.
	ListPublished(ctx context.Context, filter PublishedFilter) ([]*domain.Session, int64, error)
	// FindPublishedAndIncrementViews atomically increments the view counter of
	// a published session and returns the updated document.
	FindPublishedAndIncrementViews(ctx context.Context, id string) (*domain.Session, error)
}
