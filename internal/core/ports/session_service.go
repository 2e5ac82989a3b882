package ports

import (
	"context"
	"time"
)

// SaveDraftInput carries the editor payload for creating or updating a draft.
// SessionID empty means create; Tags is the raw comma-separated editor input.
type SaveDraftInput struct {
	AuthorID    string
	SessionID   string
	Title       string
	Tags        string
	JSONFileURL string
	Description string
	Duration    int
	Difficulty  string
	Category    string
}

// ListOwnedInput carries all parameters for the my-sessions listing.
type ListOwnedInput struct {
	AuthorID string
	Status   string // "all", "draft" or "published"
	Page     int
	Limit    int
}

// ListPublishedInput carries all parameters for the public listing.
type ListPublishedInput struct {
	Category   string
	Difficulty string
	Search     string
	Page       int
	Limit      int
}

// SessionAuthor is the public author view joined onto session reads.
type SessionAuthor struct {
	ID       string
	Username string
}

// SessionDetail is the full session view returned by the service.
type SessionDetail struct {
	ID          string
	Title       string
	Tags        []string
	JSONFileURL string
	Description string
	Duration    int
	Difficulty  string
	Category    string
	Status      string
	Author      SessionAuthor
	PublishedAt *time.Time
	LastSaved   time.Time
	Views       int64
	Likes       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionPage is a single page of session results.
type SessionPage struct {
	Items      []SessionDetail
	Total      int64
	Page       int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// SessionService defines use-case operations for the session lifecycle and
// the public catalogue.
type SessionService interface {
	ListPublished(ctx context.Context, input ListPublishedInput) (*SessionPage, error)
	// GetPublished returns a published session and increments its view counter.
	GetPublished(ctx context.Context, sessionID string) (*SessionDetail, error)
	ListOwned(ctx context.Context, input ListOwnedInput) (*SessionPage, error)
	GetOwned(ctx context.Context, authorID, sessionID string) (*SessionDetail, error)
	SaveDraft(ctx context.Context, input SaveDraftInput) (*SessionDetail, error)
	Publish(ctx context.Context, authorID, sessionID string) (*SessionDetail, error)
}
