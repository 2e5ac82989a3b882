package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/soulflow/wellness-platform/internal/core/domain"
	"github.com/soulflow/wellness-platform/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// SessionService implements the draft/publish lifecycle and the public
// catalogue over the session store.
type SessionService struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewSessionService(sessions ports.SessionRepository, users ports.UserRepository, log zerolog.Logger) *SessionService {
	return &SessionService{sessions: sessions, users: users, log: log}
}

// SaveDraft creates a new draft or overwrites an existing owned one. The
// session always ends up in draft state. Saving against an already published
// session is rejected; unpublishing is not a supported transition.
func (s *SessionService) SaveDraft(ctx context.Context, input ports.SaveDraftInput) (*ports.SessionDetail, error) {
	if input.Title == "" || input.JSONFileURL == "" {
		return nil, domain.NewValidationError("title and JSON file URL are required")
	}

	tags := domain.SplitTags(input.Tags)
	for _, tag := range tags {
		if len(tag) > domain.MaxTagLen {
			return nil, domain.NewValidationError(fmt.Sprintf("tag %q exceeds %d characters", tag, domain.MaxTagLen))
		}
	}

	now := time.Now().UTC()

	if input.SessionID == "" {
		session := &domain.Session{
			Title:       input.Title,
			Tags:        tags,
			JSONFileURL: input.JSONFileURL,
			Description: input.Description,
			Duration:    durationOrDefault(input.Duration),
			Difficulty:  difficultyOrDefault(input.Difficulty),
			Category:    categoryOrDefault(input.Category),
			Status:      domain.StatusDraft,
			AuthorID:    input.AuthorID,
			LastSaved:   now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		created, err := s.sessions.Create(ctx, session)
		if err != nil {
			return nil, err
		}

		s.log.Info().Str("session_id", created.ID).Str("author_id", input.AuthorID).Msg("draft created")
		return s.toDetail(created, nil), nil
	}

	session, err := s.findOwned(ctx, input.AuthorID, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session.IsPublished() {
		return nil, domain.ErrSessionPublished
	}

	session.Title = input.Title
	session.Tags = tags
	session.JSONFileURL = input.JSONFileURL
	session.Description = input.Description
	session.Duration = durationOrDefault(input.Duration)
	session.Difficulty = difficultyOrDefault(input.Difficulty)
	session.Category = categoryOrDefault(input.Category)
	session.MarkDraft(now)

	updated, err := s.sessions.Update(ctx, session)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("session_id", updated.ID).Msg("draft saved")
	return s.toDetail(updated, nil), nil
}

// Publish transitions an owned session to published. Publishing an already
// published session is a no-op that returns the record unchanged.
func (s *SessionService) Publish(ctx context.Context, authorID, sessionID string) (*ports.SessionDetail, error) {
	session, err := s.findOwned(ctx, authorID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsPublished() {
		return s.toDetail(session, nil), nil
	}

	if session.Title == "" || session.JSONFileURL == "" {
		return nil, domain.ErrSessionIncomplete
	}

	session.MarkPublished(time.Now().UTC())

	updated, err := s.sessions.Update(ctx, session)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("session_id", updated.ID).Str("category", updated.Category).Msg("session published")
	return s.toDetail(updated, nil), nil
}

// GetOwned returns a single owned session. A session owned by someone else is
// indistinguishable from a nonexistent one.
func (s *SessionService) GetOwned(ctx context.Context, authorID, sessionID string) (*ports.SessionDetail, error) {
	session, err := s.findOwned(ctx, authorID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toDetail(session, nil), nil
}

// ListOwned returns a page of the caller's sessions, most recently updated first.
func (s *SessionService) ListOwned(ctx context.Context, input ports.ListOwnedInput) (*ports.SessionPage, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	var status domain.SessionStatus
	switch input.Status {
	case "draft":
		status = domain.StatusDraft
	case "published":
		status = domain.StatusPublished
	}

	items, total, err := s.sessions.ListByAuthor(ctx, ports.OwnedFilter{
		AuthorID: input.AuthorID,
		Status:   status,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return s.toPage(items, total, page, limit, nil), nil
}

// ListPublished returns a page of the public catalogue with author usernames joined.
func (s *SessionService) ListPublished(ctx context.Context, input ports.ListPublishedInput) (*ports.SessionPage, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	items, total, err := s.sessions.ListPublished(ctx, ports.PublishedFilter{
		Category:   input.Category,
		Difficulty: input.Difficulty,
		Search:     input.Search,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	usernames, err := s.authorUsernames(ctx, items)
	if err != nil {
		return nil, err
	}

	return s.toPage(items, total, page, limit, usernames), nil
}

// GetPublished returns a published session with its author username joined,
// incrementing the view counter as a side effect of the fetch.
func (s *SessionService) GetPublished(ctx context.Context, sessionID string) (*ports.SessionDetail, error) {
	session, err := s.sessions.FindPublishedAndIncrementViews(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	usernames, err := s.authorUsernames(ctx, []*domain.Session{session})
	if err != nil {
		return nil, err
	}

	return s.toDetail(session, usernames), nil
}

// findOwned folds the ownership check into the lookup: a non-owned id surfaces
// as ErrSessionNotFound so existence never leaks.
func (s *SessionService) findOwned(ctx context.Context, authorID, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.AuthorID != authorID {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) authorUsernames(ctx context.Context, sessions []*domain.Session) (map[string]string, error) {
	seen := make(map[string]struct{}, len(sessions))
	ids := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		if _, ok := seen[sess.AuthorID]; !ok {
			seen[sess.AuthorID] = struct{}{}
			ids = append(ids, sess.AuthorID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.users.FindUsernames(ctx, ids)
}

func (s *SessionService) toDetail(session *domain.Session, usernames map[string]string) *ports.SessionDetail {
	return &ports.SessionDetail{
		ID:          session.ID,
		Title:       session.Title,
		Tags:        session.Tags,
		JSONFileURL: session.JSONFileURL,
		Description: session.Description,
		Duration:    session.Duration,
		Difficulty:  session.Difficulty,
		Category:    session.Category,
		Status:      string(session.Status),
		Author: ports.SessionAuthor{
			ID:       session.AuthorID,
			Username: usernames[session.AuthorID],
		},
		PublishedAt: session.PublishedAt,
		LastSaved:   session.LastSaved,
		Views:       session.Views,
		Likes:       session.Likes,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}

func (s *SessionService) toPage(items []*domain.Session, total int64, page, limit int, usernames map[string]string) *ports.SessionPage {
	details := make([]ports.SessionDetail, len(items))
	for i, item := range items {
		details[i] = *s.toDetail(item, usernames)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	skip := int64((page - 1) * limit)

	return &ports.SessionPage{
		Items:      details,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		HasNext:    skip+int64(len(items)) < total,
		HasPrev:    page > 1,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func durationOrDefault(d int) int {
	if d == 0 {
		return domain.DefaultDuration
	}
	return d
}

func difficultyOrDefault(d string) string {
	if d == "" {
		return domain.DifficultyBeginner
	}
	return d
}

func categoryOrDefault(c string) string {
	if c == "" {
		return domain.CategoryOther
	}
	return c
}
