package domain

import (
	"strings"
	"time"
)

// SessionStatus represents the lifecycle state of a wellness session.
// A session starts as a draft and moves one-way to published.
type SessionStatus string

const (
	StatusDraft     SessionStatus = "draft"
	StatusPublished SessionStatus = "published"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

const (
	CategoryYoga        = "yoga"
	CategoryMeditation  = "meditation"
	CategoryBreathing   = "breathing"
	CategoryStretching  = "stretching"
	CategoryMindfulness = "mindfulness"
	CategoryOther       = "other"
)

// Field limits enforced on drafts.
const (
	MaxTitleLen       = 100
	MaxTagLen         = 20
	MaxDescriptionLen = 500
	MinDuration       = 1
	MaxDuration       = 300
	DefaultDuration   = 30
)

// Session is the core aggregate: wellness content metadata plus a link to an
// externally hosted JSON file with the actual exercise data.
type Session struct {
	ID          string
	Title       string
	Tags        []string
	JSONFileURL string
	Description string
	Duration    int // minutes
	Difficulty  string
	Category    string
	Status      SessionStatus
	AuthorID    string
	PublishedAt *time.Time
	LastSaved   time.Time
	Views       int64
	Likes       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPublished reports whether the session is visible on public endpoints.
func (s *Session) IsPublished() bool { return s.Status == StatusPublished }

// MarkDraft puts the session back into draft state and stamps the save time.
func (s *Session) MarkDraft(now time.Time) {
	s.Status = StatusDraft
	s.LastSaved = now
	s.UpdatedAt = now
}

// MarkPublished transitions the session to published. PublishedAt is stamped
// only on the first publish so it stays stable across repeated calls.
func (s *Session) MarkPublished(now time.Time) {
	s.Status = StatusPublished
	if s.PublishedAt == nil {
		ts := now
		s.PublishedAt = &ts
	}
	s.UpdatedAt = now
}

// SplitTags parses the comma-separated tag input from the editor into a tag
// set. Segments are trimmed and empty segments are dropped.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
