package handler

import "time"

// apiResponse is the uniform success envelope for all 2xx responses.
type apiResponse struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Data       any                 `json:"data,omitempty"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type paginationResponse struct {
	Current int  `json:"current"`
	Total   int  `json:"total"` // total pages, not rows
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// --- Auth request / response types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// --- Session request / response types ---

type saveDraftRequest struct {
	SessionID   string `json:"sessionId"`
	Title       string `json:"title"       validate:"required,max=100"`
	Tags        string `json:"tags"`
	JSONFileURL string `json:"jsonFileUrl" validate:"required"`
	Description string `json:"description" validate:"max=500"`
	Duration    int    `json:"duration"    validate:"omitempty,min=1,max=300"`
	Difficulty  string `json:"difficulty"  validate:"omitempty,oneof=beginner intermediate advanced"`
	Category    string `json:"category"    validate:"omitempty,oneof=yoga meditation breathing stretching mindfulness other"`
}

type publishRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// authorResponse is the public author view joined onto session reads.
// Username is omitted on owner-scoped endpoints, which do not join it.
type authorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// sessionResponse keeps the isPublished/isDraft booleans the SPA reads; they
// derive from the single status field.
type sessionResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Tags        []string       `json:"tags"`
	JSONFileURL string         `json:"jsonFileUrl"`
	Description string         `json:"description"`
	Duration    int            `json:"duration"`
	Difficulty  string         `json:"difficulty"`
	Category    string         `json:"category"`
	Status      string         `json:"status"`
	IsPublished bool           `json:"isPublished"`
	IsDraft     bool           `json:"isDraft"`
	Author      authorResponse `json:"author"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	LastSaved   time.Time      `json:"lastSaved"`
	Views       int64          `json:"views"`
	Likes       int64          `json:"likes"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
