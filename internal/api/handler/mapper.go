package handler

import (
	"github.com/soulflow/wellness-platform/internal/core/domain"
	"github.com/soulflow/wellness-platform/internal/core/ports"
)

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

func toSessionResponse(d *ports.SessionDetail) sessionResponse {
	return sessionResponse{
		ID:          d.ID,
		Title:       d.Title,
		Tags:        d.Tags,
		JSONFileURL: d.JSONFileURL,
		Description: d.Description,
		Duration:    d.Duration,
		Difficulty:  d.Difficulty,
		Category:    d.Category,
		Status:      d.Status,
		IsPublished: d.Status == string(domain.StatusPublished),
		IsDraft:     d.Status == string(domain.StatusDraft),
		Author: authorResponse{
			ID:       d.Author.ID,
			Username: d.Author.Username,
		},
		PublishedAt: d.PublishedAt,
		LastSaved:   d.LastSaved,
		Views:       d.Views,
		Likes:       d.Likes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toSessionListResponse(page *ports.SessionPage) apiResponse {
	items := make([]sessionResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toSessionResponse(&page.Items[i])
	}
	return apiResponse{
		Success: true,
		Data:    items,
		Pagination: &paginationResponse{
			Current: page.Page,
			Total:   page.TotalPages,
			HasNext: page.HasNext,
			HasPrev: page.HasPrev,
		},
	}
}
