package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soulflow/wellness-platform/internal/api/metrics"
	"github.com/soulflow/wellness-platform/internal/core/ports"
)

// SessionHandler handles the public catalogue and the owner-scoped lifecycle.
type SessionHandler struct {
	service ports.SessionService
}

func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// ListPublic handles GET /api/sessions.
//
// @Summary      List published sessions
// @Tags         sessions
// @Produce      json
// @Param        category    query  string  false  "Exact category filter"
// @Param        difficulty  query  string  false  "Exact difficulty filter"
// @Param        search      query  string  false  "Case-insensitive title/tag search"
// @Param        page        query  int     false  "Page (1-based)"
// @Param        limit       query  int     false  "Rows per page"
// @Success      200  {object}  apiResponse
// @Router       /sessions [get]
func (h *SessionHandler) ListPublic(c echo.Context) error {
	page, err := h.service.ListPublished(c.Request().Context(), ports.ListPublishedInput{
		Category:   c.QueryParam("category"),
		Difficulty: c.QueryParam("difficulty"),
		Search:     c.QueryParam("search"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 10),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionListResponse(page))
}

// GetPublic handles GET /api/sessions/:id. Fetching a published session
// counts as a view.
//
// @Summary      Get a published session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /sessions/{id} [get]
func (h *SessionHandler) GetPublic(c echo.Context) error {
	detail, err := h.service.GetPublished(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.SessionViewsTotal.WithLabelValues(detail.Category).Inc()

	return c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Data:    toSessionResponse(detail),
	})
}

// ListMine handles GET /api/sessions/my-sessions.
//
// @Summary      List the caller's sessions
// @Tags         sessions
// @Produce      json
// @Param        status  query  string  false  "all, draft or published"
// @Param        page    query  int     false  "Page (1-based)"
// @Param        limit   query  int     false  "Rows per page"
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /sessions/my-sessions [get]
func (h *SessionHandler) ListMine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListOwned(c.Request().Context(), ports.ListOwnedInput{
		AuthorID: userID,
		Status:   c.QueryParam("status"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionListResponse(page))
}

// GetMine handles GET /api/sessions/my-sessions/:id. A session owned by a
// different user yields the same 404 as a nonexistent one.
//
// @Summary      Get one of the caller's sessions
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /sessions/my-sessions/{id} [get]
func (h *SessionHandler) GetMine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetOwned(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Data:    toSessionResponse(detail),
	})
}

// SaveDraft handles POST /api/sessions/my-sessions/save-draft. With a
// sessionId it overwrites an owned draft, without one it creates a new draft.
//
// @Summary      Create or update a draft
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      saveDraftRequest  true  "Draft fields"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  apiResponse
// @Failure      401   {object}  apiResponse
// @Failure      404   {object}  apiResponse
// @Failure      409   {object}  apiResponse
// @Router       /sessions/my-sessions/save-draft [post]
func (h *SessionHandler) SaveDraft(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req saveDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	kind := "update"
	if req.SessionID == "" {
		kind = "create"
	}

	detail, err := h.service.SaveDraft(c.Request().Context(), ports.SaveDraftInput{
		AuthorID:    userID,
		SessionID:   req.SessionID,
		Title:       req.Title,
		Tags:        req.Tags,
		JSONFileURL: req.JSONFileURL,
		Description: req.Description,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}

	metrics.SessionsSavedTotal.WithLabelValues(kind).Inc()

	return c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Message: "Draft saved successfully",
		Data:    toSessionResponse(detail),
	})
}

// Publish handles POST /api/sessions/my-sessions/publish.
//
// @Summary      Publish a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      publishRequest  true  "Session id"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  apiResponse
// @Failure      401   {object}  apiResponse
// @Failure      404   {object}  apiResponse
// @Router       /sessions/my-sessions/publish [post]
func (h *SessionHandler) Publish(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req publishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	detail, err := h.service.Publish(c.Request().Context(), userID, req.SessionID)
	if err != nil {
		return err
	}

	metrics.SessionsPublishedTotal.WithLabelValues(detail.Category).Inc()

	return c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Message: "Session published successfully",
		Data:    toSessionResponse(detail),
	})
}

// queryInt parses an integer query parameter, falling back to def on absence
// or garbage.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
