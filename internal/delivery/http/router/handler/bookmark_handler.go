package handler

import (
	"log/slog"
	"net/http"

	"scribe/internal/delivery/http/middleware"
	"scribe/internal/delivery/http/response"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookmarkHandler holds dependencies for bookmark handlers.
type BookmarkHandler struct {
	uc     usecase.BookmarkUsecase
	logger *slog.Logger
}

// NewBookmarkHandler is the constructor for BookmarkHandler, injected by Fx.
func NewBookmarkHandler(uc usecase.BookmarkUsecase, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{uc: uc, logger: logger}
}

// List returns the authenticated user's bookmarks newest first.
func (h *BookmarkHandler) List(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
	}

	output, err := h.uc.List(c.Request().Context(), userID, queryInt(c, "page", 1), queryInt(c, "perPage", 20))
	if err != nil {
		return errors.WithStack(err)
	}

	page := &PageView{
		Items:   newBookmarkViews(output.Bookmarks),
		Total:   output.Total,
		Page:    output.Page,
		PerPage: output.PerPage,
	}

	return response.Success(c, http.StatusOK, page, "Bookmarks retrieved successfully")
}

// Add bookmarks an article for the authenticated user. Bookmarking twice is a
// no-op.
func (h *BookmarkHandler) Add(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article ID")
	}

	if err := h.uc.Add(c.Request().Context(), userID, articleID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Article bookmarked successfully")
}

// Remove deletes a bookmark. Removing an absent bookmark is a no-op.
func (h *BookmarkHandler) Remove(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article ID")
	}

	if err := h.uc.Remove(c.Request().Context(), userID, articleID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Bookmark removed successfully")
}
