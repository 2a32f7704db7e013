package handler

import (
	"log/slog"
	"net/http"

	"scribe/internal/delivery/http/middleware"
	"scribe/internal/delivery/http/response"
	"scribe/internal/domain/entity"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CommentHandler holds dependencies for comment handlers.
type CommentHandler struct {
	uc     usecase.CommentUsecase
	logger *slog.Logger
}

// NewCommentHandler is the constructor for CommentHandler, injected by Fx.
func NewCommentHandler(uc usecase.CommentUsecase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{uc: uc, logger: logger}
}

// List returns a page of an article's comments threaded into reply trees.
func (h *CommentHandler) List(c echo.Context) error {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article ID")
	}

	output, err := h.uc.List(c.Request().Context(), &usecase.ListCommentsInput{
		ArticleID: articleID,
		Page:      queryInt(c, "page", 1),
		PerPage:   queryInt(c, "perPage", 20),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	page := &PageView{
		Items:   newCommentTreeViews(output.Comments),
		Total:   output.Total,
		Page:    output.Page,
		PerPage: output.PerPage,
	}

	return response.Success(c, http.StatusOK, page, "Comments retrieved successfully")
}

type createCommentRequest struct {
	ParentID *uuid.UUID `json:"parentId"`
	Content  string     `json:"content" validate:"required,max=2000"`
}

// Create posts a comment or reply on an article.
func (h *CommentHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article ID")
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}

	comment, err := h.uc.Create(c.Request().Context(), &usecase.CreateCommentInput{
		ArticleID: articleID,
		UserID:    userID,
		ParentID:  req.ParentID,
		Content:   req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newCommentView(comment), "Comment posted successfully")
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// Update edits a comment's content. Only the author may edit.
func (h *CommentHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment ID")
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}

	comment, err := h.uc.Update(c.Request().Context(), &usecase.UpdateCommentInput{
		ID:      id,
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCommentView(comment), "Comment updated successfully")
}

// Flag marks a comment for moderator review.
func (h *CommentHandler) Flag(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment ID")
	}

	if err := h.uc.Flag(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Comment flagged successfully")
}

type moderateCommentRequest struct {
	Status string `json:"status" validate:"required"`
}

// Moderate changes a comment's visibility status.
func (h *CommentHandler) Moderate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment ID")
	}

	var req moderateCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := h.uc.Moderate(c.Request().Context(), &usecase.ModerateCommentInput{
		ID:     id,
		Status: entity.CommentStatus(req.Status),
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Comment status updated successfully")
}

// Delete removes a comment and its replies. The author or an admin may delete.
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment ID")
	}

	role, _ := middleware.RoleFromContext(c)
	isAdmin := role == entity.RoleAdmin

	if err := h.uc.Delete(c.Request().Context(), id, userID, isAdmin); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Comment deleted successfully")
}
