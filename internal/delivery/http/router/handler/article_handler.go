package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"scribe/internal/delivery/http/middleware"
	"scribe/internal/delivery/http/response"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ArticleHandler holds dependencies for article handlers.
type ArticleHandler struct {
	uc     usecase.ArticleUsecase
	logger *slog.Logger
}

// NewArticleHandler is the constructor for ArticleHandler, injected by Fx.
func NewArticleHandler(uc usecase.ArticleUsecase, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{uc: uc, logger: logger}
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

func queryUUID(c echo.Context, name string) *uuid.UUID {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}

	return &id
}

// List returns a page of articles. Without a status filter only published
// articles are listed.
func (h *ArticleHandler) List(c echo.Context) error {
	input := &usecase.ListArticlesInput{
		Status:     entity.ArticleStatus(c.QueryParam("status")),
		CategoryID: queryUUID(c, "categoryId"),
		AuthorID:   queryUUID(c, "authorId"),
		Search:     c.QueryParam("search"),
		Sort:       c.QueryParam("sort"),
		Ascending:  c.QueryParam("order") == "asc",
		Page:       queryInt(c, "page", 1),
		PerPage:    queryInt(c, "perPage", 20),
	}

	output, err := h.uc.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	page := &PageView{
		Items:   newArticleViews(output.Articles),
		Total:   output.Total,
		Page:    output.Page,
		PerPage: output.PerPage,
	}

	return response.Success(c, http.StatusOK, page, "Articles retrieved successfully")
}

// articleDetailView bundles an article with its related articles and the
// viewer's bookmark state.
type articleDetailView struct {
	Article    *ArticleView   `json:"article"`
	Related    []*ArticleView `json:"related"`
	Bookmarked bool           `json:"bookmarked"`
}

// GetBySlug returns a single article and bumps its view counter. When the
// request carries a valid token the viewer's bookmark state is resolved.
func (h *ArticleHandler) GetBySlug(c echo.Context) error {
	input := &usecase.GetArticleInput{Slug: c.Param("slug")}
	if viewerID, ok := middleware.UserIDFromContext(c); ok {
		input.ViewerID = &viewerID
	}

	output, err := h.uc.GetBySlug(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	view := &articleDetailView{
		Article:    newArticleView(output.Article, true),
		Related:    newArticleViews(output.Related),
		Bookmarked: output.Bookmarked,
	}

	return response.Success(c, http.StatusOK, view, "Article retrieved successfully")
}

type createArticleRequest struct {
	Title            string     `json:"title" validate:"required,max=200"`
	Content          string     `json:"content" validate:"required"`
	Excerpt          string     `json:"excerpt" validate:"max=500"`
	FeaturedImageURL string     `json:"featuredImageUrl" validate:"omitempty,url"`
	CategoryID       uuid.UUID  `json:"categoryId" validate:"required"`
	Status           string     `json:"status"`
	ScheduleDate     *time.Time `json:"scheduleDate"`
	StickToFrontPage bool       `json:"stickToFrontPage"`
}

// Create adds an article authored by the authenticated user.
func (h *ArticleHandler) Create(c echo.Context) error {
	authorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
	}

	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article input")
	}

	status := entity.ArticleStatus(req.Status)
	if req.Status == "" {
		status = entity.ArticleStatusDraft
	}
	if !status.IsValid() {
		return errors.WithStack(domainerrors.ErrValidationFailed.WrapMessage("unknown article status"))
	}

	article, err := h.uc.Create(c.Request().Context(), &usecase.CreateArticleInput{
		AuthorID:         authorID,
		Title:            req.Title,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		FeaturedImageURL: req.FeaturedImageURL,
		CategoryID:       req.CategoryID,
		Status:           status,
		ScheduleDate:     req.ScheduleDate,
		StickToFrontPage: req.StickToFrontPage,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newArticleView(article, true), "Article created successfully")
}

type updateArticleRequest struct {
	Title            *string    `json:"title" validate:"omitempty,max=200"`
	Content          *string    `json:"content"`
	Excerpt          *string    `json:"excerpt" validate:"omitempty,max=500"`
	FeaturedImageURL *string    `json:"featuredImageUrl" validate:"omitempty,url"`
	CategoryID       *uuid.UUID `json:"categoryId"`
	Status           *string    `json:"status"`
	ScheduleDate     *time.Time `json:"scheduleDate"`
	StickToFrontPage *bool      `json:"stickToFrontPage"`
}

// Update modifies an article. The previous content is snapshotted as a
// revision attributed to the authenticated editor.
func (h *ArticleHandler) Update(c echo.Context) error {
	editorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article ID")
	}

	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article input")
	}

	role, _ := middleware.RoleFromContext(c)

	input := &usecase.UpdateArticleInput{
		ID:               id,
		EditorID:         editorID,
		EditorIsAdmin:    role == entity.RoleAdmin,
		Title:            req.Title,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		FeaturedImageURL: req.FeaturedImageURL,
		CategoryID:       req.CategoryID,
		ScheduleDate:     req.ScheduleDate,
		StickToFrontPage: req.StickToFrontPage,
	}
	if req.Status != nil {
		status := entity.ArticleStatus(*req.Status)
		if !status.IsValid() {
			return errors.WithStack(domainerrors.ErrValidationFailed.WrapMessage("unknown article status"))
		}
		input.Status = &status
	}

	article, err := h.uc.Update(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newArticleView(article, true), "Article updated successfully")
}

// Delete removes an article with its comments, bookmarks and revisions.
func (h *ArticleHandler) Delete(c echo.Context) error {
	requesterID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article ID")
	}

	role, _ := middleware.RoleFromContext(c)

	if err := h.uc.Delete(c.Request().Context(), id, requesterID, role == entity.RoleAdmin); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Article deleted successfully")
}
