package handler

import (
	"log/slog"
	"net/http"

	"scribe/internal/delivery/http/response"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CategoryHandler holds dependencies for category handlers.
type CategoryHandler struct {
	uc     usecase.CategoryUsecase
	logger *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CategoryUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: logger}
}

// List returns every category as a flat list ordered by position.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCategoryViews(categories), "Categories retrieved successfully")
}

// Tree returns the category hierarchy as a forest of root nodes.
func (h *CategoryHandler) Tree(c echo.Context) error {
	nodes, err := h.uc.Tree(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCategoryTreeViews(nodes), "Category tree retrieved successfully")
}

// categoryDetailView bundles a category with its parent and direct children.
type categoryDetailView struct {
	Category *CategoryView   `json:"category"`
	Parent   *CategoryView   `json:"parent,omitempty"`
	Children []*CategoryView `json:"children"`
}

// GetBySlug returns a single category with its parent and direct children.
func (h *CategoryHandler) GetBySlug(c echo.Context) error {
	output, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	view := &categoryDetailView{
		Category: newCategoryView(output.Category),
		Children: newCategoryViews(output.Children),
	}
	if output.Parent != nil {
		view.Parent = newCategoryView(output.Parent)
	}

	return response.Success(c, http.StatusOK, view, "Category retrieved successfully")
}

type createCategoryRequest struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=500"`
	ParentID    *uuid.UUID `json:"parentId"`
	SortOrder   int        `json:"sortOrder"`
}

// Create adds a category. The slug is derived from the name.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.Create(c.Request().Context(), &usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newCategoryView(category), "Category created successfully")
}

type updateCategoryRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	SortOrder   *int       `json:"sortOrder"`
	SetParent   bool       `json:"setParent"`
	ParentID    *uuid.UUID `json:"parentId"`
}

// Update modifies a category. SetParent distinguishes "move to root" from
// "leave the parent alone".
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category ID")
	}

	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.Update(c.Request().Context(), &usecase.UpdateCategoryInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		SetParent:   req.SetParent,
		ParentID:    req.ParentID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCategoryView(category), "Category updated successfully")
}

type deleteCategoryRequest struct {
	ArticleAction string `json:"articleAction" validate:"required"`
}

// Delete removes a category and its subtree after handling the articles per
// the requested action.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category ID")
	}

	var req deleteCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid delete input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid delete input")
	}

	action := entity.ArticleAction(req.ArticleAction)
	if !action.IsValid() {
		return errors.WithStack(domainerrors.ErrValidationFailed.WrapMessage("unknown article action"))
	}

	if err := h.uc.Delete(c.Request().Context(), &usecase.DeleteCategoryInput{
		ID:            id,
		ArticleAction: action,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted successfully")
}

type reorderItemRequest struct {
	ID        uuid.UUID  `json:"id" validate:"required"`
	SortOrder int        `json:"sortOrder"`
	ParentID  *uuid.UUID `json:"parentId"`
}

type reorderCategoriesRequest struct {
	Items []reorderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Reorder applies a batch of position changes atomically.
func (h *CategoryHandler) Reorder(c echo.Context) error {
	var req reorderCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reorder input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reorder input")
	}

	items := make([]repository.CategoryReorder, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, repository.CategoryReorder{
			ID:        item.ID,
			SortOrder: item.SortOrder,
			ParentID:  item.ParentID,
		})
	}

	if err := h.uc.Reorder(c.Request().Context(), &usecase.ReorderCategoriesInput{Items: items}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Categories reordered successfully")
}
