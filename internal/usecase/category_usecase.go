package usecase

import (
	"context"

	"github.com/google/uuid"

	"scribe/internal/domain/entity"
	"scribe/internal/domain/repository"
)

// --- Input DTOs ---

// CreateCategoryInput defines the data required to create a category.
// The slug is derived from the name.
type CreateCategoryInput struct {
	Name        string
	Description string
	ParentID    *uuid.UUID
	SortOrder   int
}

// UpdateCategoryInput carries the mutable category fields. Nil pointers leave
// the corresponding field unchanged; SetParent distinguishes "move to root"
// from "leave the parent alone".
type UpdateCategoryInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	SortOrder   *int
	SetParent   bool
	ParentID    *uuid.UUID // Only read when SetParent is true; nil moves to root.
}

// DeleteCategoryInput selects the category to delete and what happens to its
// articles.
type DeleteCategoryInput struct {
	ID            uuid.UUID
	ArticleAction entity.ArticleAction
}

// ReorderCategoriesInput carries the full batch of new positions.
type ReorderCategoriesInput struct {
	Items []repository.CategoryReorder
}

// --- Output DTOs ---

// CategoryDetailOutput returns a category with its parent and direct children.
// Parent is nil for roots and when the parent row is missing.
type CategoryDetailOutput struct {
	Category *entity.Category
	Parent   *entity.Category
	Children []*entity.Category
}

// CategoryUsecase defines the interface for category-tree business operations.
type CategoryUsecase interface {
	// List retrieves every category as a flat list ordered by sort_order, with
	// article counts populated.
	List(ctx context.Context) ([]*entity.Category, error)

	// Tree retrieves the category hierarchy as a forest of root nodes. A child
	// whose parent row is missing is promoted to a root rather than dropped.
	Tree(ctx context.Context) ([]*entity.CategoryNode, error)

	// GetBySlug retrieves a single category by its slug, with article counts,
	// its parent and its direct children.
	GetBySlug(ctx context.Context, slug string) (*CategoryDetailOutput, error)

	// Create adds a category, deriving its slug from the name.
	Create(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error)

	// Update modifies a category. Moving it under one of its own descendants,
	// or under itself, is rejected.
	Update(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error)

	// Delete removes a category and its whole subtree after migrating or
	// deleting the articles per the requested action, atomically.
	Delete(ctx context.Context, input *DeleteCategoryInput) error

	// Reorder applies a batch of position changes atomically.
	Reorder(ctx context.Context, input *ReorderCategoriesInput) error
}
