// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"scribe/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryReorder is one element of a batch reorder: new sort position and
// parent for a single category.
type CategoryReorder struct {
	ID        uuid.UUID
	SortOrder int
	ParentID  *uuid.UUID
}

// CategoryRepository defines the operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindBySlug retrieves a single category by its slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// ListAll retrieves every category ordered by sort_order ascending.
	ListAll(ctx context.Context) ([]*entity.Category, error)

	// ListChildren retrieves the direct children of a category, ordered by
	// sort_order ascending.
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Category, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// UpdatePosition applies a single reorder step: sort_order and parent.
	UpdatePosition(ctx context.Context, reorder CategoryReorder) error

	// Delete removes a category. Child categories cascade via the parent FK.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of categories.
	Count(ctx context.Context) (int64, error)
}
