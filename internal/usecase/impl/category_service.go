package impl

import (
	"context"
	"log/slog"

	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/usecase"
	"scribe/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	articleRepo  repository.ArticleRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for categoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	ArticleRepo  repository.ArticleRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		articleRepo:  params.ArticleRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List retrieves every category ordered by sort_order with article counts populated.
func (srv *categoryService) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	if err := srv.populateArticleCounts(ctx, categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// Tree retrieves the category hierarchy as a forest. A child whose parent row
// is missing is promoted to a root rather than dropped.
func (srv *categoryService) Tree(ctx context.Context) ([]*entity.CategoryNode, error) {
	categories, err := srv.List(ctx)
	if err != nil {
		return nil, err
	}

	return buildCategoryForest(categories), nil
}

// buildCategoryForest assembles flat categories into root nodes. Input order
// (sort_order ascending) is preserved among siblings.
func buildCategoryForest(categories []*entity.Category) []*entity.CategoryNode {
	nodes := make(map[uuid.UUID]*entity.CategoryNode, len(categories))
	for _, category := range categories {
		nodes[category.ID] = &entity.CategoryNode{Category: *category}
	}

	roots := make([]*entity.CategoryNode, 0, len(categories))
	for _, category := range categories {
		node := nodes[category.ID]
		if category.ParentID != nil {
			if parent, ok := nodes[*category.ParentID]; ok {
				parent.Children = append(parent.Children, node)

				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// GetBySlug retrieves a single category by its slug, with article counts, its
// parent and its direct children.
func (srv *categoryService) GetBySlug(ctx context.Context, slug string) (*usecase.CategoryDetailOutput, error) {
	category, err := srv.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by slug")
	}

	output := &usecase.CategoryDetailOutput{Category: category}

	if category.ParentID != nil {
		parent, err := srv.categoryRepo.FindByID(ctx, *category.ParentID)
		if err != nil && !errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.Wrap(err, "failed to find parent category")
		}
		// A missing parent row leaves Parent nil, same as a root.
		output.Parent = parent
	}

	children, err := srv.categoryRepo.ListChildren(ctx, category.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list child categories")
	}
	output.Children = children

	counted := append([]*entity.Category{category}, children...)
	if output.Parent != nil {
		counted = append(counted, output.Parent)
	}
	if err := srv.populateArticleCounts(ctx, counted); err != nil {
		return nil, err
	}

	return output, nil
}

// Create adds a category, deriving its slug from the name.
func (srv *categoryService) Create(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	slug := util.Slugify(input.Name)
	if slug == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("category name yields an empty slug")
	}

	if _, err := srv.categoryRepo.FindBySlug(ctx, slug); err == nil {
		return nil, domainerrors.ErrSlugExists
	} else if !errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, errors.Wrap(err, "failed to check category slug")
	}

	if input.ParentID != nil {
		if _, err := srv.categoryRepo.FindByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, domainerrors.ErrParentNotFound
			}

			return nil, errors.Wrap(err, "failed to find parent category")
		}
	}

	category := &entity.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ParentID:    input.ParentID,
		SortOrder:   input.SortOrder,
	}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Category created", slog.Any("categoryID", category.ID), slog.String("slug", slug))

	return category, nil
}

// Update modifies a category. A name change re-derives the slug. Moving a
// category under itself or one of its own descendants is rejected.
func (srv *categoryService) Update(ctx context.Context, input *usecase.UpdateCategoryInput) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	if input.Name != nil && *input.Name != category.Name {
		slug := util.Slugify(*input.Name)
		if slug == "" {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("category name yields an empty slug")
		}
		if slug != category.Slug {
			if _, err := srv.categoryRepo.FindBySlug(ctx, slug); err == nil {
				return nil, domainerrors.ErrSlugExists
			} else if !errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, errors.Wrap(err, "failed to check category slug")
			}
		}
		category.Name = *input.Name
		category.Slug = slug
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.SetParent {
		if err := srv.checkParentAssignment(ctx, category.ID, input.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = input.ParentID
	}

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Category updated", slog.Any("categoryID", category.ID))

	return category, nil
}

// checkParentAssignment verifies a prospective parent exists and that adopting
// it keeps the hierarchy acyclic.
func (srv *categoryService) checkParentAssignment(ctx context.Context, categoryID uuid.UUID, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if *parentID == categoryID {
		return domainerrors.ErrCircularReference
	}

	if _, err := srv.categoryRepo.FindByID(ctx, *parentID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrParentNotFound
		}

		return errors.Wrap(err, "failed to find parent category")
	}

	descendant, err := srv.isDescendant(ctx, categoryID, *parentID)
	if err != nil {
		return err
	}
	if descendant {
		return domainerrors.ErrCircularReference
	}

	return nil
}

// isDescendant walks ancestor pointers upward from nodeID and reports whether
// ancestorID is reached. The visited set bounds the walk even if the stored
// hierarchy already contains a cycle.
func (srv *categoryService) isDescendant(ctx context.Context, ancestorID, nodeID uuid.UUID) (bool, error) {
	visited := make(map[uuid.UUID]struct{})
	current := nodeID

	for {
		if _, seen := visited[current]; seen {
			return false, nil
		}
		visited[current] = struct{}{}

		category, err := srv.categoryRepo.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return false, nil
			}

			return false, errors.Wrap(err, "failed to walk category ancestors")
		}

		if category.ParentID == nil {
			return false, nil
		}
		if *category.ParentID == ancestorID {
			return true, nil
		}

		current = *category.ParentID
	}
}

// Delete removes a category and its whole subtree. The subtree's articles are
// migrated or deleted per the requested action before the category rows go,
// all inside one transaction.
func (srv *categoryService) Delete(ctx context.Context, input *usecase.DeleteCategoryInput) error {
	if !input.ArticleAction.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown article action")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()
		articleRepo := repoFactory.ArticleRepo()

		category, err := categoryRepo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrCategoryNotFound
			}

			return errors.Wrap(err, "failed to find category")
		}

		subtreeIDs, err := collectSubtree(ctx, categoryRepo, category.ID)
		if err != nil {
			return err
		}

		if input.ArticleAction == entity.ArticleActionDelete {
			for _, id := range subtreeIDs {
				if err := articleRepo.DeleteByCategory(ctx, id); err != nil {
					return errors.Wrap(err, "failed to delete subtree articles")
				}
			}
		} else {
			target, err := srv.resolveMigrationTarget(ctx, categoryRepo, category, input.ArticleAction)
			if err != nil {
				return err
			}
			for _, id := range subtreeIDs {
				if id == target {
					return domainerrors.ErrValidationFailed.WrapMessage("cannot migrate articles into the deleted subtree")
				}
			}
			for _, id := range subtreeIDs {
				if err := articleRepo.ReassignCategory(ctx, id, target); err != nil {
					return errors.Wrap(err, "failed to migrate subtree articles")
				}
			}
		}

		// Child category rows cascade via the parent foreign key.
		if err := categoryRepo.Delete(ctx, category.ID); err != nil {
			return errors.Wrap(err, "failed to delete category")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Category deleted",
		slog.Any("categoryID", input.ID),
		slog.String("articleAction", string(input.ArticleAction)))

	return nil
}

// resolveMigrationTarget picks the category that receives a deleted category's
// articles: the parent when moving up from a non-root, otherwise the lazily
// created "uncategorized" category.
func (srv *categoryService) resolveMigrationTarget(
	ctx context.Context,
	categoryRepo repository.CategoryRepository,
	category *entity.Category,
	action entity.ArticleAction,
) (uuid.UUID, error) {
	if action == entity.ArticleActionMoveToParent && category.ParentID != nil {
		return *category.ParentID, nil
	}

	return getOrCreateUncategorized(ctx, categoryRepo)
}

// getOrCreateUncategorized returns the singleton fallback category, creating it
// on first use.
func getOrCreateUncategorized(ctx context.Context, categoryRepo repository.CategoryRepository) (uuid.UUID, error) {
	existing, err := categoryRepo.FindBySlug(ctx, entity.UncategorizedSlug)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		return uuid.Nil, errors.Wrap(err, "failed to find uncategorized category")
	}

	fallback := &entity.Category{
		Name:        "Uncategorized",
		Slug:        entity.UncategorizedSlug,
		Description: "Articles without a category",
	}
	if err := categoryRepo.Create(ctx, fallback); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to create uncategorized category")
	}

	return fallback.ID, nil
}

// collectSubtree returns the IDs of a category and all its descendants,
// breadth-first. The visited set guards against malformed cyclic data.
func collectSubtree(ctx context.Context, categoryRepo repository.CategoryRepository, rootID uuid.UUID) ([]uuid.UUID, error) {
	visited := map[uuid.UUID]struct{}{rootID: {}}
	result := []uuid.UUID{rootID}
	queue := []uuid.UUID{rootID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := categoryRepo.ListChildren(ctx, current)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list child categories")
		}
		for _, child := range children {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			visited[child.ID] = struct{}{}
			result = append(result, child.ID)
			queue = append(queue, child.ID)
		}
	}

	return result, nil
}

// Reorder applies a batch of position changes atomically.
func (srv *categoryService) Reorder(ctx context.Context, input *usecase.ReorderCategoriesInput) error {
	for _, item := range input.Items {
		if item.ParentID != nil && *item.ParentID == item.ID {
			return domainerrors.ErrCircularReference
		}
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()
		for _, item := range input.Items {
			if err := categoryRepo.UpdatePosition(ctx, item); err != nil {
				if errors.Is(err, repository.ErrCategoryNotFound) {
					return domainerrors.ErrCategoryNotFound
				}

				return errors.Wrap(err, "failed to reorder category")
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Debug("Categories reordered", slog.Int("count", len(input.Items)))

	return nil
}

// populateArticleCounts fills the derived ArticleCount field on each category.
func (srv *categoryService) populateArticleCounts(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}

	counts, err := srv.articleRepo.CountByCategory(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "failed to count articles by category")
	}

	for _, category := range categories {
		category.ArticleCount = counts[category.ID]
	}

	return nil
}
