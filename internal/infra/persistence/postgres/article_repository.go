package postgres

import (
	"context"

	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// articleRepository implements the domain.ArticleRepository interface using GORM.
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository is the constructor for articleRepository.
func NewArticleRepository(db *gorm.DB) repository.ArticleRepository {
	return &articleRepository{db: db}
}

// FindByID retrieves a single article by its unique ID.
func (repo *articleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	var articleM model.ArticleModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&articleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to find article by id")
	}

	return toArticleDomain(&articleM), nil
}

// FindBySlug retrieves a single article by its slug with author and category populated.
func (repo *articleRepository) FindBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	var articleM model.ArticleModel
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("slug = ?", slug).
		First(&articleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to find article by slug")
	}

	return toArticleDomain(&articleM), nil
}

// SlugExists reports whether any article already uses the given slug.
func (repo *articleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check article slug")
	}

	return count > 0, nil
}

// List retrieves articles matching the filter with the total count before pagination.
func (repo *articleRepository) List(ctx context.Context, filter repository.ArticleFilter) ([]*entity.Article, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ArticleModel{})

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR excerpt ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count articles")
	}

	query = query.Order(articleOrderClause(filter))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var articleModels []model.ArticleModel
	if err := query.
		Preload("Author").
		Preload("Category").
		Find(&articleModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list articles")
	}

	articles := make([]*entity.Article, 0, len(articleModels))
	for i := range articleModels {
		articles = append(articles, toArticleDomain(&articleModels[i]))
	}

	return articles, total, nil
}

// articleOrderClause maps the filter's sort field onto a safe ORDER BY clause.
// Unknown fields fall back to newest-published-first.
func articleOrderClause(filter repository.ArticleFilter) string {
	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}

	switch filter.Sort {
	case "view_count":
		return "view_count " + direction
	case "title":
		return "title " + direction
	case "publish_date":
		return "publish_date " + direction + " NULLS LAST"
	default:
		return "publish_date DESC NULLS LAST, created_at DESC"
	}
}

// ListRelated retrieves up to limit published articles sharing the category, newest first.
func (repo *articleRepository) ListRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]*entity.Article, error) {
	var articleModels []model.ArticleModel
	if err := repo.db.WithContext(ctx).
		Where("category_id = ? AND id <> ? AND status = ?", categoryID, excludeID, string(entity.ArticleStatusPublished)).
		Order("publish_date DESC NULLS LAST").
		Limit(limit).
		Find(&articleModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list related articles")
	}

	articles := make([]*entity.Article, 0, len(articleModels))
	for i := range articleModels {
		articles = append(articles, toArticleDomain(&articleModels[i]))
	}

	return articles, nil
}

// Create persists a new article.
func (repo *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	articleM := fromArticleDomain(article)

	if err := repo.db.WithContext(ctx).Create(articleM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSlugExists.WrapMessage("article slug already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCreateFailed.WrapMessage("invalid author or category reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create article")
	}

	article.ID = articleM.ID
	article.CreatedAt = articleM.CreatedAt
	article.UpdatedAt = articleM.UpdatedAt

	return nil
}

// Update modifies an existing article.
func (repo *articleRepository) Update(ctx context.Context, article *entity.Article) error {
	articleM := fromArticleDomain(article)

	result := repo.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Where("id = ?", article.ID).
		Select("title", "slug", "content", "excerpt", "featured_image_url", "status",
			"category_id", "publish_date", "schedule_date", "stick_to_front_page",
			"read_time_minutes").
		Updates(articleM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSlugExists.WrapMessage("article slug already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUpdateFailed.WrapMessage("invalid category reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update article")
	}

	if result.RowsAffected == 0 {
		return repository.ErrArticleNotFound
	}

	return nil
}

// Delete removes an article; comments, bookmarks and revisions cascade.
func (repo *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ArticleModel{})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete article")
	}

	if result.RowsAffected == 0 {
		return repository.ErrArticleNotFound
	}

	return nil
}

// IncrementViewCount bumps an article's view counter atomically in the database.
func (repo *articleRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return errors.Wrap(err, "failed to increment view count")
	}

	return nil
}

// CountByCategory returns the number of articles per category ID.
func (repo *articleRepository) CountByCategory(ctx context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return counts, nil
	}

	type categoryCount struct {
		CategoryID uuid.UUID
		Count      int64
	}

	var rows []categoryCount
	if err := repo.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IN ?", categoryIDs).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count articles by category")
	}

	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}

	return counts, nil
}

// ReassignCategory moves every article of one category to another.
func (repo *articleRepository) ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Where("category_id = ?", fromCategoryID).
		UpdateColumn("category_id", toCategoryID).Error; err != nil {
		return errors.Wrap(err, "failed to reassign article category")
	}

	return nil
}

// DeleteByCategory removes every article of a category.
func (repo *articleRepository) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&model.ArticleModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete articles by category")
	}

	return nil
}

// CreateRevision persists a snapshot of an article prior to an update.
func (repo *articleRepository) CreateRevision(ctx context.Context, revision *entity.Revision) error {
	revisionM := &model.RevisionModel{
		ID:              revision.ID,
		ArticleID:       revision.ArticleID,
		UserID:          revision.UserID,
		Title:           revision.Title,
		ContentSnapshot: revision.ContentSnapshot,
		CreatedAt:       revision.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(revisionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCreateFailed.WrapMessage("invalid article reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create article revision")
	}

	revision.ID = revisionM.ID
	revision.CreatedAt = revisionM.CreatedAt

	return nil
}

// Count returns the total number of articles.
func (repo *articleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count articles")
	}

	return count, nil
}

// SumViewCounts returns the total view count across all articles.
func (repo *articleRepository) SumViewCounts(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum view counts")
	}

	return total, nil
}

// --- Mapper Functions ---

func toArticleDomain(data *model.ArticleModel) *entity.Article {
	if data == nil {
		return nil
	}

	article := &entity.Article{
		ID:               data.ID,
		Title:            data.Title,
		Slug:             data.Slug,
		Excerpt:          data.Excerpt,
		Content:          data.Content,
		FeaturedImageURL: data.FeaturedImageURL,
		AuthorID:         data.AuthorID,
		CategoryID:       data.CategoryID,
		Status:           entity.ArticleStatus(data.Status),
		PublishDate:      data.PublishDate,
		ScheduleDate:     data.ScheduleDate,
		StickToFrontPage: data.StickToFrontPage,
		ReadTimeMinutes:  data.ReadTimeMinutes,
		ViewCount:        data.ViewCount,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
	if data.Author != nil {
		article.Author = toUserDomain(data.Author)
	}
	if data.Category != nil {
		article.Category = toCategoryDomain(data.Category)
	}

	return article
}

func fromArticleDomain(data *entity.Article) *model.ArticleModel {
	if data == nil {
		return nil
	}

	return &model.ArticleModel{
		ID:               data.ID,
		Title:            data.Title,
		Slug:             data.Slug,
		Content:          data.Content,
		Excerpt:          data.Excerpt,
		FeaturedImageURL: data.FeaturedImageURL,
		Status:           string(data.Status),
		AuthorID:         data.AuthorID,
		CategoryID:       data.CategoryID,
		PublishDate:      data.PublishDate,
		ScheduleDate:     data.ScheduleDate,
		StickToFrontPage: data.StickToFrontPage,
		ReadTimeMinutes:  data.ReadTimeMinutes,
		ViewCount:        data.ViewCount,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
