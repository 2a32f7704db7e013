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

// bookmarkRepository implements the domain.BookmarkRepository interface using GORM.
type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository is the constructor for bookmarkRepository.
func NewBookmarkRepository(db *gorm.DB) repository.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create persists a new bookmark. A duplicate pair surfaces as ErrBookmarkExists.
func (repo *bookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	bookmarkM := &model.BookmarkModel{
		UserID:    bookmark.UserID,
		ArticleID: bookmark.ArticleID,
		CreatedAt: bookmark.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(bookmarkM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrBookmarkExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrArticleNotFound.WrapMessage("article does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create bookmark")
	}

	bookmark.CreatedAt = bookmarkM.CreatedAt

	return nil
}

// Delete removes a bookmark. Deleting a non-existent bookmark is not an error.
func (repo *bookmarkRepository) Delete(ctx context.Context, userID, articleID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&model.BookmarkModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete bookmark")
	}

	return nil
}

// Exists reports whether the user has bookmarked the article.
func (repo *bookmarkRepository) Exists(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.BookmarkModel{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check bookmark")
	}

	return count > 0, nil
}

// ListByUser retrieves a user's bookmarks newest first, with articles populated.
func (repo *bookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Bookmark, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.BookmarkModel{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count bookmarks")
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var bookmarkModels []model.BookmarkModel
	if err := query.
		Preload("Article").
		Preload("Article.Author").
		Preload("Article.Category").
		Order("created_at DESC").
		Find(&bookmarkModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list bookmarks")
	}

	bookmarks := make([]*entity.Bookmark, 0, len(bookmarkModels))
	for i := range bookmarkModels {
		data := &bookmarkModels[i]
		bookmark := &entity.Bookmark{
			UserID:    data.UserID,
			ArticleID: data.ArticleID,
			CreatedAt: data.CreatedAt,
		}
		if data.Article != nil {
			bookmark.Article = toArticleDomain(data.Article)
		}
		bookmarks = append(bookmarks, bookmark)
	}

	return bookmarks, total, nil
}
