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

// commentRepository implements the domain.CommentRepository interface using GORM.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// FindByID retrieves a single comment by its unique ID.
func (repo *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var commentM model.CommentModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&commentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find comment by id")
	}

	return toCommentDomain(&commentM), nil
}

// ListTopLevel retrieves visible top-level comments of an article, oldest first.
func (repo *commentRepository) ListTopLevel(ctx context.Context, articleID uuid.UUID, limit, offset int) ([]*entity.Comment, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("article_id = ? AND parent_id IS NULL AND status = ?", articleID, string(entity.CommentStatusVisible))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count comments")
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var commentModels []model.CommentModel
	if err := query.
		Preload("User").
		Order("created_at ASC").
		Find(&commentModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list top-level comments")
	}

	comments := make([]*entity.Comment, 0, len(commentModels))
	for i := range commentModels {
		comments = append(comments, toCommentDomain(&commentModels[i]))
	}

	return comments, total, nil
}

// ListByArticle retrieves every visible comment of an article, oldest first,
// with commenting users populated.
func (repo *commentRepository) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*entity.Comment, error) {
	var commentModels []model.CommentModel
	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("article_id = ? AND status = ?", articleID, string(entity.CommentStatusVisible)).
		Order("created_at ASC").
		Find(&commentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list comments by article")
	}

	comments := make([]*entity.Comment, 0, len(commentModels))
	for i := range commentModels {
		comments = append(comments, toCommentDomain(&commentModels[i]))
	}

	return comments, nil
}

// Create persists a new comment.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := fromCommentDomain(comment)

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCreateFailed.WrapMessage("invalid article, user or parent reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt
	comment.UpdatedAt = commentM.UpdatedAt

	return nil
}

// Update modifies an existing comment's content.
func (repo *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("id = ?", comment.ID).
		Update("content", comment.Content)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update comment")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// UpdateStatus changes a comment's moderation status.
func (repo *commentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CommentStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update comment status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// Delete removes a comment. Replies cascade via the parent FK.
func (repo *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CommentModel{})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete comment")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCommentDomain(data *model.CommentModel) *entity.Comment {
	if data == nil {
		return nil
	}

	comment := &entity.Comment{
		ID:        data.ID,
		ArticleID: data.ArticleID,
		UserID:    data.UserID,
		ParentID:  data.ParentID,
		Content:   data.Content,
		Status:    entity.CommentStatus(data.Status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.User != nil {
		comment.User = toUserDomain(data.User)
	}

	return comment
}

func fromCommentDomain(data *entity.Comment) *model.CommentModel {
	if data == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        data.ID,
		ArticleID: data.ArticleID,
		UserID:    data.UserID,
		ParentID:  data.ParentID,
		Content:   data.Content,
		Status:    string(data.Status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
