package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

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

const relatedArticleLimit = 3

// articleService implements the ArticleUsecase interface.
type articleService struct {
	txManager    repository.TransactionManager
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	bookmarkRepo repository.BookmarkRepository
	logger       *slog.Logger
}

// ArticleServiceParams holds dependencies for articleService, injected by Fx.
type ArticleServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ArticleRepo  repository.ArticleRepository
	CategoryRepo repository.CategoryRepository
	BookmarkRepo repository.BookmarkRepository
	Logger       *slog.Logger
}

// NewArticleService is the constructor for articleService.
func NewArticleService(params ArticleServiceParams) usecase.ArticleUsecase {
	return &articleService{
		txManager:    params.TxManager,
		articleRepo:  params.ArticleRepo,
		categoryRepo: params.CategoryRepo,
		bookmarkRepo: params.BookmarkRepo,
		logger:       params.Logger,
	}
}

func (srv *articleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List retrieves a page of articles matching the input.
func (srv *articleService) List(ctx context.Context, input *usecase.ListArticlesInput) (*usecase.ArticleListOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	filter := repository.ArticleFilter{
		Status:     input.Status,
		CategoryID: input.CategoryID,
		AuthorID:   input.AuthorID,
		Search:     input.Search,
		Sort:       input.Sort,
		Ascending:  input.Ascending,
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	}

	articles, total, err := srv.articleRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list articles")
	}

	return &usecase.ArticleListOutput{
		Articles: articles,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

// GetBySlug retrieves an article, bumps its view counter and resolves related
// articles from the same category.
func (srv *articleService) GetBySlug(ctx context.Context, input *usecase.GetArticleInput) (*usecase.ArticleDetailOutput, error) {
	article, err := srv.articleRepo.FindBySlug(ctx, input.Slug)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return nil, domainerrors.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to find article by slug")
	}

	// View counting is best effort; a failed bump never blocks the read.
	if err := srv.articleRepo.IncrementViewCount(ctx, article.ID); err != nil {
		srv.log(ctx).Warn("Failed to increment view count", slog.Any("articleID", article.ID), slog.Any("error", err))
	} else {
		article.ViewCount++
	}

	related, err := srv.articleRepo.ListRelated(ctx, article.CategoryID, article.ID, relatedArticleLimit)
	if err != nil {
		srv.log(ctx).Warn("Failed to load related articles", slog.Any("articleID", article.ID), slog.Any("error", err))
		related = nil
	}

	bookmarked := false
	if input.ViewerID != nil {
		bookmarked, err = srv.bookmarkRepo.Exists(ctx, *input.ViewerID, article.ID)
		if err != nil {
			srv.log(ctx).Warn("Failed to check bookmark", slog.Any("articleID", article.ID), slog.Any("error", err))
			bookmarked = false
		}
	}

	return &usecase.ArticleDetailOutput{
		Article:    article,
		Related:    related,
		Bookmarked: bookmarked,
	}, nil
}

// Create adds an article, deriving slug and read time from the content.
func (srv *articleService) Create(ctx context.Context, input *usecase.CreateArticleInput) (*entity.Article, error) {
	status := input.Status
	if status == "" {
		status = entity.ArticleStatusDraft
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown article status")
	}
	if status == entity.ArticleStatusScheduled && input.ScheduleDate == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("scheduled articles need a schedule date")
	}

	if _, err := srv.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	slug, err := srv.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	article := &entity.Article{
		Title:            input.Title,
		Slug:             slug,
		Excerpt:          input.Excerpt,
		Content:          input.Content,
		FeaturedImageURL: input.FeaturedImageURL,
		AuthorID:         input.AuthorID,
		CategoryID:       input.CategoryID,
		Status:           status,
		ScheduleDate:     input.ScheduleDate,
		StickToFrontPage: input.StickToFrontPage,
		ReadTimeMinutes:  util.CalculateReadTime(input.Content),
	}
	if status == entity.ArticleStatusPublished {
		now := time.Now()
		article.PublishDate = &now
	}

	if err := srv.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Article created", slog.Any("articleID", article.ID), slog.String("slug", slug))

	return article, nil
}

// uniqueSlug derives a slug from the title and disambiguates a collision with
// an epoch-millisecond suffix.
func (srv *articleService) uniqueSlug(ctx context.Context, title string) (string, error) {
	slug := util.Slugify(title)
	if slug == "" {
		return "", domainerrors.ErrValidationFailed.WrapMessage("article title yields an empty slug")
	}

	exists, err := srv.articleRepo.SlugExists(ctx, slug)
	if err != nil {
		return "", errors.Wrap(err, "failed to check article slug")
	}
	if exists {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
	}

	return slug, nil
}

// Update modifies an article, snapshotting the previous title and content as a
// revision inside the same transaction.
func (srv *articleService) Update(ctx context.Context, input *usecase.UpdateArticleInput) (*entity.Article, error) {
	var updated *entity.Article

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		articleRepo := repoFactory.ArticleRepo()

		article, err := articleRepo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, repository.ErrArticleNotFound) {
				return domainerrors.ErrArticleNotFound
			}

			return errors.Wrap(err, "failed to find article")
		}

		if article.AuthorID != input.EditorID && !input.EditorIsAdmin {
			return domainerrors.ErrForbidden
		}

		revision := &entity.Revision{
			ArticleID:       article.ID,
			UserID:          input.EditorID,
			Title:           article.Title,
			ContentSnapshot: article.Content,
		}
		if err := articleRepo.CreateRevision(ctx, revision); err != nil {
			return errors.Wrap(err, "failed to snapshot article revision")
		}

		if input.Title != nil {
			article.Title = *input.Title
		}
		if input.Content != nil {
			article.Content = *input.Content
			article.ReadTimeMinutes = util.CalculateReadTime(*input.Content)
		}
		if input.Excerpt != nil {
			article.Excerpt = *input.Excerpt
		}
		if input.FeaturedImageURL != nil {
			article.FeaturedImageURL = *input.FeaturedImageURL
		}
		if input.CategoryID != nil {
			if _, err := repoFactory.CategoryRepo().FindByID(ctx, *input.CategoryID); err != nil {
				if errors.Is(err, repository.ErrCategoryNotFound) {
					return domainerrors.ErrCategoryNotFound
				}

				return errors.Wrap(err, "failed to find category")
			}
			article.CategoryID = *input.CategoryID
		}
		if input.ScheduleDate != nil {
			article.ScheduleDate = input.ScheduleDate
		}
		if input.StickToFrontPage != nil {
			article.StickToFrontPage = *input.StickToFrontPage
		}
		if input.Status != nil {
			if !input.Status.IsValid() {
				return domainerrors.ErrValidationFailed.WrapMessage("unknown article status")
			}
			// First publication stamps the publish date; republishing keeps it.
			if *input.Status == entity.ArticleStatusPublished && article.PublishDate == nil {
				now := time.Now()
				article.PublishDate = &now
			}
			article.Status = *input.Status
		}

		if err := articleRepo.Update(ctx, article); err != nil {
			return err
		}

		updated = article

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Article updated", slog.Any("articleID", updated.ID))

	return updated, nil
}

// Delete removes an article along with its comments, bookmarks and revisions.
// Only the author or an admin may delete.
func (srv *articleService) Delete(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error {
	article, err := srv.articleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return domainerrors.ErrArticleNotFound
		}

		return errors.Wrap(err, "failed to find article")
	}

	if article.AuthorID != requesterID && !isAdmin {
		return domainerrors.ErrForbidden
	}

	if err := srv.articleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return domainerrors.ErrArticleNotFound
		}

		return errors.Wrap(err, "failed to delete article")
	}

	srv.log(ctx).Info("Article deleted", slog.Any("articleID", id))

	return nil
}
