package impl

import (
	"context"
	"log/slog"

	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookmarkService implements the BookmarkUsecase interface.
type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	articleRepo  repository.ArticleRepository
	logger       *slog.Logger
}

// BookmarkServiceParams holds dependencies for bookmarkService, injected by Fx.
type BookmarkServiceParams struct {
	fx.In

	BookmarkRepo repository.BookmarkRepository
	ArticleRepo  repository.ArticleRepository
	Logger       *slog.Logger
}

// NewBookmarkService is the constructor for bookmarkService.
func NewBookmarkService(params BookmarkServiceParams) usecase.BookmarkUsecase {
	return &bookmarkService{
		bookmarkRepo: params.BookmarkRepo,
		articleRepo:  params.ArticleRepo,
		logger:       params.Logger,
	}
}

func (srv *bookmarkService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Add bookmarks an article for the user. Bookmarking twice is a no-op.
func (srv *bookmarkService) Add(ctx context.Context, userID, articleID uuid.UUID) error {
	if _, err := srv.articleRepo.FindByID(ctx, articleID); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return domainerrors.ErrArticleNotFound
		}

		return errors.Wrap(err, "failed to find article")
	}

	bookmark := &entity.Bookmark{UserID: userID, ArticleID: articleID}
	if err := srv.bookmarkRepo.Create(ctx, bookmark); err != nil {
		if errors.Is(err, repository.ErrBookmarkExists) {
			srv.log(ctx).Debug("Bookmark already present", slog.Any("articleID", articleID))

			return nil
		}

		return errors.Wrap(err, "failed to create bookmark")
	}

	return nil
}

// Remove deletes a bookmark. Removing a non-existent bookmark is a no-op.
func (srv *bookmarkService) Remove(ctx context.Context, userID, articleID uuid.UUID) error {
	if err := srv.bookmarkRepo.Delete(ctx, userID, articleID); err != nil {
		return errors.Wrap(err, "failed to delete bookmark")
	}

	return nil
}

// List retrieves the user's bookmarks newest first, with articles populated.
func (srv *bookmarkService) List(ctx context.Context, userID uuid.UUID, page, perPage int) (*usecase.BookmarkListOutput, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	bookmarks, total, err := srv.bookmarkRepo.ListByUser(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookmarks")
	}

	return &usecase.BookmarkListOutput{
		Bookmarks: bookmarks,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}, nil
}
