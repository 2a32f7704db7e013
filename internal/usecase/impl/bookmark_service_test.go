package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookmarkTestEnv struct {
	store     *fakeStore
	bookmarks usecase.BookmarkUsecase
}

func newBookmarkTestEnv(t *testing.T) *bookmarkTestEnv {
	t.Helper()

	store := newFakeStore()
	bookmarks := NewBookmarkService(BookmarkServiceParams{
		BookmarkRepo: &fakeBookmarkRepo{store: store},
		ArticleRepo:  &fakeArticleRepo{store: store},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &bookmarkTestEnv{store: store, bookmarks: bookmarks}
}

func (env *bookmarkTestEnv) seedArticle(t *testing.T, slug string) *entity.Article {
	t.Helper()

	article := &entity.Article{
		Title:      slug,
		Slug:       slug,
		CategoryID: uuid.New(),
		AuthorID:   uuid.New(),
		Status:     entity.ArticleStatusPublished,
	}
	require.NoError(t, (&fakeArticleRepo{store: env.store}).Create(context.Background(), article))

	return article
}

func TestBookmarkService_Add_DuplicateIsNoOp(t *testing.T) {
	env := newBookmarkTestEnv(t)
	ctx := context.Background()
	article := env.seedArticle(t, "kyoto")
	user := uuid.New()

	require.NoError(t, env.bookmarks.Add(ctx, user, article.ID))
	assert.NoError(t, env.bookmarks.Add(ctx, user, article.ID))

	output, err := env.bookmarks.List(ctx, user, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), output.Total)
}

func TestBookmarkService_Add_ArticleNotFound(t *testing.T) {
	env := newBookmarkTestEnv(t)

	err := env.bookmarks.Add(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrArticleNotFound)
}

func TestBookmarkService_Remove_AbsentIsNoOp(t *testing.T) {
	env := newBookmarkTestEnv(t)
	ctx := context.Background()
	article := env.seedArticle(t, "kyoto")
	user := uuid.New()

	require.NoError(t, env.bookmarks.Add(ctx, user, article.ID))
	require.NoError(t, env.bookmarks.Remove(ctx, user, article.ID))
	assert.NoError(t, env.bookmarks.Remove(ctx, user, article.ID))

	output, err := env.bookmarks.List(ctx, user, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), output.Total)
}

func TestBookmarkService_List_PopulatesArticles(t *testing.T) {
	env := newBookmarkTestEnv(t)
	ctx := context.Background()
	first := env.seedArticle(t, "first")
	second := env.seedArticle(t, "second")
	user := uuid.New()

	require.NoError(t, env.bookmarks.Add(ctx, user, first.ID))
	require.NoError(t, env.bookmarks.Add(ctx, user, second.ID))
	// Another user's bookmarks stay out of the listing.
	require.NoError(t, env.bookmarks.Add(ctx, uuid.New(), first.ID))

	output, err := env.bookmarks.List(ctx, user, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), output.Total)
	assert.Equal(t, 1, output.Page)
	assert.Equal(t, 20, output.PerPage)
	require.Len(t, output.Bookmarks, 2)
	for _, bookmark := range output.Bookmarks {
		require.NotNil(t, bookmark.Article)
		assert.Equal(t, user, bookmark.UserID)
	}
}
