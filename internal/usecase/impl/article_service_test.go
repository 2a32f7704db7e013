package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type articleTestEnv struct {
	store    *fakeStore
	articles usecase.ArticleUsecase
}

func newArticleTestEnv(t *testing.T) *articleTestEnv {
	t.Helper()

	store := newFakeStore()
	articles := NewArticleService(ArticleServiceParams{
		TxManager:    &fakeTxManager{store: store},
		ArticleRepo:  &fakeArticleRepo{store: store},
		CategoryRepo: &fakeCategoryRepo{store: store},
		BookmarkRepo: &fakeBookmarkRepo{store: store},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &articleTestEnv{store: store, articles: articles}
}

func (env *articleTestEnv) seedCategory(t *testing.T, category *entity.Category) *entity.Category {
	t.Helper()
	require.NoError(t, (&fakeCategoryRepo{store: env.store}).Create(context.Background(), category))

	return category
}

func (env *articleTestEnv) seedArticle(t *testing.T, article *entity.Article) *entity.Article {
	t.Helper()
	if article.Status == "" {
		article.Status = entity.ArticleStatusPublished
	}
	require.NoError(t, (&fakeArticleRepo{store: env.store}).Create(context.Background(), article))

	return article
}

func TestArticleService_Create_Draft(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})

	article, err := env.articles.Create(ctx, &usecase.CreateArticleInput{
		Title:      "A Week in Kyoto",
		Content:    "Temples and tea houses.",
		AuthorID:   uuid.New(),
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "a-week-in-kyoto", article.Slug)
	assert.Equal(t, entity.ArticleStatusDraft, article.Status)
	assert.Nil(t, article.PublishDate)
	assert.Equal(t, 1, article.ReadTimeMinutes)
}

func TestArticleService_Create_PublishedStampsPublishDate(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})

	article, err := env.articles.Create(ctx, &usecase.CreateArticleInput{
		Title:      "Live Now",
		Content:    "Short.",
		AuthorID:   uuid.New(),
		CategoryID: category.ID,
		Status:     entity.ArticleStatusPublished,
	})
	require.NoError(t, err)

	require.NotNil(t, article.PublishDate)
	assert.WithinDuration(t, time.Now(), *article.PublishDate, time.Minute)
}

func TestArticleService_Create_SlugCollisionGetsSuffix(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	env.seedArticle(t, &entity.Article{Title: "Taken", Slug: "taken", CategoryID: category.ID, AuthorID: uuid.New()})

	article, err := env.articles.Create(ctx, &usecase.CreateArticleInput{
		Title:      "Taken",
		Content:    "Different body.",
		AuthorID:   uuid.New(),
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "taken", article.Slug)
	assert.True(t, strings.HasPrefix(article.Slug, "taken-"))
}

func TestArticleService_Create_ReadTimeFromContent(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})

	// 450 words reads as 3 minutes at 200 words per minute.
	content := strings.TrimSpace(strings.Repeat("word ", 450))
	article, err := env.articles.Create(ctx, &usecase.CreateArticleInput{
		Title:      "Long Read",
		Content:    content,
		AuthorID:   uuid.New(),
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, article.ReadTimeMinutes)
}

func TestArticleService_Create_ScheduledNeedsDate(t *testing.T) {
	env := newArticleTestEnv(t)
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})

	article, err := env.articles.Create(context.Background(), &usecase.CreateArticleInput{
		Title:      "Later",
		Content:    "Body.",
		AuthorID:   uuid.New(),
		CategoryID: category.ID,
		Status:     entity.ArticleStatusScheduled,
	})
	assert.Nil(t, article)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestArticleService_Create_CategoryNotFound(t *testing.T) {
	env := newArticleTestEnv(t)

	article, err := env.articles.Create(context.Background(), &usecase.CreateArticleInput{
		Title:      "Lost",
		Content:    "Body.",
		AuthorID:   uuid.New(),
		CategoryID: uuid.New(),
	})
	assert.Nil(t, article)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestArticleService_GetBySlug_IncrementsViews(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	article := env.seedArticle(t, &entity.Article{Title: "Kyoto", Slug: "kyoto", CategoryID: category.ID, AuthorID: uuid.New(), ViewCount: 9})

	detail, err := env.articles.GetBySlug(ctx, &usecase.GetArticleInput{Slug: "kyoto"})
	require.NoError(t, err)

	assert.Equal(t, int64(10), detail.Article.ViewCount)

	stored, err := (&fakeArticleRepo{store: env.store}).FindByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.ViewCount)
}

func TestArticleService_GetBySlug_RelatedArticlesCapped(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	env.seedArticle(t, &entity.Article{Title: "Main", Slug: "main", CategoryID: category.ID, AuthorID: uuid.New()})
	for _, slug := range []string{"r1", "r2", "r3", "r4"} {
		env.seedArticle(t, &entity.Article{Title: slug, Slug: slug, CategoryID: category.ID, AuthorID: uuid.New()})
	}
	// Drafts never show up as related.
	env.seedArticle(t, &entity.Article{Title: "Hidden", Slug: "hidden", CategoryID: category.ID, AuthorID: uuid.New(), Status: entity.ArticleStatusDraft})

	detail, err := env.articles.GetBySlug(ctx, &usecase.GetArticleInput{Slug: "main"})
	require.NoError(t, err)

	require.Len(t, detail.Related, 3)
	for _, related := range detail.Related {
		assert.NotEqual(t, "main", related.Slug)
		assert.NotEqual(t, "hidden", related.Slug)
	}
}

func TestArticleService_GetBySlug_BookmarkedForViewer(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	article := env.seedArticle(t, &entity.Article{Title: "Kyoto", Slug: "kyoto", CategoryID: category.ID, AuthorID: uuid.New()})

	viewer := uuid.New()
	require.NoError(t, (&fakeBookmarkRepo{store: env.store}).Create(ctx, &entity.Bookmark{UserID: viewer, ArticleID: article.ID}))

	detail, err := env.articles.GetBySlug(ctx, &usecase.GetArticleInput{Slug: "kyoto", ViewerID: &viewer})
	require.NoError(t, err)
	assert.True(t, detail.Bookmarked)

	anonymous, err := env.articles.GetBySlug(ctx, &usecase.GetArticleInput{Slug: "kyoto"})
	require.NoError(t, err)
	assert.False(t, anonymous.Bookmarked)
}

func TestArticleService_GetBySlug_NotFound(t *testing.T) {
	env := newArticleTestEnv(t)

	detail, err := env.articles.GetBySlug(context.Background(), &usecase.GetArticleInput{Slug: "missing"})
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domainerrors.ErrArticleNotFound)
}

func TestArticleService_Update_SnapshotsRevision(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	article := env.seedArticle(t, &entity.Article{
		Title:      "Old Title",
		Slug:       "old-title",
		Content:    "Old body.",
		CategoryID: category.ID,
		AuthorID:   uuid.New(),
	})

	editor := uuid.New()
	newTitle := "New Title"
	newContent := strings.TrimSpace(strings.Repeat("word ", 250))
	updated, err := env.articles.Update(ctx, &usecase.UpdateArticleInput{
		ID:            article.ID,
		EditorID:      editor,
		EditorIsAdmin: true,
		Title:         &newTitle,
		Content:       &newContent,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Title", updated.Title)
	// The slug never changes after creation.
	assert.Equal(t, "old-title", updated.Slug)
	assert.Equal(t, 2, updated.ReadTimeMinutes)

	env.store.mu.Lock()
	defer env.store.mu.Unlock()
	require.Len(t, env.store.revisions, 1)
	revision := env.store.revisions[0]
	assert.Equal(t, article.ID, revision.ArticleID)
	assert.Equal(t, editor, revision.UserID)
	assert.Equal(t, "Old Title", revision.Title)
	assert.Equal(t, "Old body.", revision.ContentSnapshot)
}

func TestArticleService_Update_FirstPublicationStampsDate(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	article := env.seedArticle(t, &entity.Article{
		Title:      "Draft",
		Slug:       "draft",
		Content:    "Body.",
		CategoryID: category.ID,
		AuthorID:   uuid.New(),
		Status:     entity.ArticleStatusDraft,
	})

	published := entity.ArticleStatusPublished
	updated, err := env.articles.Update(ctx, &usecase.UpdateArticleInput{ID: article.ID, EditorID: uuid.New(), EditorIsAdmin: true, Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishDate)
	firstPublish := *updated.PublishDate

	// Unpublish and republish: the original publish date survives.
	draft := entity.ArticleStatusDraft
	_, err = env.articles.Update(ctx, &usecase.UpdateArticleInput{ID: article.ID, EditorID: uuid.New(), EditorIsAdmin: true, Status: &draft})
	require.NoError(t, err)
	republished, err := env.articles.Update(ctx, &usecase.UpdateArticleInput{ID: article.ID, EditorID: uuid.New(), EditorIsAdmin: true, Status: &published})
	require.NoError(t, err)
	require.NotNil(t, republished.PublishDate)
	assert.Equal(t, firstPublish, *republished.PublishDate)
}

func TestArticleService_Update_UnknownCategory(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	article := env.seedArticle(t, &entity.Article{Title: "Kyoto", Slug: "kyoto", CategoryID: category.ID, AuthorID: uuid.New()})

	missing := uuid.New()
	updated, err := env.articles.Update(ctx, &usecase.UpdateArticleInput{ID: article.ID, EditorID: uuid.New(), EditorIsAdmin: true, CategoryID: &missing})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestArticleService_List_ClampsPaging(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	for _, slug := range []string{"a", "b", "c"} {
		env.seedArticle(t, &entity.Article{Title: slug, Slug: slug, CategoryID: category.ID, AuthorID: uuid.New()})
	}

	output, err := env.articles.List(ctx, &usecase.ListArticlesInput{Page: 0, PerPage: -5})
	require.NoError(t, err)

	assert.Equal(t, 1, output.Page)
	assert.Equal(t, 20, output.PerPage)
	assert.Equal(t, int64(3), output.Total)
	assert.Len(t, output.Articles, 3)
}

func TestArticleService_List_FiltersByStatus(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	env.seedArticle(t, &entity.Article{Title: "Live", Slug: "live", CategoryID: category.ID, AuthorID: uuid.New()})
	env.seedArticle(t, &entity.Article{Title: "Hidden", Slug: "hidden", CategoryID: category.ID, AuthorID: uuid.New(), Status: entity.ArticleStatusDraft})

	output, err := env.articles.List(ctx, &usecase.ListArticlesInput{Status: entity.ArticleStatusPublished})
	require.NoError(t, err)

	require.Len(t, output.Articles, 1)
	assert.Equal(t, "live", output.Articles[0].Slug)
}

func TestArticleService_Update_ForbiddenForNonAuthor(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	article := env.seedArticle(t, &entity.Article{Title: "Kyoto", Slug: "kyoto", CategoryID: category.ID, AuthorID: uuid.New()})

	newTitle := "Hijacked"
	updated, err := env.articles.Update(ctx, &usecase.UpdateArticleInput{
		ID:       article.ID,
		EditorID: uuid.New(),
		Title:    &newTitle,
	})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestArticleService_Delete_AuthorOrAdmin(t *testing.T) {
	env := newArticleTestEnv(t)
	ctx := context.Background()
	category := env.seedCategory(t, &entity.Category{Name: "Travel", Slug: "travel"})
	author := uuid.New()
	article := env.seedArticle(t, &entity.Article{Title: "Kyoto", Slug: "kyoto", CategoryID: category.ID, AuthorID: author})

	assert.ErrorIs(t, env.articles.Delete(ctx, article.ID, uuid.New(), false), domainerrors.ErrForbidden)
	require.NoError(t, env.articles.Delete(ctx, article.ID, author, false))
	assert.ErrorIs(t, env.articles.Delete(ctx, article.ID, author, false), domainerrors.ErrArticleNotFound)

	other := env.seedArticle(t, &entity.Article{Title: "Osaka", Slug: "osaka", CategoryID: category.ID, AuthorID: uuid.New()})
	require.NoError(t, env.articles.Delete(ctx, other.ID, uuid.New(), true))
}
