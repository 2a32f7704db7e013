package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"scribe/config"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminTestEnv struct {
	store  *fakeStore
	tokens *fakeTokenService
	mailer *fakeMailer
	admin  usecase.AdminUsecase
}

func newAdminTestEnv(t *testing.T) *adminTestEnv {
	t.Helper()

	store := newFakeStore()
	tokens := &fakeTokenService{}
	mailer := &fakeMailer{}

	admin := NewAdminService(AdminServiceParams{
		UserRepo:     &fakeUserRepo{store: store},
		ArticleRepo:  &fakeArticleRepo{store: store},
		CategoryRepo: &fakeCategoryRepo{store: store},
		Hasher:       fakePasswordHasher{},
		TokenService: tokens,
		Mailer:       mailer,
		Config: &config.Config{
			Mail: &config.MailConfig{FrontendURL: "https://app.example.com"},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &adminTestEnv{store: store, tokens: tokens, mailer: mailer, admin: admin}
}

func (env *adminTestEnv) seedUser(t *testing.T, user *entity.User) *entity.User {
	t.Helper()
	require.NoError(t, (&fakeUserRepo{store: env.store}).Create(context.Background(), user))

	return user
}

func TestAdminService_Metrics(t *testing.T) {
	env := newAdminTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, &entity.User{Name: "Alice", Email: "alice@example.com", Role: entity.RoleAdmin})
	env.seedUser(t, &entity.User{Name: "Bob", Email: "bob@example.com", Role: entity.RoleReader})

	category := &entity.Category{Name: "Travel", Slug: "travel"}
	require.NoError(t, (&fakeCategoryRepo{store: env.store}).Create(ctx, category))

	articleRepo := &fakeArticleRepo{store: env.store}
	require.NoError(t, articleRepo.Create(ctx, &entity.Article{Title: "A", Slug: "a", CategoryID: category.ID, AuthorID: uuid.New(), Status: entity.ArticleStatusPublished, ViewCount: 120}))
	require.NoError(t, articleRepo.Create(ctx, &entity.Article{Title: "B", Slug: "b", CategoryID: category.ID, AuthorID: uuid.New(), Status: entity.ArticleStatusDraft, ViewCount: 5}))

	metrics, err := env.admin.Metrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), metrics.TotalUsers)
	assert.Equal(t, int64(2), metrics.TotalArticles)
	assert.Equal(t, int64(1), metrics.TotalCategories)
	assert.Equal(t, int64(125), metrics.TotalViews)
}

func TestAdminService_ListUsers_FiltersByRole(t *testing.T) {
	env := newAdminTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, &entity.User{Name: "Alice", Email: "alice@example.com", Role: entity.RoleAdmin})
	env.seedUser(t, &entity.User{Name: "Bob", Email: "bob@example.com", Role: entity.RoleReader})
	env.seedUser(t, &entity.User{Name: "Carol", Email: "carol@example.com", Role: entity.RoleReader})

	output, err := env.admin.ListUsers(ctx, &usecase.ListUsersInput{Role: entity.RoleReader})
	require.NoError(t, err)

	assert.Equal(t, int64(2), output.Total)
	for _, user := range output.Users {
		assert.Equal(t, entity.RoleReader, user.Role)
	}
}

func TestAdminService_ListUsers_Search(t *testing.T) {
	env := newAdminTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, &entity.User{Name: "Alice Wong", Email: "alice@example.com", Role: entity.RoleReader})
	env.seedUser(t, &entity.User{Name: "Bob", Email: "bob@example.com", Role: entity.RoleReader})

	output, err := env.admin.ListUsers(ctx, &usecase.ListUsersInput{Search: "wong"})
	require.NoError(t, err)

	require.Len(t, output.Users, 1)
	assert.Equal(t, "alice@example.com", output.Users[0].Email)
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	env := newAdminTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, &entity.User{Name: "Bob", Email: "bob@example.com", Role: entity.RoleReader})

	updated, err := env.admin.UpdateUserRole(ctx, &usecase.UpdateUserRoleInput{UserID: user.ID, Role: entity.RoleAuthor})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAuthor, updated.Role)

	stored, err := (&fakeUserRepo{store: env.store}).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAuthor, stored.Role)
}

func TestAdminService_UpdateUserRole_UnknownRole(t *testing.T) {
	env := newAdminTestEnv(t)
	user := env.seedUser(t, &entity.User{Name: "Bob", Email: "bob@example.com", Role: entity.RoleReader})

	updated, err := env.admin.UpdateUserRole(context.Background(), &usecase.UpdateUserRoleInput{UserID: user.ID, Role: "superuser"})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_InviteUser_IssuesResetTokenAndMail(t *testing.T) {
	env := newAdminTestEnv(t)
	ctx := context.Background()

	invited, err := env.admin.InviteUser(ctx, &usecase.InviteUserInput{
		Name:  "New Author",
		Email: "author@example.com",
		Role:  entity.RoleAuthor,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAuthor, invited.Role)
	assert.True(t, invited.HasPassword())
	assert.NotEmpty(t, invited.ResetTokenHash)
	require.NotNil(t, invited.ResetTokenExpires)
	assert.True(t, invited.ResetTokenExpires.After(time.Now().Add(23*time.Hour)))

	require.Len(t, env.mailer.inviteMails, 1)
	mail := env.mailer.inviteMails[0]
	assert.Equal(t, "author@example.com", mail.Email)
	assert.Contains(t, mail.Link, "https://app.example.com/reset-password?token=")

	rawToken := mail.Link[len("https://app.example.com/reset-password?token="):]
	assert.Equal(t, env.tokens.HashToken(rawToken), invited.ResetTokenHash)
}

func TestAdminService_InviteUser_DefaultsToReader(t *testing.T) {
	env := newAdminTestEnv(t)

	invited, err := env.admin.InviteUser(context.Background(), &usecase.InviteUserInput{
		Name:  "Plain Reader",
		Email: "reader@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleReader, invited.Role)
}

func TestAdminService_InviteUser_DuplicateEmail(t *testing.T) {
	env := newAdminTestEnv(t)
	env.seedUser(t, &entity.User{Name: "Bob", Email: "bob@example.com", Role: entity.RoleReader})

	invited, err := env.admin.InviteUser(context.Background(), &usecase.InviteUserInput{
		Name:  "Impostor",
		Email: "bob@example.com",
	})
	assert.Nil(t, invited)
	assert.ErrorIs(t, err, domainerrors.ErrEmailExists)
	assert.Empty(t, env.mailer.inviteMails)
}
