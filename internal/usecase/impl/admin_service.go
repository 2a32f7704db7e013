package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"scribe/config"
	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/domain/service"
	"scribe/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo     repository.UserRepository
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	frontendURL  string
	logger       *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	ArticleRepo  repository.ArticleRepository
	CategoryRepo repository.CategoryRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	frontendURL := ""
	if params.Config != nil && params.Config.Mail != nil {
		frontendURL = params.Config.Mail.FrontendURL
	}

	return &adminService{
		userRepo:     params.UserRepo,
		articleRepo:  params.ArticleRepo,
		categoryRepo: params.CategoryRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailer:       params.Mailer,
		frontendURL:  frontendURL,
		logger:       params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Metrics returns site-wide totals for the admin dashboard.
func (srv *adminService) Metrics(ctx context.Context) (*usecase.SiteMetrics, error) {
	users, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	articles, err := srv.articleRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count articles")
	}

	categories, err := srv.categoryRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count categories")
	}

	views, err := srv.articleRepo.SumViewCounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum view counts")
	}

	return &usecase.SiteMetrics{
		TotalUsers:      users,
		TotalArticles:   articles,
		TotalCategories: categories,
		TotalViews:      views,
	}, nil
}

// ListUsers retrieves a page of users matching the input.
func (srv *adminService) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*usecase.UserListOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	users, total, err := srv.userRepo.List(ctx, repository.UserFilter{
		Search: input.Search,
		Role:   input.Role,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.UserListOutput{
		Users:   users,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// UpdateUserRole changes a user's role.
func (srv *adminService) UpdateUserRole(ctx context.Context, input *usecase.UpdateUserRoleInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	user.Role = input.Role
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user role")
	}

	srv.log(ctx).Info("User role updated", slog.Any("userID", user.ID), slog.String("role", user.Role.String()))

	return user, nil
}

// InviteUser creates an account with an unusable random password and mails an
// invitation link carrying a 24-hour reset token. The invitee sets their real
// password through the reset flow.
func (srv *adminService) InviteUser(ctx context.Context, input *usecase.InviteUserInput) (*entity.User, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleReader
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing email")
	}

	// The account gets a random throwaway password; nobody ever learns it.
	tempPassword, err := srv.tokenService.NewRefreshToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate temporary password")
	}
	hashedPassword, err := srv.hasher.Hash(tempPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash temporary password")
	}

	resetToken, err := srv.tokenService.NewResetToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate invite token")
	}
	expires := time.Now().Add(srv.tokenService.InviteTokenDuration())

	user := &entity.User{
		Name:              input.Name,
		Email:             input.Email,
		PasswordHash:      hashedPassword,
		Role:              role,
		Preferences:       entity.DefaultPreferences(),
		ResetTokenHash:    srv.tokenService.HashToken(resetToken),
		ResetTokenExpires: &expires,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	inviteLink := fmt.Sprintf("%s/reset-password?token=%s", srv.frontendURL, resetToken)
	if err := srv.mailer.SendInvitation(ctx, user.Email, inviteLink); err != nil {
		srv.log(ctx).Error("Failed to send invitation mail", slog.Any("userID", user.ID), slog.Any("error", err))
	}

	srv.log(ctx).Info("User invited", slog.Any("userID", user.ID), slog.String("role", role.String()))

	return user, nil
}
