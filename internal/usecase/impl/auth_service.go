// Package impl contains the implementation of the application's business logic.
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

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	frontendURL  string
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	frontendURL := ""
	if params.Config != nil && params.Config.Mail != nil {
		frontendURL = params.Config.Mail.FrontendURL
	}

	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailer:       params.Mailer,
		frontendURL:  frontendURL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account with a password credential and logs it in.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing email")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleReader,
		Preferences:  entity.DefaultPreferences(),
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		// The unique index may still fire under a concurrent registration.
		return nil, err
	}

	output, err := srv.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return output, nil
}

// Login verifies an email/password pair and issues a token pair. Unknown
// accounts, password-less accounts and wrong passwords fail identically.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !user.HasPassword() || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login rejected", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.issueTokens(ctx, user)
}

// GoogleLogin logs in via verified Google identity claims. An account already
// holding the Google ID logs straight in; an account matching by email gets the
// Google ID linked; otherwise a new reader account is created.
func (srv *authService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByGoogleID(ctx, input.GoogleID)
	if err == nil {
		return srv.issueTokens(ctx, user)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by google id")
	}

	user, err = srv.userRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		user.GoogleID = input.GoogleID
		user.EmailVerified = true
		if user.AvatarURL == "" {
			user.AvatarURL = input.AvatarURL
		}
		if err := srv.userRepo.Update(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to link google account")
		}
		srv.log(ctx).Info("Linked Google account", slog.Any("userID", user.ID))
	case errors.Is(err, repository.ErrUserNotFound):
		user = &entity.User{
			Name:          input.Name,
			Email:         input.Email,
			AvatarURL:     input.AvatarURL,
			Role:          entity.RoleReader,
			GoogleID:      input.GoogleID,
			Preferences:   entity.DefaultPreferences(),
			EmailVerified: true,
		}
		if err := srv.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		srv.log(ctx).Info("Created account from Google login", slog.Any("userID", user.ID))
	default:
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return srv.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token is not rotated; it stays valid until its own expiry. Expired sessions
// are deleted on sight.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.AuthOutput, error) {
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	session, err := srv.sessionRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrInvalidRefreshToken
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	if session.Expired(time.Now()) {
		if err := srv.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
			srv.log(ctx).Warn("Failed to clean up expired session", slog.Any("error", err))
		}

		return nil, domainerrors.ErrRefreshTokenExpired
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The account is gone; the session is worthless.
			if err := srv.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
				srv.log(ctx).Warn("Failed to clean up orphaned session", slog.Any("error", err))
			}

			return nil, domainerrors.ErrInvalidRefreshToken
		}

		return nil, errors.Wrap(err, "failed to find session user")
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: input.RefreshToken,
		User:         user,
	}, nil
}

// Logout terminates the session of the given refresh token. Unknown tokens are
// ignored so repeated logouts succeed.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	if err := srv.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}

// ForgotPassword issues a reset token and mails a reset link. The caller gets
// the same outcome whether or not the email maps to an account, so the endpoint
// cannot be used to probe registered addresses.
func (srv *authService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) error {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Password reset requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to find user by email")
	}

	resetToken, err := srv.tokenService.NewResetToken()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	expires := time.Now().Add(srv.tokenService.ResetTokenDuration())
	user.ResetTokenHash = srv.tokenService.HashToken(resetToken)
	user.ResetTokenExpires = &expires

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store reset token")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", srv.frontendURL, resetToken)
	if err := srv.mailer.SendPasswordReset(ctx, user.Email, resetLink); err != nil {
		// Do not surface delivery failures; that would reveal the account exists.
		srv.log(ctx).Error("Failed to send password reset mail", slog.Any("userID", user.ID), slog.Any("error", err))
	}

	return nil
}

// ResetPassword consumes a reset token, replaces the password and revokes every
// active session of the account.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	tokenHash := srv.tokenService.HashToken(input.Token)

	user, err := srv.userRepo.FindByResetTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrInvalidResetToken
		}

		return errors.Wrap(err, "failed to find user by reset token")
	}

	if !user.ResetTokenValid(time.Now()) {
		return domainerrors.ErrResetTokenExpired
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user.PasswordHash = hashedPassword
		user.ResetTokenHash = ""
		user.ResetTokenExpires = nil

		if err := repoFactory.UserRepo().Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		// Every existing login is revoked along with the old password.
		if err := repoFactory.SessionRepo().DeleteByUserID(ctx, user.ID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", user.ID))

	return nil
}

// issueTokens builds the access/refresh pair for a logged-in user and persists
// the refresh token's session record.
func (srv *authService) issueTokens(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, err := srv.tokenService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokenService.NewRefreshToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	session := &entity.Session{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
