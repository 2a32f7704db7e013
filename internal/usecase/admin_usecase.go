package usecase

import (
	"context"

	"github.com/google/uuid"

	"scribe/internal/domain/entity"
)

// --- Input DTOs ---

// ListUsersInput narrows and pages the admin user listing.
type ListUsersInput struct {
	Search  string
	Role    entity.Role
	Page    int
	PerPage int
}

// UpdateUserRoleInput changes a user's role.
type UpdateUserRoleInput struct {
	UserID uuid.UUID
	Role   entity.Role
}

// InviteUserInput defines the data required to create an account on a user's
// behalf. The user receives a link to set their own password.
type InviteUserInput struct {
	Name  string
	Email string
	Role  entity.Role
}

// --- Output DTOs ---

// SiteMetrics summarizes site-wide totals for the admin dashboard.
type SiteMetrics struct {
	TotalUsers      int64
	TotalArticles   int64
	TotalCategories int64
	TotalViews      int64
}

// UserListOutput returns one page of users with the total match count.
type UserListOutput struct {
	Users   []*entity.User
	Total   int64
	Page    int
	PerPage int
}

// AdminUsecase defines the interface for administrative operations.
type AdminUsecase interface {
	// Metrics returns site-wide totals.
	Metrics(ctx context.Context) (*SiteMetrics, error)

	// ListUsers retrieves a page of users matching the input.
	ListUsers(ctx context.Context, input *ListUsersInput) (*UserListOutput, error)

	// UpdateUserRole changes a user's role.
	UpdateUserRole(ctx context.Context, input *UpdateUserRoleInput) (*entity.User, error)

	// InviteUser creates an account with an unusable random password and mails
	// an invitation link carrying a 24-hour reset token.
	InviteUser(ctx context.Context, input *InviteUserInput) (*entity.User, error)
}
