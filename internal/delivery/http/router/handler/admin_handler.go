package handler

import (
	"log/slog"
	"net/http"

	"scribe/internal/delivery/http/response"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for administrative handlers.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, logger: logger}
}

// metricsView summarizes site-wide totals for the admin dashboard.
type metricsView struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalArticles   int64 `json:"totalArticles"`
	TotalCategories int64 `json:"totalCategories"`
	TotalViews      int64 `json:"totalViews"`
}

// Metrics returns site-wide totals.
func (h *AdminHandler) Metrics(c echo.Context) error {
	metrics, err := h.uc.Metrics(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	view := &metricsView{
		TotalUsers:      metrics.TotalUsers,
		TotalArticles:   metrics.TotalArticles,
		TotalCategories: metrics.TotalCategories,
		TotalViews:      metrics.TotalViews,
	}

	return response.Success(c, http.StatusOK, view, "Metrics retrieved successfully")
}

// ListUsers returns a page of users matching the search and role filters.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := entity.Role(c.QueryParam("role"))
	if role != "" && !role.IsValid() {
		return errors.WithStack(domainerrors.ErrValidationFailed.WrapMessage("unknown role"))
	}

	output, err := h.uc.ListUsers(c.Request().Context(), &usecase.ListUsersInput{
		Search:  c.QueryParam("search"),
		Role:    role,
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "perPage", 20),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	page := &PageView{
		Items:   newUserViews(output.Users),
		Total:   output.Total,
		Page:    output.Page,
		PerPage: output.PerPage,
	}

	return response.Success(c, http.StatusOK, page, "Users retrieved successfully")
}

type updateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UpdateUserRole changes a user's role.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user ID")
	}

	var req updateUserRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	user, err := h.uc.UpdateUserRole(c.Request().Context(), &usecase.UpdateUserRoleInput{
		UserID: userID,
		Role:   entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "User role updated successfully")
}

type inviteUserRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"`
}

// InviteUser creates an account on a user's behalf and mails them a link to
// set their own password.
func (h *AdminHandler) InviteUser(c echo.Context) error {
	var req inviteUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invitation input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invitation input")
	}

	user, err := h.uc.InviteUser(c.Request().Context(), &usecase.InviteUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserView(user), "User invited successfully")
}
