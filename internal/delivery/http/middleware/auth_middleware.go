package middleware

import (
	"strings"

	"scribe/internal/delivery/http/response"
	"scribe/internal/domain/entity"
	"scribe/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for handlers to read.
const (
	ContextKeyUserID = "userID"
	ContextKeyEmail  = "userEmail"
	ContextKeyRole   = "userRole"
)

// AuthMiddleware provides middleware for access token authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the caller's
// identity on the request context. All validation failures share one response.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := m.claimsFromRequest(c)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired access token")
		}

		setIdentity(c, claims)

		return next(c)
	}
}

// OptionalAuthenticate resolves the caller's identity when a valid bearer
// token is present and proceeds anonymously otherwise. Used by public reads
// that personalize their response for logged-in users.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims, ok := m.claimsFromRequest(c); ok {
			setIdentity(c, claims)
		}

		return next(c)
	}
}

// RequireRole allows only callers holding one of the given roles. It must be
// used after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := RoleFromContext(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied")
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return response.Forbidden(c, "FORBIDDEN", "Permission denied")
		}
	}
}

func (m *AuthMiddleware) claimsFromRequest(c echo.Context) (*service.AccessClaims, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}

	claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, false
	}

	return claims, true
}

func setIdentity(c echo.Context, claims *service.AccessClaims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyEmail, claims.Email)
	c.Set(ContextKeyRole, entity.Role(claims.Role))
}

// UserIDFromContext returns the authenticated caller's ID, if any.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)

	return userID, ok
}

// RoleFromContext returns the authenticated caller's role, if any.
func RoleFromContext(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(ContextKeyRole).(entity.Role)

	return role, ok
}
