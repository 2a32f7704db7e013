// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"scribe/internal/delivery/http/middleware"
	"scribe/internal/delivery/http/router/handler"
	"scribe/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	CategoryHandler *handler.CategoryHandler
	ArticleHandler  *handler.ArticleHandler
	CommentHandler  *handler.CommentHandler
	BookmarkHandler *handler.BookmarkHandler
	AdminHandler    *handler.AdminHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	auth           *handler.AuthHandler
	user           *handler.UserHandler
	category       *handler.CategoryHandler
	article        *handler.ArticleHandler
	comment        *handler.CommentHandler
	bookmark       *handler.BookmarkHandler
	admin          *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		auth:           params.AuthHandler,
		user:           params.UserHandler,
		category:       params.CategoryHandler,
		article:        params.ArticleHandler,
		comment:        params.CommentHandler,
		bookmark:       params.BookmarkHandler,
		admin:          params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.auth.Register)
		authGroup.POST("/login", r.auth.Login)
		authGroup.POST("/google", r.auth.GoogleLogin)
		authGroup.POST("/refresh", r.auth.Refresh)
		authGroup.POST("/logout", r.auth.Logout)
		authGroup.POST("/forgot-password", r.auth.ForgotPassword)
		authGroup.POST("/reset-password", r.auth.ResetPassword)
	}

	meGroup := api.Group("/users/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.user.GetProfile)
		meGroup.PATCH("", r.user.UpdateProfile)
		meGroup.PUT("/password", r.user.ChangePassword)
		meGroup.DELETE("", r.user.DeleteAccount)
	}

	categoryGroup := api.Group("/categories")
	{
		categoryGroup.GET("", r.category.List)
		categoryGroup.GET("/tree", r.category.Tree)
		categoryGroup.GET("/:slug", r.category.GetBySlug)
	}

	// Category management is admin only.
	categoryAdmin := api.Group("/categories")
	categoryAdmin.Use(r.authMiddleware.Authenticate)
	categoryAdmin.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		categoryAdmin.POST("", r.category.Create)
		categoryAdmin.PATCH("/:id", r.category.Update)
		categoryAdmin.DELETE("/:id", r.category.Delete)
		categoryAdmin.PUT("/reorder", r.category.Reorder)
	}

	articleGroup := api.Group("/articles")
	{
		articleGroup.GET("", r.article.List)
		// Optional auth resolves the viewer's bookmark state.
		articleGroup.GET("/:slug", r.article.GetBySlug, r.authMiddleware.OptionalAuthenticate)
		articleGroup.GET("/:id/comments", r.comment.List)
	}

	articleWrite := api.Group("/articles")
	articleWrite.Use(r.authMiddleware.Authenticate)
	{
		writeOnly := r.authMiddleware.RequireRole(entity.RoleAuthor, entity.RoleAdmin)
		articleWrite.POST("", r.article.Create, writeOnly)
		articleWrite.PATCH("/:id", r.article.Update, writeOnly)
		articleWrite.DELETE("/:id", r.article.Delete, writeOnly)

		articleWrite.POST("/:id/comments", r.comment.Create)
		articleWrite.PUT("/:id/bookmark", r.bookmark.Add)
		articleWrite.DELETE("/:id/bookmark", r.bookmark.Remove)
	}

	commentGroup := api.Group("/comments")
	commentGroup.Use(r.authMiddleware.Authenticate)
	{
		commentGroup.PATCH("/:id", r.comment.Update)
		commentGroup.DELETE("/:id", r.comment.Delete)
		commentGroup.POST("/:id/flag", r.comment.Flag)
		commentGroup.PUT("/:id/status", r.comment.Moderate, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}

	bookmarkGroup := api.Group("/bookmarks")
	bookmarkGroup.Use(r.authMiddleware.Authenticate)
	{
		bookmarkGroup.GET("", r.bookmark.List)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/metrics", r.admin.Metrics)
		adminGroup.GET("/users", r.admin.ListUsers)
		adminGroup.PATCH("/users/:id/role", r.admin.UpdateUserRole)
		adminGroup.POST("/users/invite", r.admin.InviteUser)
	}
}
