// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"scribe/internal/domain/entity"
	"scribe/internal/usecase"

	"github.com/google/uuid"
)

// --- Response views ---
// Entities are never serialized directly; views control exactly which fields
// leave the system.

// UserView is the public representation of an account.
type UserView struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	AvatarURL     string             `json:"avatarUrl,omitempty"`
	Role          string             `json:"role"`
	Preferences   entity.Preferences `json:"preferences"`
	EmailVerified bool               `json:"emailVerified"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func newUserView(user *entity.User) *UserView {
	if user == nil {
		return nil
	}

	return &UserView{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		AvatarURL:     user.AvatarURL,
		Role:          user.Role.String(),
		Preferences:   user.Preferences,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}

func newUserViews(users []*entity.User) []*UserView {
	views := make([]*UserView, 0, len(users))
	for _, user := range users {
		views = append(views, newUserView(user))
	}

	return views
}

// AuthView returns the token pair and user of a successful login.
type AuthView struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         *UserView `json:"user"`
}

func newAuthView(output *usecase.AuthOutput) *AuthView {
	return &AuthView{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         newUserView(output.User),
	}
}

// CategoryView is the public representation of a category.
type CategoryView struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description,omitempty"`
	ParentID     *uuid.UUID `json:"parentId,omitempty"`
	SortOrder    int        `json:"sortOrder"`
	ArticleCount int64      `json:"articleCount"`
}

func newCategoryView(category *entity.Category) *CategoryView {
	return &CategoryView{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		Description:  category.Description,
		ParentID:     category.ParentID,
		SortOrder:    category.SortOrder,
		ArticleCount: category.ArticleCount,
	}
}

func newCategoryViews(categories []*entity.Category) []*CategoryView {
	views := make([]*CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, newCategoryView(category))
	}

	return views
}

// CategoryTreeView is a category with its resolved children.
type CategoryTreeView struct {
	CategoryView
	Children []*CategoryTreeView `json:"children"`
}

func newCategoryTreeViews(nodes []*entity.CategoryNode) []*CategoryTreeView {
	views := make([]*CategoryTreeView, 0, len(nodes))
	for _, node := range nodes {
		views = append(views, &CategoryTreeView{
			CategoryView: *newCategoryView(&node.Category),
			Children:     newCategoryTreeViews(node.Children),
		})
	}

	return views
}

// ArticleView is the public representation of an article.
type ArticleView struct {
	ID               uuid.UUID     `json:"id"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	Excerpt          string        `json:"excerpt,omitempty"`
	Content          string        `json:"content,omitempty"`
	FeaturedImageURL string        `json:"featuredImageUrl,omitempty"`
	Status           string        `json:"status"`
	PublishDate      *time.Time    `json:"publishDate,omitempty"`
	ScheduleDate     *time.Time    `json:"scheduleDate,omitempty"`
	StickToFrontPage bool          `json:"stickToFrontPage"`
	ReadTimeMinutes  int           `json:"readTimeMinutes"`
	ViewCount        int64         `json:"viewCount"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
	Author           *UserView     `json:"author,omitempty"`
	Category         *CategoryView `json:"category,omitempty"`
}

func newArticleView(article *entity.Article, includeContent bool) *ArticleView {
	view := &ArticleView{
		ID:               article.ID,
		Title:            article.Title,
		Slug:             article.Slug,
		Excerpt:          article.Excerpt,
		FeaturedImageURL: article.FeaturedImageURL,
		Status:           string(article.Status),
		PublishDate:      article.PublishDate,
		ScheduleDate:     article.ScheduleDate,
		StickToFrontPage: article.StickToFrontPage,
		ReadTimeMinutes:  article.ReadTimeMinutes,
		ViewCount:        article.ViewCount,
		CreatedAt:        article.CreatedAt,
		UpdatedAt:        article.UpdatedAt,
	}
	if includeContent {
		view.Content = article.Content
	}
	if article.Author != nil {
		view.Author = newUserView(article.Author)
	}
	if article.Category != nil {
		view.Category = newCategoryView(article.Category)
	}

	return view
}

func newArticleViews(articles []*entity.Article) []*ArticleView {
	views := make([]*ArticleView, 0, len(articles))
	for _, article := range articles {
		views = append(views, newArticleView(article, false))
	}

	return views
}

// CommentView is a comment with its resolved replies.
type CommentView struct {
	ID        uuid.UUID      `json:"id"`
	ArticleID uuid.UUID      `json:"articleId"`
	ParentID  *uuid.UUID     `json:"parentId,omitempty"`
	Content   string         `json:"content"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	User      *UserView      `json:"user,omitempty"`
	Replies   []*CommentView `json:"replies"`
}

func newCommentView(comment *entity.Comment) *CommentView {
	view := &CommentView{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		Status:    string(comment.Status),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Replies:   []*CommentView{},
	}
	if comment.User != nil {
		view.User = newUserView(comment.User)
	}

	return view
}

func newCommentTreeViews(nodes []*entity.CommentNode) []*CommentView {
	views := make([]*CommentView, 0, len(nodes))
	for _, node := range nodes {
		view := newCommentView(&node.Comment)
		view.Replies = newCommentTreeViews(node.Replies)
		views = append(views, view)
	}

	return views
}

// BookmarkView is a saved article with its save time.
type BookmarkView struct {
	ArticleID uuid.UUID    `json:"articleId"`
	CreatedAt time.Time    `json:"createdAt"`
	Article   *ArticleView `json:"article,omitempty"`
}

func newBookmarkViews(bookmarks []*entity.Bookmark) []*BookmarkView {
	views := make([]*BookmarkView, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		view := &BookmarkView{
			ArticleID: bookmark.ArticleID,
			CreatedAt: bookmark.CreatedAt,
		}
		if bookmark.Article != nil {
			view.Article = newArticleView(bookmark.Article, false)
		}
		views = append(views, view)
	}

	return views
}

// PageView wraps a list payload with its pagination envelope.
type PageView struct {
	Items   any   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
}
