package impl

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests. They mimic the
// constraint behavior of the real persistence layer: unique emails and slugs,
// cascading category subtrees, duplicate bookmark detection.

type fakeStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	sessions  map[string]*entity.Session
	categories map[uuid.UUID]*entity.Category
	articles  map[uuid.UUID]*entity.Article
	revisions []*entity.Revision
	comments  map[uuid.UUID]*entity.Comment
	bookmarks map[string]*entity.Bookmark

	commentClock int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[uuid.UUID]*entity.User),
		sessions:   make(map[string]*entity.Session),
		categories: make(map[uuid.UUID]*entity.Category),
		articles:   make(map[uuid.UUID]*entity.Article),
		comments:   make(map[uuid.UUID]*entity.Comment),
		bookmarks:  make(map[string]*entity.Bookmark),
	}
}

func bookmarkKey(userID, articleID uuid.UUID) string {
	return userID.String() + "/" + articleID.String()
}

// --- UserRepository ---

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user, ok := r.store.users[id]; ok {
		clone := *user

		return &clone, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.GoogleID != "" && user.GoogleID == googleID {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByResetTokenHash(_ context.Context, tokenHash string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.ResetTokenHash != "" && user.ResetTokenHash == tokenHash {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.store.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.store.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.store.users, id)

	return nil
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []*entity.User
	for _, user := range r.store.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(user.Name), needle) &&
				!strings.Contains(strings.ToLower(user.Email), needle) {
				continue
			}
		}
		clone := *user
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Email < matched[j].Email })

	total := int64(len(matched))
	matched = paginate(matched, filter.Limit, filter.Offset)

	return matched, total, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return int64(len(r.store.users)), nil
}

// --- SessionRepository ---

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now()
	clone := *session
	r.store.sessions[session.TokenHash] = &clone

	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if session, ok := r.store.sessions[tokenHash]; ok {
		clone := *session

		return &clone, nil
	}

	return nil, repository.ErrSessionNotFound
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, tokenHash)

	return nil
}

func (r *fakeSessionRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for hash, session := range r.store.sessions {
		if session.UserID == userID {
			delete(r.store.sessions, hash)
		}
	}

	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var deleted int64
	now := time.Now()
	for hash, session := range r.store.sessions {
		if session.ExpiresAt.Before(now) {
			delete(r.store.sessions, hash)
			deleted++
		}
	}

	return deleted, nil
}

// --- CategoryRepository ---

type fakeCategoryRepo struct{ store *fakeStore }

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if category, ok := r.store.categories[id]; ok {
		clone := *category

		return &clone, nil
	}

	return nil, repository.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, category := range r.store.categories {
		if category.Slug == slug {
			clone := *category

			return &clone, nil
		}
	}

	return nil, repository.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) ListAll(_ context.Context) ([]*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.Category, 0, len(r.store.categories))
	for _, category := range r.store.categories {
		clone := *category
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}

		return result[i].Name < result[j].Name
	})

	return result, nil
}

func (r *fakeCategoryRepo) ListChildren(_ context.Context, parentID uuid.UUID) ([]*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Category
	for _, category := range r.store.categories {
		if category.ParentID != nil && *category.ParentID == parentID {
			clone := *category
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })

	return result, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.categories {
		if existing.Slug == category.Slug {
			return domainerrors.ErrSlugExists
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	clone := *category
	r.store.categories[category.ID] = &clone

	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	category.UpdatedAt = time.Now()
	clone := *category
	r.store.categories[category.ID] = &clone

	return nil
}

func (r *fakeCategoryRepo) UpdatePosition(_ context.Context, reorder repository.CategoryReorder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	category, ok := r.store.categories[reorder.ID]
	if !ok {
		return repository.ErrCategoryNotFound
	}
	category.SortOrder = reorder.SortOrder
	category.ParentID = reorder.ParentID

	return nil
}

// Delete removes the category and, like the real schema's cascading foreign
// key, its whole subtree.
func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}

	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		delete(r.store.categories, current)
		for childID, child := range r.store.categories {
			if child.ParentID != nil && *child.ParentID == current {
				queue = append(queue, childID)
			}
		}
	}

	return nil
}

func (r *fakeCategoryRepo) Count(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return int64(len(r.store.categories)), nil
}

// --- ArticleRepository ---

type fakeArticleRepo struct{ store *fakeStore }

func (r *fakeArticleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Article, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if article, ok := r.store.articles[id]; ok {
		clone := *article

		return &clone, nil
	}

	return nil, repository.ErrArticleNotFound
}

func (r *fakeArticleRepo) FindBySlug(_ context.Context, slug string) (*entity.Article, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, article := range r.store.articles {
		if article.Slug == slug {
			clone := *article

			return &clone, nil
		}
	}

	return nil, repository.ErrArticleNotFound
}

func (r *fakeArticleRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, article := range r.store.articles {
		if article.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeArticleRepo) List(_ context.Context, filter repository.ArticleFilter) ([]*entity.Article, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []*entity.Article
	for _, article := range r.store.articles {
		if filter.Status != "" && article.Status != filter.Status {
			continue
		}
		if filter.CategoryID != nil && article.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.AuthorID != nil && article.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(article.Title), needle) &&
				!strings.Contains(strings.ToLower(article.Excerpt), needle) {
				continue
			}
		}
		clone := *article
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })

	total := int64(len(matched))
	matched = paginate(matched, filter.Limit, filter.Offset)

	return matched, total, nil
}

func (r *fakeArticleRepo) ListRelated(_ context.Context, categoryID, excludeID uuid.UUID, limit int) ([]*entity.Article, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []*entity.Article
	for _, article := range r.store.articles {
		if article.CategoryID != categoryID || article.ID == excludeID {
			continue
		}
		if article.Status != entity.ArticleStatusPublished {
			continue
		}
		clone := *article
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (r *fakeArticleRepo) Create(_ context.Context, article *entity.Article) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.articles {
		if existing.Slug == article.Slug {
			return domainerrors.ErrSlugExists
		}
	}
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	clone := *article
	r.store.articles[article.ID] = &clone

	return nil
}

func (r *fakeArticleRepo) Update(_ context.Context, article *entity.Article) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.articles[article.ID]; !ok {
		return repository.ErrArticleNotFound
	}
	article.UpdatedAt = time.Now()
	clone := *article
	r.store.articles[article.ID] = &clone

	return nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.articles[id]; !ok {
		return repository.ErrArticleNotFound
	}
	delete(r.store.articles, id)

	return nil
}

func (r *fakeArticleRepo) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if article, ok := r.store.articles[id]; ok {
		article.ViewCount++
	}

	return nil
}

func (r *fakeArticleRepo) CountByCategory(_ context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	counts := make(map[uuid.UUID]int64, len(categoryIDs))
	wanted := make(map[uuid.UUID]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}
	for _, article := range r.store.articles {
		if _, ok := wanted[article.CategoryID]; ok {
			counts[article.CategoryID]++
		}
	}

	return counts, nil
}

func (r *fakeArticleRepo) ReassignCategory(_ context.Context, fromCategoryID, toCategoryID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, article := range r.store.articles {
		if article.CategoryID == fromCategoryID {
			article.CategoryID = toCategoryID
		}
	}

	return nil
}

func (r *fakeArticleRepo) DeleteByCategory(_ context.Context, categoryID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, article := range r.store.articles {
		if article.CategoryID == categoryID {
			delete(r.store.articles, id)
		}
	}

	return nil
}

func (r *fakeArticleRepo) CreateRevision(_ context.Context, revision *entity.Revision) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if revision.ID == uuid.Nil {
		revision.ID = uuid.New()
	}
	revision.CreatedAt = time.Now()
	clone := *revision
	r.store.revisions = append(r.store.revisions, &clone)

	return nil
}

func (r *fakeArticleRepo) Count(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return int64(len(r.store.articles)), nil
}

func (r *fakeArticleRepo) SumViewCounts(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var total int64
	for _, article := range r.store.articles {
		total += article.ViewCount
	}

	return total, nil
}

// --- CommentRepository ---

type fakeCommentRepo struct{ store *fakeStore }

func (r *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if comment, ok := r.store.comments[id]; ok {
		clone := *comment

		return &clone, nil
	}

	return nil, repository.ErrCommentNotFound
}

func (r *fakeCommentRepo) ListTopLevel(_ context.Context, articleID uuid.UUID, limit, offset int) ([]*entity.Comment, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []*entity.Comment
	for _, comment := range r.store.comments {
		if comment.ArticleID == articleID && comment.ParentID == nil && comment.Status == entity.CommentStatusVisible {
			clone := *comment
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })

	total := int64(len(matched))
	matched = paginate(matched, limit, offset)

	return matched, total, nil
}

func (r *fakeCommentRepo) ListByArticle(_ context.Context, articleID uuid.UUID) ([]*entity.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []*entity.Comment
	for _, comment := range r.store.comments {
		if comment.ArticleID == articleID && comment.Status == entity.CommentStatusVisible {
			clone := *comment
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })

	return matched, nil
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	// Strictly increasing timestamps keep list ordering deterministic.
	r.store.commentClock++
	comment.CreatedAt = time.Unix(r.store.commentClock, 0)
	comment.UpdatedAt = comment.CreatedAt
	clone := *comment
	r.store.comments[comment.ID] = &clone

	return nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.comments[comment.ID]
	if !ok {
		return repository.ErrCommentNotFound
	}
	existing.Content = comment.Content
	existing.UpdatedAt = time.Now()

	return nil
}

func (r *fakeCommentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.CommentStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	comment, ok := r.store.comments[id]
	if !ok {
		return repository.ErrCommentNotFound
	}
	comment.Status = status

	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(r.store.comments, id)

	return nil
}

// --- BookmarkRepository ---

type fakeBookmarkRepo struct{ store *fakeStore }

func (r *fakeBookmarkRepo) Create(_ context.Context, bookmark *entity.Bookmark) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := bookmarkKey(bookmark.UserID, bookmark.ArticleID)
	if _, ok := r.store.bookmarks[key]; ok {
		return repository.ErrBookmarkExists
	}
	bookmark.CreatedAt = time.Now()
	clone := *bookmark
	r.store.bookmarks[key] = &clone

	return nil
}

func (r *fakeBookmarkRepo) Delete(_ context.Context, userID, articleID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.bookmarks, bookmarkKey(userID, articleID))

	return nil
}

func (r *fakeBookmarkRepo) Exists(_ context.Context, userID, articleID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.bookmarks[bookmarkKey(userID, articleID)]

	return ok, nil
}

func (r *fakeBookmarkRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Bookmark, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []*entity.Bookmark
	for _, bookmark := range r.store.bookmarks {
		if bookmark.UserID == userID {
			clone := *bookmark
			if article, ok := r.store.articles[bookmark.ArticleID]; ok {
				articleClone := *article
				clone.Article = &articleClone
			}
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	matched = paginate(matched, limit, offset)

	return matched, total, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items
}

// --- TransactionManager ---

// fakeTxManager hands the callback a factory over the shared store. Rollback
// semantics are not simulated; error paths are asserted directly.
type fakeTxManager struct{ store *fakeStore }

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeFactory{store: tm.store})
}

type fakeFactory struct{ store *fakeStore }

func (f *fakeFactory) UserRepo() repository.UserRepository {
	return &fakeUserRepo{store: f.store}
}

func (f *fakeFactory) SessionRepo() repository.SessionRepository {
	return &fakeSessionRepo{store: f.store}
}

func (f *fakeFactory) CategoryRepo() repository.CategoryRepository {
	return &fakeCategoryRepo{store: f.store}
}

func (f *fakeFactory) ArticleRepo() repository.ArticleRepository {
	return &fakeArticleRepo{store: f.store}
}

// --- Domain services ---

type fakePasswordHasher struct{}

func (fakePasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

func (fakePasswordHasher) ValidatePasswordStrength(string) error {
	return nil
}

// fakeTokenService issues deterministic sequential tokens; hashing is a cheap
// reversible tag so assertions can relate stored hashes to issued tokens.
type fakeTokenService struct {
	mu      sync.Mutex
	counter int
}

func (s *fakeTokenService) GenerateAccessToken(userID uuid.UUID, _ string, _ entity.Role) (string, error) {
	return "access-" + userID.String(), nil
}

func (s *fakeTokenService) ValidateAccessToken(string) (*service.AccessClaims, error) {
	return nil, domainerrors.ErrInvalidToken
}

func (s *fakeTokenService) NewRefreshToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++

	return fmt.Sprintf("refresh-%04d", s.counter), nil
}

func (s *fakeTokenService) NewResetToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++

	return fmt.Sprintf("reset-%04d", s.counter), nil
}

func (s *fakeTokenService) HashToken(token string) string {
	return "hash(" + token + ")"
}

func (s *fakeTokenService) RefreshTokenDuration() time.Duration { return 7 * 24 * time.Hour }
func (s *fakeTokenService) ResetTokenDuration() time.Duration   { return time.Hour }
func (s *fakeTokenService) InviteTokenDuration() time.Duration  { return 24 * time.Hour }

// fakeMailer records outgoing mail for assertions.
type fakeMailer struct {
	mu          sync.Mutex
	resetMails  []sentMail
	inviteMails []sentMail
}

type sentMail struct {
	Email string
	Link  string
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, email, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetMails = append(m.resetMails, sentMail{Email: email, Link: resetLink})

	return nil
}

func (m *fakeMailer) SendInvitation(_ context.Context, email, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inviteMails = append(m.inviteMails, sentMail{Email: email, Link: resetLink})

	return nil
}
