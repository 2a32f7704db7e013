package impl

import (
	"context"
	"log/slog"

	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/domain/entity"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/repository"
	"scribe/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// commentService implements the CommentUsecase interface.
type commentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	logger      *slog.Logger
}

// CommentServiceParams holds dependencies for commentService, injected by Fx.
type CommentServiceParams struct {
	fx.In

	CommentRepo repository.CommentRepository
	ArticleRepo repository.ArticleRepository
	Logger      *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(params CommentServiceParams) usecase.CommentUsecase {
	return &commentService{
		commentRepo: params.CommentRepo,
		articleRepo: params.ArticleRepo,
		logger:      params.Logger,
	}
}

func (srv *commentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List retrieves a page of an article's comments threaded into reply trees.
func (srv *commentService) List(ctx context.Context, input *usecase.ListCommentsInput) (*usecase.CommentListOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	topLevel, total, err := srv.commentRepo.ListTopLevel(ctx, input.ArticleID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list top-level comments")
	}

	all, err := srv.commentRepo.ListByArticle(ctx, input.ArticleID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list article comments")
	}

	return &usecase.CommentListOutput{
		Comments: threadComments(topLevel, all),
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

// threadComments attaches replies to the given top-level page, resolving reply
// chains down to the depth limit. Replies below the limit are not shown.
func threadComments(topLevel, all []*entity.Comment) []*entity.CommentNode {
	children := make(map[uuid.UUID][]*entity.Comment)
	for _, comment := range all {
		if comment.ParentID != nil {
			children[*comment.ParentID] = append(children[*comment.ParentID], comment)
		}
	}

	var build func(comment *entity.Comment, depth int) *entity.CommentNode
	build = func(comment *entity.Comment, depth int) *entity.CommentNode {
		node := &entity.CommentNode{Comment: *comment}
		if depth >= entity.MaxCommentDepth {
			return node
		}
		for _, reply := range children[comment.ID] {
			node.Replies = append(node.Replies, build(reply, depth+1))
		}

		return node
	}

	nodes := make([]*entity.CommentNode, 0, len(topLevel))
	for _, comment := range topLevel {
		nodes = append(nodes, build(comment, 1))
	}

	return nodes
}

// Create posts a comment or reply. A reply targeting a comment at the maximum
// depth is reattached to the deepest allowed ancestor so the stored thread
// never exceeds the limit.
func (srv *commentService) Create(ctx context.Context, input *usecase.CreateCommentInput) (*entity.Comment, error) {
	if _, err := srv.articleRepo.FindByID(ctx, input.ArticleID); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return nil, domainerrors.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to find article")
	}

	parentID := input.ParentID
	if parentID != nil {
		adjusted, err := srv.resolveReplyParent(ctx, input.ArticleID, *parentID)
		if err != nil {
			return nil, err
		}
		parentID = adjusted
	}

	comment := &entity.Comment{
		ArticleID: input.ArticleID,
		UserID:    input.UserID,
		ParentID:  parentID,
		Content:   input.Content,
		Status:    entity.CommentStatusVisible,
	}
	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Comment created", slog.Any("commentID", comment.ID), slog.Any("articleID", comment.ArticleID))

	return comment, nil
}

// resolveReplyParent validates a reply target and walks up the chain until the
// reply would land within the depth limit.
func (srv *commentService) resolveReplyParent(ctx context.Context, articleID, parentID uuid.UUID) (*uuid.UUID, error) {
	parent, err := srv.commentRepo.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, domainerrors.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find parent comment")
	}
	if parent.ArticleID != articleID {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("parent comment belongs to another article")
	}

	// Chain from the parent upward, oldest ancestor last.
	chain := []*entity.Comment{parent}
	visited := map[uuid.UUID]struct{}{parent.ID: {}}
	current := parent
	for current.ParentID != nil {
		if _, seen := visited[*current.ParentID]; seen {
			break
		}
		ancestor, err := srv.commentRepo.FindByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				break
			}

			return nil, errors.Wrap(err, "failed to walk comment ancestors")
		}
		visited[ancestor.ID] = struct{}{}
		chain = append(chain, ancestor)
		current = ancestor
	}

	parentDepth := len(chain)
	if parentDepth < entity.MaxCommentDepth {
		id := parent.ID

		return &id, nil
	}

	// Reattach so the new reply sits at the maximum depth.
	id := chain[parentDepth-entity.MaxCommentDepth+1].ID

	return &id, nil
}

// Update edits a comment's content. Only the author may edit.
func (srv *commentService) Update(ctx context.Context, input *usecase.UpdateCommentInput) (*entity.Comment, error) {
	comment, err := srv.commentRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, domainerrors.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find comment")
	}

	if comment.UserID != input.UserID {
		return nil, domainerrors.ErrForbidden
	}

	comment.Content = input.Content
	if err := srv.commentRepo.Update(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "failed to update comment")
	}

	return comment, nil
}

// Flag marks a comment for moderator review, removing it from public listings
// until a moderator settles its status.
func (srv *commentService) Flag(ctx context.Context, id uuid.UUID) error {
	if err := srv.commentRepo.UpdateStatus(ctx, id, entity.CommentStatusFlagged); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return domainerrors.ErrCommentNotFound
		}

		return errors.Wrap(err, "failed to flag comment")
	}

	srv.log(ctx).Info("Comment flagged", slog.Any("commentID", id))

	return nil
}

// Moderate changes a comment's visibility status.
func (srv *commentService) Moderate(ctx context.Context, input *usecase.ModerateCommentInput) error {
	switch input.Status {
	case entity.CommentStatusVisible, entity.CommentStatusHidden, entity.CommentStatusFlagged:
	default:
		return domainerrors.ErrValidationFailed.WrapMessage("unknown comment status")
	}

	if err := srv.commentRepo.UpdateStatus(ctx, input.ID, input.Status); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return domainerrors.ErrCommentNotFound
		}

		return errors.Wrap(err, "failed to moderate comment")
	}

	return nil
}

// Delete removes a comment and its replies. The author or an admin may delete.
func (srv *commentService) Delete(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error {
	comment, err := srv.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return domainerrors.ErrCommentNotFound
		}

		return errors.Wrap(err, "failed to find comment")
	}

	if !isAdmin && comment.UserID != requesterID {
		return domainerrors.ErrForbidden
	}

	if err := srv.commentRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete comment")
	}

	srv.log(ctx).Debug("Comment deleted", slog.Any("commentID", id))

	return nil
}
