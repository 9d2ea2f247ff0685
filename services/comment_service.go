package services

import (
	"context"
	"strings"

	"blog-platform/logging"
	"blog-platform/models"
	"blog-platform/repositories"

	"github.com/go-playground/validator/v10"
)

type CommentService interface {
	GetComments(ctx context.Context, postID uint, caller *models.Identity) (*models.CommentListResponse, error)
	CreateComment(ctx context.Context, postID uint, caller *models.Identity, req models.CreateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uint, caller *models.Identity) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	validate    *validator.Validate
	logger      *logging.Logger
}

func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, validate *validator.Validate, logger *logging.Logger) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		validate:    validate,
		logger:      logger.Named("comments"),
	}
}

func (s *commentService) GetComments(ctx context.Context, postID uint, caller *models.Identity) (*models.CommentListResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !IsVisible(post, caller) {
		return nil, models.NotFound("post", postID)
	}

	comments, err := s.commentRepo.GetApprovedByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.commentRepo.CountApprovedByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &models.CommentListResponse{
		Comments: comments,
		Count:    count,
		PostID:   postID,
	}, nil
}

// CreateComment adds an approved comment to a published post. Drafts reject
// comments from everyone, their author included.
func (s *commentService) CreateComment(ctx context.Context, postID uint, caller *models.Identity, req models.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !post.IsPublished() {
		return nil, models.Forbidden(models.ForbiddenPostNotPublished, "Comments are only allowed on published posts")
	}

	req.Content = strings.TrimSpace(req.Content)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	authorID := caller.ID
	comment := &models.Comment{
		PostID:     postID,
		AuthorID:   &authorID,
		AuthorName: caller.Name,
		Content:    req.Content,
		Status:     models.CommentApproved,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Info("comment created", "comment_id", comment.ID, "post_id", postID)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *commentService) DeleteComment(ctx context.Context, id uint, caller *models.Identity) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !IsOwner(comment.OwnerID(), callerID(caller)) {
		return models.Forbidden(models.ForbiddenNotOwner, "You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithContext(ctx).Info("comment deleted", "comment_id", id)
	return nil
}
