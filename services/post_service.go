package services

import (
	"context"
	"strings"

	"blog-platform/logging"
	"blog-platform/models"
	"blog-platform/repositories"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type PostService interface {
	CreatePost(ctx context.Context, caller *models.Identity, req models.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, id uint, caller *models.Identity) (*models.Post, error)
	GetOwnPost(ctx context.Context, id uint, caller *models.Identity) (*models.Post, error)
	GetPosts(ctx context.Context, params models.PostListParams) ([]models.Post, int64, models.PostListParams, error)
	GetMyPosts(ctx context.Context, caller *models.Identity) (*models.MyPostsResponse, error)
	UpdatePost(ctx context.Context, id uint, caller *models.Identity, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id uint, caller *models.Identity) error
}

type postService struct {
	postRepo repositories.PostRepository
	validate *validator.Validate
	logger   *logging.Logger
}

func NewPostService(postRepo repositories.PostRepository, validate *validator.Validate, logger *logging.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		validate: validate,
		logger:   logger.Named("posts"),
	}
}

func (s *postService) CreatePost(ctx context.Context, caller *models.Identity, req models.CreatePostRequest) (*models.Post, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	tags, err := normalizeTagsField(req.Tags)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: caller.ID,
		Status:   status,
		Tags:     tags,
		Image:    emptyToNil(req.Image),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Info("post created", "post_id", post.ID, "status", post.Status)
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a post the caller may see. Drafts of other authors are
// reported as missing. Reads by anyone but the author count as a view.
func (s *postService) GetPost(ctx context.Context, id uint, caller *models.Identity) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !IsVisible(post, caller) {
		return nil, models.NotFound("post", id)
	}

	if !IsOwner(post.AuthorID, callerID(caller)) {
		if err := s.postRepo.IncrementViews(ctx, id); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("view count not updated", "post_id", id)
		} else {
			post.Views++
		}
	}

	return post, nil
}

func (s *postService) GetOwnPost(ctx context.Context, id uint, caller *models.Identity) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !IsOwner(post.AuthorID, callerID(caller)) {
		return nil, models.Forbidden(models.ForbiddenNotOwner, "You can only view your own posts")
	}

	return post, nil
}

// GetPosts lists published posts. The params actually applied (after
// defaults and bounds) are returned for paging metadata.
func (s *postService) GetPosts(ctx context.Context, params models.PostListParams) ([]models.Post, int64, models.PostListParams, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = DefaultPageLimit
	}
	if params.Limit > MaxPageLimit {
		params.Limit = MaxPageLimit
	}
	params.Tag = strings.TrimSpace(params.Tag)
	params.Query = strings.TrimSpace(params.Query)

	posts, total, err := s.postRepo.GetList(ctx, params)
	if err != nil {
		return nil, 0, params, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, total, params, nil
}

func (s *postService) GetMyPosts(ctx context.Context, caller *models.Identity) (*models.MyPostsResponse, error) {
	posts, err := s.postRepo.GetByAuthor(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}

	stats := models.PostStats{Total: len(posts)}
	for _, p := range posts {
		if p.IsPublished() {
			stats.Published++
		} else {
			stats.Drafts++
		}
	}

	return &models.MyPostsResponse{
		Posts:     posts,
		Count:     stats.Total,
		Published: stats.Published,
		Drafts:    stats.Drafts,
		Stats:     stats,
	}, nil
}

func (s *postService) UpdatePost(ctx context.Context, id uint, caller *models.Identity, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !IsOwner(post.AuthorID, callerID(caller)) {
		return nil, models.Forbidden(models.ForbiddenNotOwner, "You can only edit your own posts")
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	updated := &models.Post{
		ID:      post.ID,
		Title:   req.Title,
		Content: req.Content,
		Status:  post.Status,
		Tags:    post.Tags,
		Image:   post.Image,
	}
	if req.Status != "" {
		updated.Status = req.Status
	}
	if req.Tags != nil {
		if updated.Tags, err = normalizeTagsField(*req.Tags); err != nil {
			return nil, err
		}
	}
	if req.Image != nil {
		updated.Image = emptyToNil(*req.Image)
	}

	if err := s.postRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Info("post updated", "post_id", id, "status", updated.Status)
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) DeletePost(ctx context.Context, id uint, caller *models.Identity) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !IsOwner(post.AuthorID, callerID(caller)) {
		return models.Forbidden(models.ForbiddenNotOwner, "You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithContext(ctx).Info("post deleted", "post_id", id)
	return nil
}
