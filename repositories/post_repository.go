package repositories

import (
	"context"

	"blog-platform/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetList(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error)
	GetByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return storeError("post.create", "post", 0, r.db.WithContext(ctx).Omit("Author", "Comments").Create(post).Error)
}

// GetByID returns the post with its author and approved comments.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.CommentApproved).Order("created_at desc, id desc")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		return nil, storeError("post.get", "post", id, err)
	}

	for i := range post.Comments {
		fillAuthorName(&post.Comments[i])
	}
	return &post, nil
}

// GetList returns one page of published posts and the number of published
// posts matching the filters.
func (r *postRepository) GetList(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Post{}).Where("status = ?", models.StatusPublished)

		if params.AuthorID > 0 {
			q = q.Where("author_id = ?", params.AuthorID)
		}

		// tags are stored as "a, b, c"; match whole entries only
		if params.Tag != "" {
			q = q.Where("', ' || LOWER(tags) || ',' LIKE ? ESCAPE '\\'", "%, "+escapeLike(lower(params.Tag))+",%")
		}

		if params.Query != "" {
			q = q.Where("LOWER(title) LIKE ? ESCAPE '\\'", "%"+escapeLike(lower(params.Query))+"%")
		}

		return q
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, storeError("post.count", "post", 0, err)
	}

	offset := (params.Page - 1) * params.Limit
	err := query().
		Preload("Author").
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(params.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, storeError("post.list", "post", 0, err)
	}

	return posts, total, nil
}

// GetByAuthor returns every post of the author, drafts included.
func (r *postRepository) GetByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at desc, id desc").
		Find(&posts).Error
	if err != nil {
		return nil, storeError("post.list_by_author", "post", 0, err)
	}
	return posts, nil
}

// Update writes the mutable columns only; author and associations are left untouched.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Select("title", "content", "status", "tags", "image", "updated_at").
		Updates(post)
	if result.Error != nil {
		return storeError("post.update", "post", post.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NotFound("post", post.ID)
	}
	return nil
}

// Delete removes the post together with its comments.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Comments").Delete(&models.Post{ID: id})
	if result.Error != nil {
		return storeError("post.delete", "post", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NotFound("post", id)
	}
	return nil
}

func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	return storeError("post.increment_views", "post", id, err)
}

func fillAuthorName(c *models.Comment) {
	if c.Author != nil && c.Author.Name != "" {
		c.AuthorName = c.Author.Name
	}
}
