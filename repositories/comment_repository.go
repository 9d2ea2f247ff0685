package repositories

import (
	"context"

	"blog-platform/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	GetApprovedByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	CountApprovedByPost(ctx context.Context, postID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return storeError("comment.create", "comment", 0, r.db.WithContext(ctx).Omit("Author").Create(comment).Error)
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, storeError("comment.get", "comment", id, err)
	}
	fillAuthorName(&comment)
	return &comment, nil
}

// GetApprovedByPost returns the approved comments of a post, newest first.
func (r *commentRepository) GetApprovedByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.approved(ctx, postID).
		Preload("Author").
		Order("created_at desc, id desc").
		Find(&comments).Error
	if err != nil {
		return nil, storeError("comment.list", "comment", 0, err)
	}

	for i := range comments {
		fillAuthorName(&comments[i])
	}
	return comments, nil
}

func (r *commentRepository) CountApprovedByPost(ctx context.Context, postID uint) (int64, error) {
	var total int64
	if err := r.approved(ctx, postID).Count(&total).Error; err != nil {
		return 0, storeError("comment.count", "comment", 0, err)
	}
	return total, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return storeError("comment.delete", "comment", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NotFound("comment", id)
	}
	return nil
}

func (r *commentRepository) approved(ctx context.Context, postID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND status = ?", postID, models.CommentApproved)
}
