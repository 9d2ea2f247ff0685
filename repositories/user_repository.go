package repositories

import (
	"context"
	"errors"
	"strings"

	"blog-platform/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &models.ErrorConflict{Resource: "user", Field: "email", Message: "Email already registered"}
	}
	return storeError("user.create", "user", 0, err)
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, storeError("user.get", "user", id, err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, storeError("user.get_by_email", "user", 0, err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{ID: user.ID}).
		Select("name", "email", "avatar", "bio", "updated_at").
		Updates(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &models.ErrorConflict{Resource: "user", Field: "email", Message: "Email already in use"}
	}
	return storeError("user.update", "user", user.ID, err)
}
