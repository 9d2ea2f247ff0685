package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog-platform/logging"
	"blog-platform/models"
	"blog-platform/repositories"

	"github.com/go-playground/validator/v10"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, userID uint) (*models.PublicUser, error)
	UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.PublicUser, error)
}

type authService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
	validate *validator.Validate
	logger   *logging.Logger
}

func NewAuthService(userRepo repositories.UserRepository, hasher PasswordHasher, tokens TokenService, validate *validator.Validate, logger *logging.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		validate: validate,
		logger:   logger.Named("auth"),
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if len(req.Password) > MaxPasswordBytes {
		return nil, models.InvalidInput("password", fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, &models.ErrorConflict{Resource: "user", Field: "email", Message: "Email already registered"}
	}
	if !isNotFound(err) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, models.Internal("auth.register", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     models.RoleUser,
		Status:   models.UserActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Info("user registered", "user_id", user.ID)
	return s.authResponse(user)
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	invalid := models.Unauthorized(models.ReasonInvalidCredentials, "Invalid email or password")

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.Password) || user.Status == models.UserDisabled {
		s.logger.WithContext(ctx).Warn("failed login", "user_id", user.ID)
		return nil, invalid
	}

	return s.authResponse(user)
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, *req.Email)
		if err == nil && existing.ID != user.ID {
			return nil, &models.ErrorConflict{Resource: "user", Field: "email", Message: "Email already in use"}
		}
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = emptyToNil(*req.Avatar)
	}
	if req.Bio != nil {
		user.Bio = emptyToNil(*req.Bio)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *authService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, models.Internal("auth.issue_token", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func isNotFound(err error) bool {
	var notFound *models.ErrorNotFound
	return errors.As(err, &notFound)
}
