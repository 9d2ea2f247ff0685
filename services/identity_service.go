package services

import (
	"context"
	"errors"
	"strings"

	"blog-platform/models"
	"blog-platform/repositories"
)

// IdentityResolver turns an Authorization header into the calling user.
type IdentityResolver interface {
	Resolve(ctx context.Context, authHeader string) (*models.Identity, error)
}

type identityResolver struct {
	tokens   TokenService
	userRepo repositories.UserRepository
}

func NewIdentityResolver(tokens TokenService, userRepo repositories.UserRepository) IdentityResolver {
	return &identityResolver{tokens: tokens, userRepo: userRepo}
}

func (r *identityResolver) Resolve(ctx context.Context, authHeader string) (*models.Identity, error) {
	scheme, token := splitAuthHeader(authHeader)
	if token == "" {
		return nil, models.Unauthorized(models.ReasonNoToken, "Access token required")
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return nil, models.Unauthorized(models.ReasonInvalidToken, "Invalid token")
	}

	userID, err := r.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		var notFound *models.ErrorNotFound
		if errors.As(err, &notFound) {
			return nil, models.Unauthorized(models.ReasonUserNotFound, "User not found")
		}
		return nil, err
	}

	if user.Status == models.UserDisabled {
		return nil, models.Unauthorized(models.ReasonUserNotFound, "User not found")
	}

	return user.Identity(), nil
}

// splitAuthHeader splits "<scheme> <token>"; token is "" when the header
// carries no credential.
func splitAuthHeader(header string) (string, string) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(header), " ")
	return scheme, strings.TrimSpace(token)
}
