package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"blog-platform/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (AuthService, *mockUserRepo, TokenService) {
	users := newMockUserRepo()
	tokens := NewTokenService("test-secret", time.Hour)
	service := NewAuthService(users, NewPasswordHasher(bcrypt.MinCost), tokens, newTestValidator(), testLogger())
	return service, users, tokens
}

func strPtr(s string) *string { return &s }

func TestAuthService_RegisterAndLogin(t *testing.T) {
	service, users, tokens := newTestAuthService()
	ctx := context.Background()

	res, err := service.Register(ctx, models.RegisterRequest{Name: "Ann", Email: " Ann@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", res.User.Email)
	assert.NotEmpty(t, res.Token)

	userID, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)

	stored, err := users.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.Equal(t, models.RoleUser, stored.Role)

	login, err := service.Login(ctx, models.LoginRequest{Email: "ANN@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestAuthService_RegisterDuplicateIsConflict(t *testing.T) {
	service, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := service.Register(ctx, models.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = service.Register(ctx, models.RegisterRequest{Name: "Ann 2", Email: "ANN@example.com", Password: "secret123"})
	var conflict *models.ErrorConflict
	assert.True(t, errors.As(err, &conflict))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	service, _, _ := newTestAuthService()

	_, err := service.Register(context.Background(), models.RegisterRequest{Name: "A", Email: "not-an-email", Password: "123"})
	var verr validator.ValidationErrors
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr, 3)
}

func TestAuthService_RegisterMultibytePasswordOverBcryptLimit(t *testing.T) {
	service, users, _ := newTestAuthService()

	// 25 runes pass the length rule but take 75 bytes
	password := strings.Repeat("密", 25)
	_, err := service.Register(context.Background(), models.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: password})

	var invalid *models.ErrorValidation
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, "password", invalid.Field)
	var internal *models.ErrorInternalServer
	assert.False(t, errors.As(err, &internal))
	assert.Empty(t, users.users)

	_, err = service.Register(context.Background(), models.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: strings.Repeat("密", 24)})
	assert.NoError(t, err)
}

func TestAuthService_LoginFailures(t *testing.T) {
	service, users, _ := newTestAuthService()
	ctx := context.Background()

	_, err := service.Register(ctx, models.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = service.Login(ctx, models.LoginRequest{Email: "ann@example.com", Password: "wrong"})
	assert.Equal(t, models.ReasonInvalidCredentials, unauthorizedReason(t, err))

	_, err = service.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.Equal(t, models.ReasonInvalidCredentials, unauthorizedReason(t, err))

	users.err = errStoreDown
	_, err = service.Login(ctx, models.LoginRequest{Email: "ann@example.com", Password: "secret123"})
	var internal *models.ErrorInternalServer
	assert.True(t, errors.As(err, &internal))
}

func TestAuthService_UpdateProfile(t *testing.T) {
	service, _, _ := newTestAuthService()
	ctx := context.Background()

	ann, err := service.Register(ctx, models.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = service.Register(ctx, models.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)

	profile, err := service.UpdateProfile(ctx, ann.User.ID, models.UpdateProfileRequest{
		Name: strPtr("Annie"),
		Bio:  strPtr("Writes about Go"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Annie", profile.Name)
	assert.Equal(t, "ann@example.com", profile.Email)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, "Writes about Go", *profile.Bio)

	_, err = service.UpdateProfile(ctx, ann.User.ID, models.UpdateProfileRequest{Email: strPtr("BOB@example.com")})
	var conflict *models.ErrorConflict
	assert.True(t, errors.As(err, &conflict))

	_, err = service.UpdateProfile(ctx, ann.User.ID, models.UpdateProfileRequest{Name: strPtr("A")})
	var verr validator.ValidationErrors
	assert.True(t, errors.As(err, &verr))

	profile, err = service.GetProfile(ctx, ann.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Annie", profile.Name)
}
