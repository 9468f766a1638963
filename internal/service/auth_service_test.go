package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/hms-api/internal/models"
	"github.com/noah-isme/hms-api/pkg/config"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type fakeUserRepo struct {
	byID       map[string]*models.User
	byUsername map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       map[string]*models.User{},
		byUsername: map[string]*models.User{},
	}
}

func (f *fakeUserRepo) add(user *models.User) {
	f.byID[user.ID] = user
	f.byUsername[user.Username] = user
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if user, ok := f.byUsername[username]; ok {
		return user, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	user, ok := f.byID[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.PasswordHash = hash
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "hms-test"}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&models.User{
		ID:           "u1",
		Username:     "warden",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         models.RoleAdmin,
	})
	svc := NewAuthService(repo, testJWTConfig(), nil, nil)

	result, err := svc.Login(context.Background(), models.LoginRequest{Username: "warden", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "warden", result.User.Username)
	assert.Equal(t, models.RoleAdmin, result.User.Role)

	claims, err := svc.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&models.User{
		ID:           "u1",
		Username:     "warden",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         models.RoleAdmin,
	})
	svc := NewAuthService(repo, testJWTConfig(), nil, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "warden", Password: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTConfig(), nil, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&models.User{ID: "u1", Username: "warden", Role: models.RoleAdmin})
	svc := NewAuthService(repo, testJWTConfig(), nil, nil)

	_, err := svc.Register(context.Background(), models.RegisterUserRequest{
		Username: "warden",
		Password: "secret123",
		Role:     models.RoleAdmin,
	})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestRegisterStudentRequiresProfile(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTConfig(), nil, nil)

	_, err := svc.Register(context.Background(), models.RegisterUserRequest{
		Username: "stud01",
		Password: "secret123",
		Role:     models.RoleStudent,
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTConfig(), nil, nil)

	user, err := svc.Register(context.Background(), models.RegisterUserRequest{
		Username: "warden2",
		Password: "secret123",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&models.User{
		ID:           "u1",
		Username:     "warden",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         models.RoleAdmin,
	})
	svc := NewAuthService(repo, testJWTConfig(), nil, nil)

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{
		CurrentPassword: "nope",
		NewPassword:     "fresh-pass",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestChangePasswordSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&models.User{
		ID:           "u1",
		Username:     "warden",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         models.RoleAdmin,
	})
	svc := NewAuthService(repo, testJWTConfig(), nil, nil)

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "fresh-pass",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.byID["u1"].PasswordHash), []byte("fresh-pass")))
}

func TestEnsureDefaultAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTConfig(), nil, nil)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), "admin", "admin123"))
	created, ok := repo.byUsername["admin"]
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, created.Role)

	// Second call is a no-op.
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), "admin", "other-pass"))
	assert.Equal(t, created.PasswordHash, repo.byUsername["admin"].PasswordHash)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTConfig(), nil, nil)

	_, err := svc.ParseToken("not.a.token")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
