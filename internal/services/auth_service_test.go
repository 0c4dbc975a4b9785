package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexhub_backend/internal/config"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/services/dto"
	"lexhub_backend/pkg/apperrors"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *fakeProfileRepo, *fakeTokenRepo) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret-for-auth-service")
	config.AppConfig = nil
	t.Cleanup(func() { config.AppConfig = nil })

	users := newFakeUserRepo()
	profiles := newFakeProfileRepo(users)
	tokens := newFakeTokenRepo()

	return NewAuthService(users, profiles, tokens), users, profiles, tokens
}

func lawyerRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:     "Jane Advocate",
		Email:    "jane@example.com",
		Password: "correct-horse-battery",
		Role:     models.UserRoleLawyer,
	}
}

func TestRegister_LawyerGetsEmptyProfile(t *testing.T) {
	svc, users, profiles, _ := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), lawyerRegistration())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.UserStatusPending, resp.User.Status)

	user, err := users.FindByEmail("jane@example.com")
	require.NoError(t, err)

	profile, err := profiles.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProfileStatusIncomplete, profile.Status)
	assert.Equal(t, 0, profile.CompletionPercentage)
}

func TestRegister_ClientHasNoProfile(t *testing.T) {
	svc, users, profiles, _ := newAuthFixture(t)

	req := lawyerRegistration()
	req.Email = "client@example.com"
	req.Role = models.UserRoleClient

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	user, err := users.FindByEmail("client@example.com")
	require.NoError(t, err)

	_, err = profiles.FindByUserID(user.ID)
	assert.Error(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), lawyerRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), lawyerRegistration())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), lawyerRegistration())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), lawyerRegistration())
	require.NoError(t, err)

	users.users[resp.User.ID].IsActive = false

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDeactivated)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	registered, err := svc.Register(context.Background(), lawyerRegistration())
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The presented token is single-use.
	_, err = svc.Refresh(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestChangePassword_InvalidatesSessions(t *testing.T) {
	svc, _, _, tokens := newAuthFixture(t)

	registered, err := svc.Register(context.Background(), lawyerRegistration())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), registered.User.ID, dto.ChangePasswordRequest{
		CurrentPassword: "correct-horse-battery",
		NewPassword:     "even-better-passphrase",
	})
	require.NoError(t, err)

	assert.Empty(t, tokens.tokens)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "even-better-passphrase",
	})
	assert.NoError(t, err)
}
