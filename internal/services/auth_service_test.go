package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/config"
	"contacts_backend/internal/email"
	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"
)

// fakeUserRepo is an in-memory UserRepository. The db argument is
// ignored, matching how the service threads it through untouched.
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) VerifyUser(_ *gorm.DB, userID uint) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsVerified = true
	return nil
}

func (r *fakeUserRepo) SetRefreshToken(_ *gorm.DB, userID uint, token *string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *fakeUserRepo) SetAvatarURL(_ *gorm.DB, userID uint, url string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.AvatarURL = &url
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ *gorm.DB, userID uint, hash string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func newTestAuthService(t *testing.T) (AuthService, *fakeUserRepo, *email.MockSender) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.BaseURL = "http://localhost:8000"
	cfg.JWT.Secret = "unit-test-secret"

	tokens, err := auth.NewTokenManager("unit-test-secret", time.Hour, time.Hour, time.Hour, time.Hour)
	require.NoError(t, err)

	repo := newFakeUserRepo()
	mailer := &email.MockSender{}
	return NewAuthService(cfg, repo, tokens, mailer), repo, mailer
}

func signupVerifiedUser(t *testing.T, svc AuthService, repo *fakeUserRepo, email string) *models.User {
	t.Helper()

	user, err := svc.Signup(nil, &dto.SignupRequest{Email: email, Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, repo.VerifyUser(nil, user.ID))
	return user
}

func TestAuthService_SignupSendsVerification(t *testing.T) {
	svc, _, mailer := newTestAuthService(t)

	user, err := svc.Signup(nil, &dto.SignupRequest{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.False(t, user.IsVerified)

	msg, ok := mailer.LastVerificationFor("a@x.com")
	require.True(t, ok)
	assert.Contains(t, msg.Link, "/api/v1/auth/verify-email?token=")
}

func TestAuthService_LoginUnverified(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Signup(nil, &dto.SignupRequest{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(nil, "a@x.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrUserNotVerified)
}

func TestAuthService_LoginStoresRefreshSlot(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := signupVerifiedUser(t, svc, repo, "a@x.com")

	pair, err := svc.Login(nil, "a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)

	stored := repo.users[user.ID].RefreshToken
	require.NotNil(t, stored)
	assert.Equal(t, pair.RefreshToken, *stored)

	// A second login overwrites the slot, the first session dies.
	pair2, err := svc.Login(nil, "a@x.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Refresh(nil, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// And the mismatch cleared the slot, killing the second session too.
	assert.Nil(t, repo.users[user.ID].RefreshToken)
	_, err = svc.Refresh(nil, pair2.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_RefreshRotates(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := signupVerifiedUser(t, svc, repo, "a@x.com")

	pair, err := svc.Login(nil, "a@x.com", "secret123")
	require.NoError(t, err)

	rotated, err := svc.Refresh(nil, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	stored := repo.users[user.ID].RefreshToken
	require.NotNil(t, stored)
	assert.Equal(t, rotated.RefreshToken, *stored)
}

func TestAuthService_LogoutClearsSlot(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := signupVerifiedUser(t, svc, repo, "a@x.com")

	pair, err := svc.Login(nil, "a@x.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(nil, user.ID))
	assert.Nil(t, repo.users[user.ID].RefreshToken)

	_, err = svc.Refresh(nil, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_VerifyEmailTwice(t *testing.T) {
	svc, _, mailer := newTestAuthService(t)

	_, err := svc.Signup(nil, &dto.SignupRequest{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	msg, ok := mailer.LastVerificationFor("a@x.com")
	require.True(t, ok)
	token := msg.Link[len("http://localhost:8000/api/v1/auth/verify-email?token="):]

	require.NoError(t, svc.VerifyEmail(nil, token))
	assert.ErrorIs(t, svc.VerifyEmail(nil, token), apperrors.ErrAlreadyVerified)
}

func TestAuthService_VerifyEmailUnknownAndBadToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	// Garbage in the link is a bad request, not a failed login.
	var appErr *apperrors.AppError
	err := svc.VerifyEmail(nil, "not-a-token")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	// A well-formed token whose subject was never registered.
	tokens, err := auth.NewTokenManager("unit-test-secret", time.Hour, time.Hour, time.Hour, time.Hour)
	require.NoError(t, err)
	token, err := tokens.IssueVerification("ghost@x.com")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyEmail(nil, token), apperrors.ErrUserNotFound)
}

func TestAuthService_ResetPasswordRevokesSession(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)
	signupVerifiedUser(t, svc, repo, "a@x.com")

	pair, err := svc.Login(nil, "a@x.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(nil, "a@x.com"))
	msg, ok := mailer.LastResetFor("a@x.com")
	require.True(t, ok)
	token := msg.Link[len("http://localhost:8000/api/v1/auth/reset-password?token="):]

	require.NoError(t, svc.ResetPassword(nil, token, "new-password"))

	_, err = svc.Login(nil, "a@x.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Refresh(nil, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = svc.Login(nil, "a@x.com", "new-password")
	assert.NoError(t, err)
}

func TestAuthService_RequestResetUnknownEmail(t *testing.T) {
	svc, _, mailer := newTestAuthService(t)

	assert.NoError(t, svc.RequestPasswordReset(nil, "ghost@x.com"))
	_, ok := mailer.LastResetFor("ghost@x.com")
	assert.False(t, ok)
}
