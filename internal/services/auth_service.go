package services

import (
	"fmt"

	"gorm.io/gorm"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/config"
	"contacts_backend/internal/email"
	"contacts_backend/internal/logger"
	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"
)

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*models.User, error)
	VerifyEmail(db *gorm.DB, token string) error
	Login(db *gorm.DB, emailAddr, password string) (*dto.TokenPairResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.TokenPairResponse, error)
	Logout(db *gorm.DB, userID uint) error
	RequestPasswordReset(db *gorm.DB, emailAddr string) error
	ResetPassword(db *gorm.DB, token, newPassword string) error
}

type AuthServiceImpl struct {
	cfg      *config.Config
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	mailer   email.Sender
}

func NewAuthService(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	mailer email.Sender,
) AuthService {
	return &AuthServiceImpl{
		cfg:      cfg,
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
	}
}

// Signup registers a new account and sends the verification email.
func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*models.User, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendVerificationEmail(user)

	return user, nil
}

// VerifyEmail marks the account confirmed. The token must carry the
// verification scope; access or refresh tokens are rejected.
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	subject, err := s.tokens.SubjectForScope(token, auth.ScopeVerification)
	if err != nil {
		return apperrors.ErrInvalidVerificationToken.WithError(err)
	}

	user, err := s.userRepo.FindByEmail(db, subject)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	if err := s.userRepo.VerifyUser(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Login checks credentials and rotates the refresh token slot.
func (s *AuthServiceImpl) Login(db *gorm.DB, emailAddr, password string) (*dto.TokenPairResponse, error) {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	return s.issueTokenPair(db, user)
}

// Refresh validates the presented refresh token against the user's
// single stored slot and rotates it. A token that decodes but does not
// match the slot clears the slot: a replayed token invalidates the
// whole session.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.TokenPairResponse, error) {
	subject, err := s.tokens.SubjectForScope(refreshToken, auth.ScopeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithError(err)
	}

	user, err := s.userRepo.FindByEmail(db, subject)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		if clearErr := s.userRepo.SetRefreshToken(db, user.ID, nil); clearErr != nil {
			logger.Error("failed to clear refresh token slot", "user_id", user.ID, "error", clearErr)
		}
		return nil, apperrors.ErrInvalidToken
	}

	return s.issueTokenPair(db, user)
}

// Logout clears the refresh token slot so the stored refresh token can
// no longer be exchanged.
func (s *AuthServiceImpl) Logout(db *gorm.DB, userID uint) error {
	if err := s.userRepo.SetRefreshToken(db, userID, nil); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// RequestPasswordReset emails a reset link when the account exists.
// Unknown addresses are not reported to the caller.
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := s.tokens.IssueReset(user.Email)
	if err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/auth/reset-password?token=%s", s.cfg.Server.BaseURL, token)
	if err := s.mailer.SendPasswordReset(user.Email, user.Username, resetURL); err != nil {
		logger.Error("failed to send password reset email", "email", user.Email, "error", err)
		return apperrors.ExternalServiceError(err, "Failed to send password reset email")
	}
	return nil
}

// ResetPassword sets a new password from an emailed reset token and
// revokes the active session.
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, token, newPassword string) error {
	subject, err := s.tokens.SubjectForScope(token, auth.ScopeReset)
	if err != nil {
		return apperrors.ErrInvalidToken.WithError(err)
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByEmail(db, subject)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePasswordHash(db, user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.SetRefreshToken(db, user.ID, nil); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokenPair(db *gorm.DB, user *models.User) (*dto.TokenPairResponse, error) {
	accessToken, err := s.tokens.IssueAccess(user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refreshToken, err := s.tokens.IssueRefresh(user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.SetRefreshToken(db, user.ID, &refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// sendVerificationEmail is fire-and-forget: a mail outage must not
// fail signup.
func (s *AuthServiceImpl) sendVerificationEmail(user *models.User) {
	token, err := s.tokens.IssueVerification(user.Email)
	if err != nil {
		logger.Error("failed to issue verification token", "email", user.Email, "error", err)
		return
	}

	verifyURL := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", s.cfg.Server.BaseURL, token)
	if err := s.mailer.SendVerification(user.Email, user.Username, verifyURL); err != nil {
		logger.Error("failed to send verification email", "email", user.Email, "error", err)
	}
}
