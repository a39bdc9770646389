package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"contacts_backend/internal/config"
	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/storage"
	"contacts_backend/pkg/apperrors"
)

type UserService interface {
	GetByID(db *gorm.DB, id uint) (*models.User, error)
	UploadAvatar(ctx context.Context, db *gorm.DB, user *models.User, file *multipart.FileHeader) (string, error)
}

type UserServiceImpl struct {
	cfg      *config.Config
	userRepo repositories.UserRepository
	store    storage.Storage
}

func NewUserService(cfg *config.Config, userRepo repositories.UserRepository, store storage.Storage) *UserServiceImpl {
	return &UserServiceImpl{
		cfg:      cfg,
		userRepo: userRepo,
		store:    store,
	}
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// UploadAvatar stores the image and records its public URL on the user.
// Re-uploading replaces the URL; the old object is left for storage GC.
func (s *UserServiceImpl) UploadAvatar(ctx context.Context, db *gorm.DB, user *models.User, file *multipart.FileHeader) (string, error) {
	if file.Size > s.cfg.Upload.MaxSize {
		return "", apperrors.NewBadRequestError(
			fmt.Sprintf("File too large, maximum size is %d bytes", s.cfg.Upload.MaxSize))
	}

	contentType := file.Header.Get("Content-Type")
	if !s.allowedType(contentType) {
		return "", apperrors.NewBadRequestError("Unsupported file type, expected an image")
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("avatars/%d/%s%s", user.ID, uuid.NewString(), ext)

	if err := s.store.Save(ctx, key, src, contentType); err != nil {
		return "", apperrors.ExternalServiceError(err, "Failed to store avatar")
	}

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	if err := s.userRepo.SetAvatarURL(db, user.ID, url); err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

func (s *UserServiceImpl) allowedType(contentType string) bool {
	for _, t := range s.cfg.Upload.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}
