package repositories

import (
	"errors"

	"gorm.io/gorm"

	"contacts_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository is the persistence surface for accounts. Methods take
// the *gorm.DB for the current request so callers can run them inside
// a transaction.
type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	VerifyUser(db *gorm.DB, userID uint) error
	SetRefreshToken(db *gorm.DB, userID uint, token *string) error
	SetAvatarURL(db *gorm.DB, userID uint, url string) error
	UpdatePasswordHash(db *gorm.DB, userID uint, hash string) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() *UserRepositoryImpl {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) VerifyUser(db *gorm.DB, userID uint) error {
	return r.updateColumn(db, userID, "is_verified", true)
}

// SetRefreshToken overwrites the user's single refresh token slot.
// Passing nil clears it.
func (r *UserRepositoryImpl) SetRefreshToken(db *gorm.DB, userID uint, token *string) error {
	return r.updateColumn(db, userID, "refresh_token", token)
}

func (r *UserRepositoryImpl) SetAvatarURL(db *gorm.DB, userID uint, url string) error {
	return r.updateColumn(db, userID, "avatar_url", url)
}

func (r *UserRepositoryImpl) UpdatePasswordHash(db *gorm.DB, userID uint, hash string) error {
	return r.updateColumn(db, userID, "password_hash", hash)
}

func (r *UserRepositoryImpl) updateColumn(db *gorm.DB, userID uint, column string, value interface{}) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
