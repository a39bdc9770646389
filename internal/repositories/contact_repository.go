package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"contacts_backend/internal/models"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrContactExists   = errors.New("contact already exists")
	ErrNotContactOwner = errors.New("contact belongs to another user")
)

// ContactRepository is the persistence surface for contacts.
type ContactRepository interface {
	Create(db *gorm.DB, contact *models.Contact) error
	FindByID(db *gorm.DB, id uint) (*models.Contact, error)
	FindOwned(db *gorm.DB, id, ownerID uint) (*models.Contact, error)
	ListOwned(db *gorm.DB, ownerID uint, limit, offset int) ([]models.Contact, error)
	Update(db *gorm.DB, contact *models.Contact) error
	Delete(db *gorm.DB, id, ownerID uint) error
	Search(db *gorm.DB, name, email string, limit, offset int) ([]models.Contact, error)
	UpcomingBirthdays(db *gorm.DB, now time.Time, days int) ([]models.Contact, error)
}

type ContactRepositoryImpl struct{}

func NewContactRepository() *ContactRepositoryImpl {
	return &ContactRepositoryImpl{}
}

func (r *ContactRepositoryImpl) Create(db *gorm.DB, contact *models.Contact) error {
	if err := db.Create(contact).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrContactExists
		}
		return err
	}
	return nil
}

func (r *ContactRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindOwned returns the contact only when it exists and belongs to the
// owner. Absent and foreign contacts are indistinguishable to the caller.
func (r *ContactRepositoryImpl) FindOwned(db *gorm.DB, id, ownerID uint) (*models.Contact, error) {
	var contact models.Contact
	err := db.Where("id = ? AND user_id = ?", id, ownerID).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepositoryImpl) ListOwned(db *gorm.DB, ownerID uint, limit, offset int) ([]models.Contact, error) {
	var contacts []models.Contact
	err := db.Where("user_id = ?", ownerID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *ContactRepositoryImpl) Update(db *gorm.DB, contact *models.Contact) error {
	if err := db.Save(contact).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrContactExists
		}
		return err
	}
	return nil
}

// Delete distinguishes a missing contact from one owned by somebody
// else so the API can answer 404 vs 403.
func (r *ContactRepositoryImpl) Delete(db *gorm.DB, id, ownerID uint) error {
	contact, err := r.FindByID(db, id)
	if err != nil {
		return err
	}
	if contact.UserID == nil || *contact.UserID != ownerID {
		return ErrNotContactOwner
	}
	return db.Delete(contact).Error
}

// Search matches name as a case-insensitive substring of first or last
// name, and email as a substring of the contact email, across all
// contacts. When both terms are given a row must satisfy both.
func (r *ContactRepositoryImpl) Search(db *gorm.DB, name, email string, limit, offset int) ([]models.Contact, error) {
	var conds []string
	var args []interface{}
	if name != "" {
		pattern := "%" + name + "%"
		conds = append(conds, "(first_name ILIKE ? OR last_name ILIKE ?)")
		args = append(args, pattern, pattern)
	}
	if email != "" {
		conds = append(conds, "email ILIKE ?")
		args = append(args, "%"+email+"%")
	}
	if len(conds) == 0 {
		return nil, nil
	}

	var contacts []models.Contact
	err := db.Where(strings.Join(conds, " AND "), args...).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// UpcomingBirthdays returns contacts whose stored birthday date falls
// within [today, today+days], both ends inclusive. The stored year takes
// part in the comparison: a date decades in the past never matches.
func (r *ContactRepositoryImpl) UpcomingBirthdays(db *gorm.DB, now time.Time, days int) ([]models.Contact, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, days)

	var contacts []models.Contact
	err := db.Where("birthday IS NOT NULL AND birthday >= ? AND birthday <= ?", today, end).
		Order("id").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}
