package services

import (
	"time"

	"gorm.io/gorm"

	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"
)

// BirthdayWindowDays is the lookahead for the upcoming birthdays view.
const BirthdayWindowDays = 7

type ContactService interface {
	Create(db *gorm.DB, req *dto.ContactCreateRequest) (*models.Contact, error)
	List(db *gorm.DB, ownerID uint, limit, offset int) ([]models.Contact, error)
	Get(db *gorm.DB, id, ownerID uint) (*models.Contact, error)
	Update(db *gorm.DB, id, ownerID uint, req *dto.ContactUpdateRequest) (*models.Contact, error)
	Delete(db *gorm.DB, id, ownerID uint) error
	Search(db *gorm.DB, name, email string, limit, offset int) ([]models.Contact, error)
	UpcomingBirthdays(db *gorm.DB, days int) ([]models.Contact, error)
}

type ContactServiceImpl struct {
	contactRepo repositories.ContactRepository
	now         func() time.Time
}

func NewContactService(contactRepo repositories.ContactRepository) *ContactServiceImpl {
	return &ContactServiceImpl{
		contactRepo: contactRepo,
		now:         time.Now,
	}
}

func (s *ContactServiceImpl) Create(db *gorm.DB, req *dto.ContactCreateRequest) (*models.Contact, error) {
	birthday, err := dto.ParseBirthday(req.Birthday)
	if err != nil {
		return nil, apperrors.ErrInvalidBirthday
	}

	contact := &models.Contact{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Birthday:       birthday,
		AdditionalInfo: req.AdditionalInfo,
	}

	if err := s.contactRepo.Create(db, contact); err != nil {
		if apperrors.Is(err, repositories.ErrContactExists) {
			return nil, apperrors.ErrContactAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}
	return contact, nil
}

func (s *ContactServiceImpl) List(db *gorm.DB, ownerID uint, limit, offset int) ([]models.Contact, error) {
	contacts, err := s.contactRepo.ListOwned(db, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return contacts, nil
}

func (s *ContactServiceImpl) Get(db *gorm.DB, id, ownerID uint) (*models.Contact, error) {
	contact, err := s.contactRepo.FindOwned(db, id, ownerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContactNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return contact, nil
}

// Update merges the provided fields onto an owned contact. Fields
// absent from the request keep their stored value.
func (s *ContactServiceImpl) Update(db *gorm.DB, id, ownerID uint, req *dto.ContactUpdateRequest) (*models.Contact, error) {
	contact, err := s.Get(db, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		contact.PhoneNumber = *req.PhoneNumber
	}
	if req.Birthday != nil {
		birthday, err := dto.ParseBirthday(*req.Birthday)
		if err != nil {
			return nil, apperrors.ErrInvalidBirthday
		}
		contact.Birthday = birthday
	}
	if req.AdditionalInfo != nil {
		contact.AdditionalInfo = req.AdditionalInfo
	}

	if err := s.contactRepo.Update(db, contact); err != nil {
		if apperrors.Is(err, repositories.ErrContactExists) {
			return nil, apperrors.ErrContactAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}
	return contact, nil
}

func (s *ContactServiceImpl) Delete(db *gorm.DB, id, ownerID uint) error {
	if err := s.contactRepo.Delete(db, id, ownerID); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrContactNotFound):
			return apperrors.ErrContactNotFound
		case apperrors.Is(err, repositories.ErrNotContactOwner):
			return apperrors.ErrNotContactOwner
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ContactServiceImpl) Search(db *gorm.DB, name, email string, limit, offset int) ([]models.Contact, error) {
	contacts, err := s.contactRepo.Search(db, name, email, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return contacts, nil
}

func (s *ContactServiceImpl) UpcomingBirthdays(db *gorm.DB, days int) ([]models.Contact, error) {
	if days <= 0 {
		days = BirthdayWindowDays
	}
	contacts, err := s.contactRepo.UpcomingBirthdays(db, s.now(), days)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return contacts, nil
}
