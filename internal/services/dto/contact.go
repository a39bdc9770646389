package dto

import (
	"time"

	"contacts_backend/internal/models"
)

// ContactCreateRequest is the payload for creating a contact.
type ContactCreateRequest struct {
	FirstName      string  `json:"first_name" validate:"required,max=100"`
	LastName       string  `json:"last_name" validate:"required,max=100"`
	Email          string  `json:"email" validate:"required,email"`
	PhoneNumber    string  `json:"phone_number" validate:"required,phone"`
	Birthday       string  `json:"birthday" validate:"omitempty,birthdate"`
	AdditionalInfo *string `json:"additional_info"`
}

// ContactUpdateRequest merges the provided fields onto the contact.
// Absent fields are left untouched.
type ContactUpdateRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,max=100"`
	Email          *string `json:"email" validate:"omitempty,email"`
	PhoneNumber    *string `json:"phone_number" validate:"omitempty,phone"`
	Birthday       *string `json:"birthday" validate:"omitempty,birthdate"`
	AdditionalInfo *string `json:"additional_info"`
}

// ContactResponse is the contact representation returned to clients.
type ContactResponse struct {
	ID             uint    `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number"`
	Birthday       *string `json:"birthday"`
	AdditionalInfo *string `json:"additional_info"`
}

// NewContactResponse maps a model to its API shape.
func NewContactResponse(c *models.Contact) ContactResponse {
	resp := ContactResponse{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		PhoneNumber:    c.PhoneNumber,
		AdditionalInfo: c.AdditionalInfo,
	}
	if s := c.BirthdayString(); s != "" {
		resp.Birthday = &s
	}
	return resp
}

// NewContactListResponse maps a slice of models.
func NewContactListResponse(contacts []models.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContactResponse(&contacts[i]))
	}
	return out
}

// ParseBirthday converts the wire date into a time value.
func ParseBirthday(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
