package models

import "time"

type Contact struct {
	BaseModel
	FirstName      string     `gorm:"not null;index" json:"first_name"`
	LastName       string     `gorm:"not null;index" json:"last_name"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber    string     `gorm:"not null" json:"phone_number"`
	Birthday       *time.Time `gorm:"type:date" json:"-"`
	AdditionalInfo *string    `json:"additional_info,omitempty"`

	// Nullable: contacts created through the public create endpoint
	// carry no owner.
	UserID *uint `gorm:"index" json:"user_id,omitempty"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`
}

// BirthdayString renders the birthday in the API wire format.
func (c *Contact) BirthdayString() string {
	if c.Birthday == nil {
		return ""
	}
	return c.Birthday.Format("2006-01-02")
}
