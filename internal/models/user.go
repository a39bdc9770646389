package models

type User struct {
	BaseModel
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Username     string  `gorm:"size:50" json:"username"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	IsVerified   bool    `gorm:"default:false" json:"is_verified"`
	AvatarURL    *string `json:"avatar_url,omitempty"`

	// Single live refresh token. Overwritten on every login/refresh,
	// cleared on logout or on a presented-token mismatch.
	RefreshToken *string `gorm:"size:512" json:"-"`

	Contacts []Contact `gorm:"foreignKey:UserID" json:"-"`
}
