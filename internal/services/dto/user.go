package dto

import "contacts_backend/internal/models"

// UserResponse is the public user representation.
type UserResponse struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	Username   string  `json:"username,omitempty"`
	IsVerified bool    `json:"is_verified"`
	AvatarURL  *string `json:"avatar_url"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		IsVerified: u.IsVerified,
		AvatarURL:  u.AvatarURL,
	}
}

// AvatarResponse is returned after a successful avatar upload.
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
