package dto

// SignupRequest is the registration payload.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"omitempty,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest mirrors the form-encoded login body. The username field
// carries the account email.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// TokenPairResponse is returned by login and refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RequestPasswordResetRequest asks for a reset email.
type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes a password reset with the emailed token.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// MessageResponse is a plain detail message.
type MessageResponse struct {
	Detail string `json:"detail"`
}
