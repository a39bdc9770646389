package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/services"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// Signup registers an account and triggers the verification email.
// The response does not reveal whether the email was delivered.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Signup(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// VerifyEmail confirms the address from the emailed token link.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing token query parameter"))
		return
	}

	if err := h.authService.VerifyEmail(h.GetDB(c), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Detail: "Email confirmed"})
}

// Login exchanges form credentials for a token pair. The form field is
// named username for OAuth2 compatibility but carries the email.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	pair, err := h.authService.Login(h.GetDB(c), req.Username, req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh rotates the token pair. The refresh token is presented as
// the Bearer credential.
func (h *AuthHandler) Refresh(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		apperrors.HandleError(c, apperrors.ErrInvalidToken)
		return
	}
	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	pair, err := h.authService.Refresh(h.GetDB(c), refreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout revokes the active session of the authenticated user.
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(h.GetDB(c), user.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Detail: "Logged out"})
}

// RequestPasswordReset always answers 200 so the endpoint cannot be
// used to probe for registered addresses.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(h.GetDB(c), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Detail: "If the account exists, a reset email has been sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(h.GetDB(c), req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Detail: "Password updated"})
}
