package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/services"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UploadAvatar stores a new avatar image for the authenticated user.
// Users can only change their own avatar.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	if id != user.ID {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Cannot change another user's avatar"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file form field"))
		return
	}

	url, err := h.userService.UploadAvatar(c.Request.Context(), h.GetDB(c), user, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvatarResponse{AvatarURL: url})
}
