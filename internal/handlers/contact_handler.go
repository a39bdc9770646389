package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/services"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

// Create adds a contact. The endpoint is open and the record is stored
// without an owner.
func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.ContactCreateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewContactResponse(contact))
}

// List returns the authenticated user's contacts.
func (h *ContactHandler) List(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	skip, limit := ParseSkipLimit(c)
	contacts, err := h.contactService.List(h.GetDB(c), user.ID, limit, skip)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactListResponse(contacts))
}

func (h *ContactHandler) Get(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	contact, err := h.contactService.Get(h.GetDB(c), id, user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

func (h *ContactHandler) Update(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.ContactUpdateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Update(h.GetDB(c), id, user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

func (h *ContactHandler) Delete(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.contactService.Delete(h.GetDB(c), id, user.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Search matches the name term against first/last name and the email
// term against contact email, across all contacts. An empty result
// answers 404 rather than an empty list.
func (h *ContactHandler) Search(c *gin.Context) {
	name := c.Query("name")
	email := c.Query("email")
	if name == "" && email == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Provide a name or email query parameter"))
		return
	}

	skip, limit := ParseSkipLimit(c)
	contacts, err := h.contactService.Search(h.GetDB(c), name, email, limit, skip)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if len(contacts) == 0 {
		apperrors.HandleError(c, apperrors.NewNotFoundError("No contacts found"))
		return
	}

	c.JSON(http.StatusOK, dto.NewContactListResponse(contacts))
}

// Birthdays lists contacts with a birthday in the next seven days.
func (h *ContactHandler) Birthdays(c *gin.Context) {
	days := ParseQueryInt(c, "days", services.BirthdayWindowDays)
	contacts, err := h.contactService.UpcomingBirthdays(h.GetDB(c), days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactListResponse(contacts))
}
