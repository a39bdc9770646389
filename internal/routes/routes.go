package routes

import (
	"github.com/gin-gonic/gin"

	"contacts_backend/internal/handlers"
)

// Handlers groups everything route registration needs.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Contact *handlers.ContactHandler
	User    *handlers.UserHandler
	Health  *handlers.HealthHandler

	// AuthRequired is the access-token middleware applied to
	// protected groups.
	AuthRequired gin.HandlerFunc
}

// RegisterRoutes wires the HTTP surface onto the engine.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", h.Health.Health)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.GET("/verify-email", h.Auth.VerifyEmail)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/refresh", h.Auth.Refresh)
		auth.POST("/request-password-reset", h.Auth.RequestPasswordReset)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		auth.POST("/logout", h.AuthRequired, h.Auth.Logout)
	}

	contacts := v1.Group("/contacts")
	{
		// Open endpoints.
		contacts.POST("/", h.Contact.Create)
		contacts.GET("/search", h.Contact.Search)
		contacts.GET("/birthdays", h.Contact.Birthdays)

		// Owner-scoped endpoints.
		contacts.GET("/", h.AuthRequired, h.Contact.List)
		contacts.GET("/:id", h.AuthRequired, h.Contact.Get)
		contacts.PUT("/:id", h.AuthRequired, h.Contact.Update)
		contacts.DELETE("/:id", h.AuthRequired, h.Contact.Delete)
	}

	users := v1.Group("/users")
	users.Use(h.AuthRequired)
	{
		users.GET("/me", h.User.Me)
		users.POST("/:id/avatar", h.User.UploadAvatar)
	}
}
