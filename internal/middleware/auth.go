package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/pkg/apperrors"
	"contacts_backend/pkg/contextkeys"
)

const currentUserKey = "currentUser"

var errMissingDB = errors.New("database connection missing from request context")

// AuthMiddleware authenticates the request from the Bearer access
// token and loads the account. Any failure, missing header, wrong
// scope, expired token or unknown user, answers 401.
func AuthMiddleware(tokens *auth.TokenManager, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		subject, err := tokens.SubjectForScope(tokenStr, auth.ScopeAccess)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errMissingDB))
			return
		}

		user, err := userRepo.FindByEmail(db, subject)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context) {
	apperrors.HandleError(c, apperrors.ErrInvalidToken)
}
