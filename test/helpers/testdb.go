package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/models"
)

// CreateUser inserts a verified user. The PasswordHash field may hold a
// raw password; it is hashed before the insert.
func CreateUser(t *testing.T, tx *gorm.DB, user *models.User) {
	t.Helper()

	hash, err := auth.HashPassword(user.PasswordHash)
	require.NoError(t, err, "hash test password")
	user.PasswordHash = hash
	user.IsVerified = true

	require.NoError(t, tx.Create(user).Error, "create test user %s", user.Email)
}

// CreateAndLoginUser registers a verified user directly in the
// transaction and logs in through the API, returning the token pair.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, emailAddr, password string) (access string, refresh string, user *models.User) {
	t.Helper()

	user = &models.User{
		Email:        emailAddr,
		Username:     "testuser",
		PasswordHash: password,
	}
	CreateUser(t, tx, user)

	form := url.Values{}
	form.Set("username", emailAddr)
	form.Set("password", password)

	res, bodyStr := ts.SendForm(t, tx, http.MethodPost, "/api/v1/auth/login", form.Encode())
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: %s", bodyStr)

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &pair))
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	return pair.AccessToken, pair.RefreshToken, user
}

// UniqueEmail returns an email address that cannot collide across
// parallel tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// CreateContact inserts a contact owned by the given user.
func CreateContact(t *testing.T, tx *gorm.DB, ownerID *uint, firstName, lastName, emailAddr string, birthday *time.Time) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       emailAddr,
		PhoneNumber: "+77001234567",
		Birthday:    birthday,
		UserID:      ownerID,
	}
	require.NoError(t, tx.Create(contact).Error, "create test contact %s", emailAddr)
	return contact
}
