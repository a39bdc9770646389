package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts_backend/test/helpers"
)

// Minimal valid PNG header bytes, enough for an upload body.
var fakePNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestUsersMe(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.Begin(t)
	defer ts.Rollback(t, tx)

	email := helpers.UniqueEmail("me")
	access, _, user := helpers.CreateAndLoginUser(t, ts, tx, email, "secret123")

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", access, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &profile))
	assert.Equal(t, user.Email, profile["email"])
	assert.Equal(t, true, profile["is_verified"])

	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}

func TestAvatarUpload(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.Begin(t)
	defer ts.Rollback(t, tx)

	email := helpers.UniqueEmail("avatar")
	access, _, user := helpers.CreateAndLoginUser(t, ts, tx, email, "secret123")

	path := fmt.Sprintf("/api/v1/users/%d/avatar", user.ID)
	res, body := ts.SendFile(t, tx, http.MethodPost, path, access, "file", "me.png", "image/png", fakePNG)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		AvatarURL string `json:"avatar_url"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.NotEmpty(t, resp.AvatarURL)

	// The URL sticks to the profile.
	res, body = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", access, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, resp.AvatarURL)
}

func TestAvatarUpload_OtherUserForbidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.Begin(t)
	defer ts.Rollback(t, tx)

	accessA, _, _ := helpers.CreateAndLoginUser(t, ts, tx, helpers.UniqueEmail("av_a"), "secret123")
	_, _, userB := helpers.CreateAndLoginUser(t, ts, tx, helpers.UniqueEmail("av_b"), "secret123")

	path := fmt.Sprintf("/api/v1/users/%d/avatar", userB.ID)
	res, body := ts.SendFile(t, tx, http.MethodPost, path, accessA, "file", "me.png", "image/png", fakePNG)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}

func TestAvatarUpload_RejectsNonImage(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.Begin(t)
	defer ts.Rollback(t, tx)

	email := helpers.UniqueEmail("av_type")
	access, _, user := helpers.CreateAndLoginUser(t, ts, tx, email, "secret123")

	path := fmt.Sprintf("/api/v1/users/%d/avatar", user.ID)
	res, body := ts.SendFile(t, tx, http.MethodPost, path, access, "file", "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}
