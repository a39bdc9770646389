package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour, 24*time.Hour, 15*time.Minute)
	require.NoError(t, err)
	return tm
}

func TestTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour, time.Hour, time.Hour, time.Hour)
	assert.Error(t, err)
}

func TestTokenManager_AccessRoundTrip(t *testing.T) {
	tm := testTokenManager(t)

	token, err := tm.IssueAccess("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := tm.SubjectForScope(token, ScopeAccess)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestTokenManager_CrossScopeRejection(t *testing.T) {
	tm := testTokenManager(t)

	refresh, err := tm.IssueRefresh("a@x.com")
	require.NoError(t, err)

	// A refresh token presented where an access token is required must fail.
	_, err = tm.SubjectForScope(refresh, ScopeAccess)
	assert.ErrorIs(t, err, ErrWrongScope)

	access, err := tm.IssueAccess("a@x.com")
	require.NoError(t, err)

	_, err = tm.SubjectForScope(access, ScopeRefresh)
	assert.ErrorIs(t, err, ErrWrongScope)
}

func TestTokenManager_VerificationScope(t *testing.T) {
	tm := testTokenManager(t)

	verification, err := tm.IssueVerification("a@x.com")
	require.NoError(t, err)

	// Verification tokens must not pass as access tokens.
	_, err = tm.SubjectForScope(verification, ScopeAccess)
	assert.ErrorIs(t, err, ErrWrongScope)

	subject, err := tm.SubjectForScope(verification, ScopeVerification)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestTokenManager_Expired(t *testing.T) {
	tm, err := NewTokenManager("test-secret", -time.Minute, -time.Minute, -time.Minute, -time.Minute)
	require.NoError(t, err)

	token, err := tm.IssueAccess("a@x.com")
	require.NoError(t, err)

	_, err = tm.Decode(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = tm.SubjectForScope(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_BadSignature(t *testing.T) {
	tm := testTokenManager(t)
	other, err := NewTokenManager("different-secret", time.Hour, time.Hour, time.Hour, time.Hour)
	require.NoError(t, err)

	token, err := other.IssueAccess("a@x.com")
	require.NoError(t, err)

	_, err = tm.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := testTokenManager(t)

	_, err := tm.Decode("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.SubjectForScope("", ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RefreshCarriesIssuedAt(t *testing.T) {
	tm := testTokenManager(t)

	token, err := tm.IssueRefresh("a@x.com")
	require.NoError(t, err)

	claims, err := tm.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, ScopeRefresh, claims.Scope)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Minute)
}

func TestTokenManager_ConsecutiveRefreshTokensDiffer(t *testing.T) {
	tm := testTokenManager(t)

	// Back-to-back issuance lands within the same second; the jti must
	// still make the tokens distinct or rotation leaves the old token
	// valid.
	first, err := tm.IssueRefresh("a@x.com")
	require.NoError(t, err)
	second, err := tm.IssueRefresh("a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := tm.Decode(second)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}
