package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token scopes. Every issued token carries exactly one; a token presented
// for a different scope than it was minted with must be rejected.
const (
	ScopeAccess       = "access_token"
	ScopeRefresh      = "refresh_token"
	ScopeVerification = "email_verification"
	ScopeReset        = "password_reset"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrWrongScope   = errors.New("invalid scope for token")
)

// Claims is the payload of every token this service issues.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenManager mints and validates HS256-signed tokens for the four
// scopes above. The secret and TTLs come from configuration.
type TokenManager struct {
	secret          []byte
	accessTTL       time.Duration
	refreshTTL      time.Duration
	verificationTTL time.Duration
	resetTTL        time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL, verificationTTL, resetTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &TokenManager{
		secret:          []byte(secret),
		accessTTL:       accessTTL,
		refreshTTL:      refreshTTL,
		verificationTTL: verificationTTL,
		resetTTL:        resetTTL,
	}, nil
}

// IssueAccess mints a short-lived access token for the subject (user email).
func (tm *TokenManager) IssueAccess(subject string) (string, error) {
	return tm.issue(subject, ScopeAccess, tm.accessTTL)
}

// IssueRefresh mints a refresh token.
func (tm *TokenManager) IssueRefresh(subject string) (string, error) {
	return tm.issue(subject, ScopeRefresh, tm.refreshTTL)
}

// IssueVerification mints an email-verification token.
func (tm *TokenManager) IssueVerification(subject string) (string, error) {
	return tm.issue(subject, ScopeVerification, tm.verificationTTL)
}

// IssueReset mints a password-reset token.
func (tm *TokenManager) IssueReset(subject string) (string, error) {
	return tm.issue(subject, ScopeReset, tm.resetTTL)
}

func (tm *TokenManager) issue(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subject,
			// Timestamps are second-precision, so the jti is what keeps
			// two tokens minted in the same second distinct. Refresh
			// rotation depends on that.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", scope, err)
	}
	return signed, nil
}

// Decode validates the signature and expiry and returns the claims.
func (tm *TokenManager) Decode(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SubjectForScope decodes the token and returns its subject, rejecting
// tokens minted for any other scope with ErrWrongScope.
func (tm *TokenManager) SubjectForScope(raw, scope string) (string, error) {
	claims, err := tm.Decode(raw)
	if err != nil {
		return "", err
	}
	if claims.Scope != scope {
		return "", ErrWrongScope
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
