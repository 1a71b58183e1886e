package service

import (
	"strings"
	"testing"

	"ai-docauthor-be/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newTestOAuthService() *oauthService {
	return NewOAuthService(config.AuthConfig{
		JWTSecret:          "test-secret",
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost/api/auth/google/callback",
		AllowedEmails:      []string{"alice@example.com", "bob@example.com"},
	}, nopLogger{}).(*oauthService)
}

func TestGetLoginURL(t *testing.T) {
	svc := newTestOAuthService()

	url, err := svc.GetLoginURL("google")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://accounts.google.com/o/oauth2/auth"))
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "state=")

	_, err = svc.GetLoginURL("github")
	assert.Error(t, err)
}

func TestIsAllowed(t *testing.T) {
	svc := newTestOAuthService()

	assert.True(t, svc.isAllowed("alice@example.com"))
	assert.False(t, svc.isAllowed("mallory@example.com"))
}

func TestIssueTokenRoundTrip(t *testing.T) {
	svc := newTestOAuthService()

	signed, err := svc.issueToken("alice@example.com")
	assert.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.NotNil(t, claims["exp"])
}
