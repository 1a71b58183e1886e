package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/config"
	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.AuthTokenResponse, error)
}

type oauthService struct {
	googleConf    *oauth2.Config
	jwtSecret     string
	allowedEmails []string
	logger        logger.ILogger
}

func NewOAuthService(cfg config.AuthConfig, log logger.ILogger) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		googleConf:    conf,
		jwtSecret:     cfg.JWTSecret,
		allowedEmails: cfg.AllowedEmails,
		logger:        log,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.AuthTokenResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.NewInvalidCredentials(fmt.Sprintf("code exchange failed: %v", err))
	}

	googleUser, err := fetchGoogleUser(token.AccessToken)
	if err != nil {
		return nil, err
	}

	if googleUser.Email == "" || !googleUser.VerifiedEmail {
		return nil, apperror.NewInvalidCredentials("Google account does not expose a verified email")
	}

	email := strings.ToLower(googleUser.Email)
	if !s.isAllowed(email) {
		s.logger.Warn("oauth", "Sign-in attempt from non-allowed email", map[string]interface{}{"email": email})
		return nil, apperror.NewUnauthorizedUser(email)
	}

	signed, err := s.issueToken(email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("oauth", "User signed in", map[string]interface{}{"email": email})

	return &dto.AuthTokenResponse{
		Token: signed,
		Email: email,
	}, nil
}

func (s *oauthService) isAllowed(email string) bool {
	for _, allowed := range s.allowedEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

func (s *oauthService) issueToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}

func fetchGoogleUser(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %v", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %v", err)
	}

	var user googleUserInfo
	if err := json.Unmarshal(content, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
