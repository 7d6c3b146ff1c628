package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"anime-stream/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
	Token     string
}

// SessionProvider is the external auth service as seen by this app.
type SessionProvider interface {
	// GetSession returns nil, nil when the token is missing or not valid.
	GetSession(ctx context.Context, token string) (*Session, error)
	SignOut(ctx context.Context, token string) error
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type authClient struct {
	cfg        config.AuthConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewSessionProvider(cfg config.AuthConfig, logger *logrus.Logger) SessionProvider {
	return &authClient{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}

func (c *authClient) GetSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	if c.cfg.JWTSecret == "" {
		return nil, errors.New("auth jwt secret is not configured")
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(c.cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		c.logger.WithError(err).Debug("Rejected session token")
		return nil, nil
	}
	if claims.Subject == "" {
		return nil, nil
	}

	session := &Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Token:  token,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// SignOut revokes the token at the auth service. The caller still clears
// its cookie when this fails.
func (c *authClient) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + c.cfg.LogoutPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if c.cfg.APIKey != "" {
		req.Header.Set("apikey", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("auth service returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
