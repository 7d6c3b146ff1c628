package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anime-stream/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, secret, subject string, expires time.Time) string {
	t.Helper()
	claims := sessionClaims{
		Email: subject + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestGetSession(t *testing.T) {
	logger, _ := newTestLogger()
	provider := NewSessionProvider(config.AuthConfig{JWTSecret: testSecret}, logger)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, testSecret, "user-42", time.Now().Add(time.Hour))
		session, err := provider.GetSession(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "user-42", session.UserID)
		assert.Equal(t, "user-42@example.com", session.Email)
		assert.Equal(t, token, session.Token)
	})

	t.Run("no token", func(t *testing.T) {
		session, err := provider.GetSession(ctx, "")
		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, testSecret, "user-42", time.Now().Add(-time.Minute))
		session, err := provider.GetSession(ctx, token)
		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "another-secret-another-secret-another", "user-42", time.Now().Add(time.Hour))
		session, err := provider.GetSession(ctx, token)
		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("garbage", func(t *testing.T) {
		session, err := provider.GetSession(ctx, "not.a.jwt")
		assert.NoError(t, err)
		assert.Nil(t, session)
	})
}

func TestGetSessionWithoutSecret(t *testing.T) {
	logger, _ := newTestLogger()
	provider := NewSessionProvider(config.AuthConfig{}, logger)

	_, err := provider.GetSession(context.Background(), "anything")
	assert.Error(t, err)
}

func TestSignOut(t *testing.T) {
	var gotAuth, gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	logger, _ := newTestLogger()
	provider := NewSessionProvider(config.AuthConfig{
		BaseURL:     srv.URL + "/",
		LogoutPath:  "/auth/v1/logout",
		APIKey:      "anon-key",
		HTTPTimeout: time.Second,
	}, logger)

	require.NoError(t, provider.SignOut(context.Background(), "tok"))
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "anon-key", gotKey)
	assert.Equal(t, "/auth/v1/logout", gotPath)
}

func TestSignOutRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session not found", http.StatusUnauthorized)
	}))
	defer srv.Close()

	logger, _ := newTestLogger()
	provider := NewSessionProvider(config.AuthConfig{BaseURL: srv.URL, LogoutPath: "/logout", HTTPTimeout: time.Second}, logger)

	err := provider.SignOut(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
