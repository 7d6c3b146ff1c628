package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_NAME", "")
	t.Setenv("AUTH_COOKIE_NAME", "")
	t.Setenv("AWS_PRESIGN_EXPIRY", "")

	cfg := Load()
	assert.Equal(t, "anime_stream", cfg.Database.DBName)
	assert.Equal(t, "access_token", cfg.Auth.CookieName)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.PresignExpiry)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("AUTH_HTTP_TIMEOUT", "3s")
	t.Setenv("AWS_USE_SSL", "true")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 3*time.Second, cfg.Auth.HTTPTimeout)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Host: "db"},
		Auth:     AuthConfig{JWTSecret: "secret"},
		MinIO:    MinIOConfig{Endpoint: "minio:9000", AccessKeyID: "key", SecretAccessKey: "secret"},
	}
	require.NoError(t, cfg.Validate())

	cfg.Auth.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "AUTH_JWT_SECRET")
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "anime_stream", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=anime_stream sslmode=disable TimeZone=UTC connect_timeout=10", db.DSN())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "envs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "envs", ".env.test"), []byte("ANIME_TEST_VALUE=from-file\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("GO_ENV", "test")
	t.Setenv("ANIME_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("ANIME_TEST_VALUE"))

	logger, _ := test.NewNullLogger()
	LoadEnvFile(logger)
	assert.Equal(t, "from-file", os.Getenv("ANIME_TEST_VALUE"))
	require.NoError(t, os.Unsetenv("ANIME_TEST_VALUE"))
}
