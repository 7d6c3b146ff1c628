package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"anime-stream/internal/handlers"
	"anime-stream/internal/middleware"
	"anime-stream/internal/models"
	"anime-stream/internal/repository/repotest"
	"anime-stream/internal/routes"
	"anime-stream/internal/services"
	"anime-stream/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const (
	cookieName = "access_token"
	adminToken = "admin-token"
	userToken  = "user-token"

	narutoID = "0b0f2f6e-3b1c-4d8e-9d3a-5f6c7e8a9b01"
	bleachID = "0b0f2f6e-3b1c-4d8e-9d3a-5f6c7e8a9b02"
	adID     = "9a1e4c2d-7f3b-4a5c-8e6d-1b2c3d4e5f60"
)

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*services.Session
	signOuts []string
}

func (f *fakeSessions) GetSession(ctx context.Context, token string) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[token], nil
}

func (f *fakeSessions) SignOut(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts = append(f.signOuts, token)
	return nil
}

func (f *fakeSessions) SignedOut() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.signOuts...)
}

type fakePresigner struct{}

func (fakePresigner) PresignPosterUpload(ctx context.Context, filename string) (*services.PresignedUpload, error) {
	return &services.PresignedUpload{
		UploadURL:   "https://minio.example.com/posters/" + filename + "?X-Amz-Signature=abc",
		PublicURL:   "https://cdn.example.com/posters/" + filename,
		ContentType: "image/png",
		ExpiresAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

type testEnv struct {
	app      *fiber.App
	store    *repotest.Store
	sessions *fakeSessions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger, _ := test.NewNullLogger()

	store := repotest.NewStore()
	store.SeedRole("admin-1", models.RoleAdmin)

	sessions := &fakeSessions{sessions: map[string]*services.Session{
		adminToken: {UserID: "admin-1", Email: "admin@example.com", Token: adminToken},
		userToken:  {UserID: "user-1", Email: "user@example.com", Token: userToken},
	}}

	catalog := services.NewCatalogService(store.Anime(), store.Advertisements(), logger)
	anime := services.NewAnimeService(store.Anime(), logger)
	ads := services.NewAdvertisementService(store.Advertisements(), logger)
	adminGate := services.NewAdminGate(sessions, store.Roles(), logger)
	gate := middleware.NewGate(adminGate, cookieName, "/auth")

	app := fiber.New(fiber.Config{Views: web.NewEngine()})
	routes.Setup(app, gate,
		handlers.NewCatalogHandler(catalog, logger),
		handlers.NewAdminHandler(anime, ads, logger),
		handlers.NewUploadHandler(fakePresigner{}, logger),
		handlers.NewPagesHandler(catalog, anime, ads, adminGate, gate, logger),
	)

	return &testEnv{app: app, store: store, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, req *http.Request, token string) (*http.Response, string) {
	t.Helper()
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func (e *testEnv) get(t *testing.T, target, token string) (*http.Response, string) {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil), token)
}

func (e *testEnv) postForm(t *testing.T, target string, form url.Values, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return e.do(t, req, token)
}

func (e *testEnv) sendJSON(t *testing.T, method, target, body, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return e.do(t, req, "")
}

func seedCatalog(store *repotest.Store) {
	store.SeedAnime(
		models.Anime{ID: bleachID, Title: "Bleach", Rating: 8, Genre: "Action", ImageURL: "https://img.example.com/bleach.jpg", VideoURL: "https://www.youtube.com/embed/bleach"},
		models.Anime{ID: narutoID, Title: "Naruto", Rating: 8.4, Genre: "Action", ImageURL: "https://img.example.com/naruto.jpg", VideoURL: "https://www.youtube.com/embed/naruto"},
	)
}

func animeFormValues(title string) url.Values {
	return url.Values{
		"title":        {title},
		"description":  {"A long description"},
		"image_url":    {"https://img.example.com/poster.jpg"},
		"video_url":    {"https://www.youtube.com/embed/abc123"},
		"rating":       {"7.5"},
		"genre":        {"Action"},
		"release_year": {"2020"},
		"episodes":     {"12"},
	}
}
