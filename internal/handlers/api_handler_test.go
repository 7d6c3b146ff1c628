package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"anime-stream/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Status  string            `json:"status"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decode(t *testing.T, body string) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestListAnimeAPI(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env.store)

	resp, body := env.get(t, "/api/v1/anime", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all []models.Anime
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Naruto", all[0].Title)

	_, body = env.get(t, "/api/v1/anime?search=BLE", "")
	var filtered []models.Anime
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "Bleach", filtered[0].Title)
}

func TestGetAnimeAPI(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env.store)

	resp, _ := env.get(t, "/api/v1/anime/"+narutoID, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := env.get(t, "/api/v1/anime/not-a-uuid", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Resource not found", decode(t, body).Message)
}

func TestActiveAdvertisementAPI(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/advertisements/active", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode(t, body).Data)

	env.store.SeedAdvertisements(models.Advertisement{ID: adID, Title: "Promo", VideoURL: "https://www.youtube.com/embed/ad", LinkURL: "https://shop.example.com", IsActive: true})
	_, body = env.get(t, "/api/v1/advertisements/active", "")
	var ad models.Advertisement
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &ad))
	assert.Equal(t, adID, ad.ID)
}

func TestAdminAPI_Gate(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.sendJSON(t, http.MethodGet, "/api/v1/admin/anime", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.sendJSON(t, http.MethodGet, "/api/v1/admin/anime", "", userToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body := env.sendJSON(t, http.MethodGet, "/api/v1/admin/session", "", adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"email":"admin@example.com"`)
}

func TestAdminAPI_AnimeCRUD(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env.store)

	payload := `{"title":"Frieren","description":"After the journey","image_url":"https://img.example.com/frieren.jpg",
		"video_url":"https://www.youtube.com/embed/fr","rating":9.3,"genre":"Fantasy","release_year":2023,"episodes":28}`
	resp, body := env.sendJSON(t, http.MethodPost, "/api/v1/admin/anime", payload, adminToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var list []models.Anime
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &list))
	require.Len(t, list, 3)
	assert.Equal(t, "Frieren", list[0].Title)

	t.Run("missing rating is a field error", func(t *testing.T) {
		resp, body := env.sendJSON(t, http.MethodPost, "/api/v1/admin/anime",
			`{"title":"X","description":"d","image_url":"https://a.example.com/x.jpg","video_url":"https://a.example.com/v","genre":"g","release_year":2020,"episodes":1}`,
			adminToken)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "rating is required", decode(t, body).Errors["rating"])
	})

	t.Run("delete needs confirmation", func(t *testing.T) {
		resp, _ := env.sendJSON(t, http.MethodDelete, "/api/v1/admin/anime/"+narutoID, "", adminToken)
		assert.Equal(t, fiber.StatusPreconditionRequired, resp.StatusCode)
		assert.Zero(t, env.store.CountCalls("anime.Delete"))

		resp, body := env.sendJSON(t, http.MethodDelete, "/api/v1/admin/anime/"+narutoID+"?confirm=true", "", adminToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var list []models.Anime
		require.NoError(t, json.Unmarshal(decode(t, body).Data, &list))
		assert.Len(t, list, 2)
	})
}

func TestAdminAPI_ToggleAdvertisement(t *testing.T) {
	env := newTestEnv(t)
	env.store.SeedAdvertisements(models.Advertisement{ID: adID, Title: "Promo", VideoURL: "https://www.youtube.com/embed/ad", LinkURL: "https://shop.example.com", IsActive: true})

	resp, body := env.sendJSON(t, http.MethodPost, "/api/v1/admin/advertisements/"+adID+"/toggle", "", adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ads []models.Advertisement
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &ads))
	require.Len(t, ads, 1)
	assert.False(t, ads[0].IsActive)
}

func TestPresignAPI(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.sendJSON(t, http.MethodGet, "/api/v1/admin/upload/presign", "", adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := env.sendJSON(t, http.MethodGet, "/api/v1/admin/upload/presign?filename=cover.png", "", adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"public_url":"https://cdn.example.com/posters/cover.png"`)
}
