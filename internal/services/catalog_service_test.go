package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"anime-stream/internal/apperror"
	"anime-stream/internal/models"
	"anime-stream/internal/repository/repotest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(list []models.Anime) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Title)
	}
	return out
}

func TestFilterByTitle(t *testing.T) {
	list := []models.Anime{
		{Title: "Naruto Shippuden", Rating: 9},
		{Title: "Bleach", Rating: 8},
		{Title: "NARUTO", Rating: 7},
		{Title: "One Piece", Rating: 6},
	}

	cases := map[string]struct {
		query string
		want  []string
	}{
		"empty query":      {"", []string{"Naruto Shippuden", "Bleach", "NARUTO", "One Piece"}},
		"case insensitive": {"naRUto", []string{"Naruto Shippuden", "NARUTO"}},
		"inner substring":  {"piec", []string{"One Piece"}},
		"whitespace kept":  {"e p", []string{"One Piece"}},
		"no match":         {"gintama", []string{}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, titles(FilterByTitle(list, tc.query)))
		})
	}
}

func TestFilterByTitleIsExactSubset(t *testing.T) {
	list := []models.Anime{
		{Title: "Attack on Titan"}, {Title: "titanic"}, {Title: "Tokyo Ghoul"},
		{Title: "Mob Psycho 100"}, {Title: "TITAN"}, {Title: ""},
	}

	for _, q := range []string{"", "t", "TiTaN", "o", "100", "zzz", " "} {
		got := FilterByTitle(list, q)
		kept := make(map[string]bool)
		for _, a := range got {
			kept[a.Title] = true
			assert.True(t, strings.Contains(strings.ToLower(a.Title), strings.ToLower(q)), "query %q kept %q", q, a.Title)
		}
		for _, a := range list {
			if strings.Contains(strings.ToLower(a.Title), strings.ToLower(q)) {
				assert.True(t, kept[a.Title], "query %q dropped %q", q, a.Title)
			}
		}
	}
}

func TestBrowseKeepsStoreRatingOrder(t *testing.T) {
	store := repotest.NewStore()
	store.SeedAnime(
		models.Anime{Title: "Mid Sword", Rating: 6.5},
		models.Anime{Title: "Top Sword", Rating: 9.1},
		models.Anime{Title: "Low Shield", Rating: 2},
		models.Anime{Title: "Sword Low", Rating: 3},
	)
	logger, _ := newTestLogger()
	svc := NewCatalogService(store.Anime(), store.Advertisements(), logger)

	all, err := svc.Browse(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Top Sword", "Mid Sword", "Sword Low", "Low Shield"}, titles(all))

	swords, err := svc.Browse(context.Background(), "SWORD")
	require.NoError(t, err)
	assert.Equal(t, []string{"Top Sword", "Mid Sword", "Sword Low"}, titles(swords))
}

func TestBrowseStoreFailure(t *testing.T) {
	store := repotest.NewStore()
	store.Err = errors.New("connection refused")
	logger, _ := newTestLogger()
	svc := NewCatalogService(store.Anime(), store.Advertisements(), logger)

	list, err := svc.Browse(context.Background(), "")
	assert.Error(t, err)
	assert.Empty(t, list)
}

func TestGetAnime(t *testing.T) {
	store := repotest.NewStore()
	store.SeedAnime(models.Anime{ID: "6f1d3c0a-9a7b-4c55-8d0e-111111111111", Title: "Trigun"})
	logger, _ := newTestLogger()
	svc := NewCatalogService(store.Anime(), store.Advertisements(), logger)

	anime, err := svc.GetAnime(context.Background(), "6f1d3c0a-9a7b-4c55-8d0e-111111111111")
	require.NoError(t, err)
	assert.Equal(t, "Trigun", anime.Title)

	_, err = svc.GetAnime(context.Background(), "6f1d3c0a-9a7b-4c55-8d0e-222222222222")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	before := store.CountCalls("anime.FindByID")
	_, err = svc.GetAnime(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, before, store.CountCalls("anime.FindByID"), "malformed ids never reach the store")
}

func TestActiveAdvertisement(t *testing.T) {
	t.Run("none active", func(t *testing.T) {
		store := repotest.NewStore()
		store.SeedAdvertisements(models.Advertisement{Title: "off", IsActive: false})
		logger, hook := newTestLogger()
		svc := NewCatalogService(store.Anime(), store.Advertisements(), logger)

		assert.Nil(t, svc.ActiveAdvertisement(context.Background()))
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("first active row wins", func(t *testing.T) {
		store := repotest.NewStore()
		store.SeedAdvertisements(
			models.Advertisement{Title: "off", IsActive: false},
			models.Advertisement{Title: "first", IsActive: true, LinkURL: "https://shop.example.com"},
			models.Advertisement{Title: "second", IsActive: true},
		)
		logger, _ := newTestLogger()
		svc := NewCatalogService(store.Anime(), store.Advertisements(), logger)

		ad := svc.ActiveAdvertisement(context.Background())
		require.NotNil(t, ad)
		assert.Equal(t, "first", ad.Title)
	})

	t.Run("failure is logged only", func(t *testing.T) {
		store := repotest.NewStore()
		store.Err = errors.New("timeout")
		logger, hook := newTestLogger()
		svc := NewCatalogService(store.Anime(), store.Advertisements(), logger)

		assert.Nil(t, svc.ActiveAdvertisement(context.Background()))
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})
}
