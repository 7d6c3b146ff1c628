package services

import (
	"context"
	"strings"
	"testing"

	"anime-stream/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosterObjectName(t *testing.T) {
	name, contentType, err := posterObjectName("../../My Poster!.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "My-Poster-_"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)
	assert.NotContains(t, name, "/")
	assert.Equal(t, "image/png", contentType)

	_, _, err = posterObjectName("movie.mp4")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestMinIOServiceOwns(t *testing.T) {
	logger, _ := newTestLogger()
	svc := &MinIOService{publicURL: "http://localhost:9000/posters", logger: logger}

	assert.True(t, svc.Owns("http://localhost:9000/posters/a_1234.jpg"))
	assert.False(t, svc.Owns("http://localhost:9000/posters-other/a.jpg"))
	assert.False(t, svc.Owns("https://img.example.com/a.jpg"))

	// Foreign URLs are left alone without touching the client.
	assert.NoError(t, svc.DeleteByURL(context.Background(), "https://img.example.com/a.jpg"))
}
