package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func validAnimeForm(title string) AnimeForm {
	return AnimeForm{
		Title:       title,
		Description: "A long description",
		ImageURL:    "https://img.example.com/" + title + ".jpg",
		VideoURL:    "https://www.youtube.com/embed/abc123",
		Rating:      "7.5",
		Genre:       "Action",
		ReleaseYear: "2020",
		Episodes:    "12",
	}
}

type fakePosters struct {
	mu      sync.Mutex
	prefix  string
	deleted []string
	err     error
}

func (f *fakePosters) Owns(url string) bool {
	return len(url) > len(f.prefix) && url[:len(f.prefix)] == f.prefix
}

func (f *fakePosters) DeleteByURL(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return f.err
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	err      error
	signOuts []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*Session)}
}

func (f *fakeSessions) GetSession(ctx context.Context, token string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[token], nil
}

func (f *fakeSessions) SignOut(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts = append(f.signOuts, token)
	return nil
}
