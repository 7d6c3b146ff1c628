package services

import (
	"context"
	"fmt"
	"time"

	"anime-stream/internal/apperror"
	"anime-stream/internal/models"
	"anime-stream/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AnimeService is the admin manager for the anime table. Every successful
// mutation returns the list as refetched from the store afterwards.
type AnimeService interface {
	List(ctx context.Context) ([]models.Anime, error)
	Get(ctx context.Context, id string) (*models.Anime, error)
	NewForm() AnimeForm

	Create(ctx context.Context, form AnimeForm) ([]models.Anime, error)
	Update(ctx context.Context, id string, form AnimeForm) ([]models.Anime, error)
	Delete(ctx context.Context, id string, confirmed bool) ([]models.Anime, error)
}

type animeService struct {
	repo    repository.AnimeRepository
	posters PosterStore
	logger  *logrus.Logger
	now     func() time.Time
}

func NewAnimeService(repo repository.AnimeRepository, logger *logrus.Logger) AnimeService {
	return &animeService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *animeService) SetPosterStore(posters PosterStore) {
	s.posters = posters
}

func (s *animeService) List(ctx context.Context) ([]models.Anime, error) {
	list, err := s.repo.FindAllByCreated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load anime: %w", err)
	}
	return list, nil
}

func (s *animeService) Get(ctx context.Context, id string) (*models.Anime, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("anime %q: %w", id, apperror.ErrNotFound)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *animeService) NewForm() AnimeForm {
	return DefaultAnimeForm(s.now())
}

func (s *animeService) Create(ctx context.Context, form AnimeForm) ([]models.Anime, error) {
	anime, err := form.ToAnime(s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, anime); err != nil {
		s.logger.WithError(err).WithField("title", anime.Title).Error("Failed to create anime")
		return nil, fmt.Errorf("failed to create anime: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"id": anime.ID, "title": anime.Title}).Info("Anime created")
	return s.List(ctx)
}

func (s *animeService) Update(ctx context.Context, id string, form AnimeForm) ([]models.Anime, error) {
	anime, err := form.ToAnime(s.now())
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	anime.ID = id
	if err := s.repo.Update(ctx, anime); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to update anime")
		return nil, fmt.Errorf("failed to update anime: %w", err)
	}

	if existing.ImageURL != anime.ImageURL {
		s.removePoster(ctx, existing.ImageURL)
	}

	s.logger.WithField("id", id).Info("Anime updated")
	return s.List(ctx)
}

func (s *animeService) Delete(ctx context.Context, id string, confirmed bool) ([]models.Anime, error) {
	if !confirmed {
		return nil, apperror.ErrConfirmationRequired
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to delete anime")
		return nil, fmt.Errorf("failed to delete anime: %w", err)
	}

	s.removePoster(ctx, existing.ImageURL)

	s.logger.WithField("id", id).Info("Anime deleted")
	return s.List(ctx)
}

// removePoster drops a poster we host once no row points at it any more.
// Failures only get logged.
func (s *animeService) removePoster(ctx context.Context, url string) {
	if s.posters == nil || url == "" || !s.posters.Owns(url) {
		return
	}
	refs, err := s.repo.CountByImageURL(ctx, url)
	if err != nil {
		s.logger.WithError(err).WithField("url", url).Warn("Failed to count poster references, keeping poster")
		return
	}
	if refs > 0 {
		s.logger.WithFields(logrus.Fields{"url": url, "refs": refs}).Debug("Poster still referenced, keeping it")
		return
	}
	if err := s.posters.DeleteByURL(ctx, url); err != nil {
		s.logger.WithError(err).WithField("url", url).Warn("Failed to delete poster from MinIO")
	}
}
