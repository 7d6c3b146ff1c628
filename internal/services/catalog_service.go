package services

import (
	"context"
	"fmt"
	"strings"

	"anime-stream/internal/apperror"
	"anime-stream/internal/models"
	"anime-stream/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CatalogService backs the public pages: browsing, details and the ad slot.
type CatalogService interface {
	// Browse returns the catalog in rating order, narrowed by FilterByTitle.
	Browse(ctx context.Context, query string) ([]models.Anime, error)
	GetAnime(ctx context.Context, id string) (*models.Anime, error)
	// ActiveAdvertisement never fails; a missing or unreadable ad is nil.
	ActiveAdvertisement(ctx context.Context) *models.Advertisement
}

type catalogService struct {
	animeRepo repository.AnimeRepository
	adRepo    repository.AdvertisementRepository
	logger    *logrus.Logger
}

func NewCatalogService(animeRepo repository.AnimeRepository, adRepo repository.AdvertisementRepository, logger *logrus.Logger) CatalogService {
	return &catalogService{
		animeRepo: animeRepo,
		adRepo:    adRepo,
		logger:    logger,
	}
}

func (s *catalogService) Browse(ctx context.Context, query string) ([]models.Anime, error) {
	list, err := s.animeRepo.FindAllByRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return FilterByTitle(list, query), nil
}

func (s *catalogService) GetAnime(ctx context.Context, id string) (*models.Anime, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("anime %q: %w", id, apperror.ErrNotFound)
	}
	return s.animeRepo.FindByID(ctx, id)
}

func (s *catalogService) ActiveAdvertisement(ctx context.Context) *models.Advertisement {
	ad, err := s.adRepo.FindFirstActive(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load active advertisement")
		return nil
	}
	return ad
}

// FilterByTitle keeps the anime whose title contains query, ignoring case.
// Input order is preserved and an empty query returns list as is.
func FilterByTitle(list []models.Anime, query string) []models.Anime {
	if query == "" {
		return list
	}
	needle := strings.ToLower(query)
	filtered := make([]models.Anime, 0, len(list))
	for _, a := range list {
		if strings.Contains(strings.ToLower(a.Title), needle) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
