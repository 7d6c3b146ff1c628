package services

import (
	"context"
	"fmt"

	"anime-stream/internal/apperror"
	"anime-stream/internal/models"
	"anime-stream/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AdvertisementService manages the advertisements table with the same
// mutate-then-refetch contract as AnimeService.
type AdvertisementService interface {
	List(ctx context.Context) ([]models.Advertisement, error)
	Get(ctx context.Context, id string) (*models.Advertisement, error)
	NewForm() AdvertisementForm

	Create(ctx context.Context, form AdvertisementForm) ([]models.Advertisement, error)
	Update(ctx context.Context, id string, form AdvertisementForm) ([]models.Advertisement, error)
	Delete(ctx context.Context, id string, confirmed bool) ([]models.Advertisement, error)
	// Toggle flips is_active on one row. No confirmation is needed.
	Toggle(ctx context.Context, id string) ([]models.Advertisement, error)
}

type advertisementService struct {
	repo   repository.AdvertisementRepository
	logger *logrus.Logger
}

func NewAdvertisementService(repo repository.AdvertisementRepository, logger *logrus.Logger) AdvertisementService {
	return &advertisementService{
		repo:   repo,
		logger: logger,
	}
}

func (s *advertisementService) List(ctx context.Context) ([]models.Advertisement, error) {
	ads, err := s.repo.FindAllByCreated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load advertisements: %w", err)
	}
	return ads, nil
}

func (s *advertisementService) Get(ctx context.Context, id string) (*models.Advertisement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("advertisement %q: %w", id, apperror.ErrNotFound)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *advertisementService) NewForm() AdvertisementForm {
	return DefaultAdvertisementForm()
}

func (s *advertisementService) Create(ctx context.Context, form AdvertisementForm) ([]models.Advertisement, error) {
	ad, err := form.ToAdvertisement()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, ad); err != nil {
		s.logger.WithError(err).WithField("title", ad.Title).Error("Failed to create advertisement")
		return nil, fmt.Errorf("failed to create advertisement: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"id": ad.ID, "active": ad.IsActive}).Info("Advertisement created")
	return s.List(ctx)
}

func (s *advertisementService) Update(ctx context.Context, id string, form AdvertisementForm) ([]models.Advertisement, error) {
	ad, err := form.ToAdvertisement()
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("advertisement %q: %w", id, apperror.ErrNotFound)
	}

	ad.ID = id
	if err := s.repo.Update(ctx, ad); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to update advertisement")
		return nil, fmt.Errorf("failed to update advertisement: %w", err)
	}

	s.logger.WithField("id", id).Info("Advertisement updated")
	return s.List(ctx)
}

func (s *advertisementService) Delete(ctx context.Context, id string, confirmed bool) ([]models.Advertisement, error) {
	if !confirmed {
		return nil, apperror.ErrConfirmationRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("advertisement %q: %w", id, apperror.ErrNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to delete advertisement")
		return nil, fmt.Errorf("failed to delete advertisement: %w", err)
	}

	s.logger.WithField("id", id).Info("Advertisement deleted")
	return s.List(ctx)
}

func (s *advertisementService) Toggle(ctx context.Context, id string) ([]models.Advertisement, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetActive(ctx, id, !current.IsActive); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to toggle advertisement")
		return nil, fmt.Errorf("failed to toggle advertisement: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"id": id, "active": !current.IsActive}).Info("Advertisement toggled")
	return s.List(ctx)
}
