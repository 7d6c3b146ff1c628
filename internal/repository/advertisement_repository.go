package repository

import (
	"context"
	"errors"
	"fmt"

	"anime-stream/internal/apperror"
	"anime-stream/internal/database"
	"anime-stream/internal/models"

	"gorm.io/gorm"
)

type AdvertisementRepository interface {
	FindAllByCreated(ctx context.Context) ([]models.Advertisement, error)
	FindByID(ctx context.Context, id string) (*models.Advertisement, error)
	// FindFirstActive returns nil, nil when no row is active.
	FindFirstActive(ctx context.Context) (*models.Advertisement, error)

	Create(ctx context.Context, ad *models.Advertisement) error
	Update(ctx context.Context, ad *models.Advertisement) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

var advertisementColumns = []string{"title", "video_url", "link_url", "is_active"}

type advertisementRepository struct {
	queryScope
}

func NewAdvertisementRepository(db *database.Database) AdvertisementRepository {
	return &advertisementRepository{queryScope: newQueryScope(db)}
}

func (r *advertisementRepository) FindAllByCreated(ctx context.Context) ([]models.Advertisement, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ads []models.Advertisement
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ads).Error
	return ads, err
}

func (r *advertisementRepository) FindByID(ctx context.Context, id string) (*models.Advertisement, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ad models.Advertisement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("advertisement %s: %w", id, apperror.ErrNotFound)
		}
		return nil, err
	}
	return &ad, nil
}

// FindFirstActive uses Take, not First: no ORDER BY is added, so with several
// active rows the store decides which one comes back.
func (r *advertisementRepository) FindFirstActive(ctx context.Context) (*models.Advertisement, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ad models.Advertisement
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Take(&ad).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

func (r *advertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *advertisementRepository) Update(ctx context.Context, ad *models.Advertisement) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.Advertisement{}).
		Where("id = ?", ad.ID).
		Select(advertisementColumns).
		Updates(ad)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("advertisement %s: %w", ad.ID, apperror.ErrNotFound)
	}
	return nil
}

func (r *advertisementRepository) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.Advertisement{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("advertisement %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}

func (r *advertisementRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Advertisement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("advertisement %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
