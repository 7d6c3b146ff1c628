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

type AnimeRepository interface {
	// Catalog ordering
	FindAllByRating(ctx context.Context) ([]models.Anime, error)
	// Management ordering, newest first
	FindAllByCreated(ctx context.Context) ([]models.Anime, error)
	FindByID(ctx context.Context, id string) (*models.Anime, error)
	// Rows whose poster is imageURL
	CountByImageURL(ctx context.Context, imageURL string) (int64, error)

	Create(ctx context.Context, anime *models.Anime) error
	Update(ctx context.Context, anime *models.Anime) error
	Delete(ctx context.Context, id string) error
}

var animeColumns = []string{"title", "description", "image_url", "video_url", "rating", "genre", "release_year", "episodes"}

type animeRepository struct {
	queryScope
}

func NewAnimeRepository(db *database.Database) AnimeRepository {
	return &animeRepository{queryScope: newQueryScope(db)}
}

func (r *animeRepository) FindAllByRating(ctx context.Context) ([]models.Anime, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var list []models.Anime
	err := r.db.WithContext(ctx).Order("rating DESC").Find(&list).Error
	return list, err
}

func (r *animeRepository) FindAllByCreated(ctx context.Context) ([]models.Anime, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var list []models.Anime
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *animeRepository) FindByID(ctx context.Context, id string) (*models.Anime, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var anime models.Anime
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&anime).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("anime %s: %w", id, apperror.ErrNotFound)
		}
		return nil, err
	}
	return &anime, nil
}

func (r *animeRepository) CountByImageURL(ctx context.Context, imageURL string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&models.Anime{}).Where("image_url = ?", imageURL).Count(&n).Error
	return n, err
}

func (r *animeRepository) Create(ctx context.Context, anime *models.Anime) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(anime).Error
}

// Update writes every editable column, zero values included.
func (r *animeRepository) Update(ctx context.Context, anime *models.Anime) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.Anime{}).
		Where("id = ?", anime.ID).
		Select(animeColumns).
		Updates(anime)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("anime %s: %w", anime.ID, apperror.ErrNotFound)
	}
	return nil
}

func (r *animeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Anime{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("anime %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
