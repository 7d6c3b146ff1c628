package repository

import (
	"context"
	"errors"

	"anime-stream/internal/database"
	"anime-stream/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRoleRepository interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
	Grant(ctx context.Context, userID, role string) error
	Revoke(ctx context.Context, userID, role string) (bool, error)
	ListByRole(ctx context.Context, role string) ([]models.UserRole, error)
}

type userRoleRepository struct {
	queryScope
}

func NewUserRoleRepository(db *database.Database) UserRoleRepository {
	return &userRoleRepository{queryScope: newQueryScope(db)}
}

func (r *userRoleRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var row models.UserRole
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ? AND role = ?", userID, role).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Grant is idempotent.
func (r *userRoleRepository) Grant(ctx context.Context, userID, role string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserRole{UserID: userID, Role: role}).Error
}

func (r *userRoleRepository) Revoke(ctx context.Context, userID, role string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&models.UserRole{})
	return res.RowsAffected > 0, res.Error
}

func (r *userRoleRepository) ListByRole(ctx context.Context, role string) ([]models.UserRole, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []models.UserRole
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("created_at ASC").Find(&rows).Error
	return rows, err
}
