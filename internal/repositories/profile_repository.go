package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swasthsetu/internal/models/db_models"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *db_models.MigrantProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*db_models.MigrantProfile, error)
	HealthIDExists(ctx context.Context, healthID string) (bool, error)
	Save(ctx context.Context, profile *db_models.MigrantProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *db_models.MigrantProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*db_models.MigrantProfile, error) {
	var profile db_models.MigrantProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) HealthIDExists(ctx context.Context, healthID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.MigrantProfile{}).
		Where("health_id = ?", healthID).
		Count(&count).Error
	return count > 0, err
}

func (r *profileRepository) Save(ctx context.Context, profile *db_models.MigrantProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
