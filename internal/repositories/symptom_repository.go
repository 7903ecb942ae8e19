package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swasthsetu/internal/models/db_models"
)

type SymptomRepository interface {
	Create(ctx context.Context, symptom *db_models.Symptom) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Symptom, error)
}

type symptomRepository struct {
	db *gorm.DB
}

func NewSymptomRepository(db *gorm.DB) SymptomRepository {
	return &symptomRepository{db: db}
}

func (r *symptomRepository) Create(ctx context.Context, symptom *db_models.Symptom) error {
	return r.db.WithContext(ctx).Create(symptom).Error
}

func (r *symptomRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Symptom, error) {
	symptoms := []db_models.Symptom{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&symptoms).Error
	return symptoms, err
}
