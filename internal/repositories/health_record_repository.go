package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swasthsetu/internal/models/db_models"
)

type HealthRecordRepository interface {
	Create(ctx context.Context, record *db_models.HealthRecord) error
	ListByMigrant(ctx context.Context, migrantID uuid.UUID) ([]db_models.HealthRecord, error)
	FindForMigrant(ctx context.Context, id, migrantID uuid.UUID) (*db_models.HealthRecord, error)
}

type healthRecordRepository struct {
	db *gorm.DB
}

func NewHealthRecordRepository(db *gorm.DB) HealthRecordRepository {
	return &healthRecordRepository{db: db}
}

func (r *healthRecordRepository) Create(ctx context.Context, record *db_models.HealthRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *healthRecordRepository) ListByMigrant(ctx context.Context, migrantID uuid.UUID) ([]db_models.HealthRecord, error) {
	records := []db_models.HealthRecord{}
	err := r.db.WithContext(ctx).
		Where("migrant_id = ?", migrantID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *healthRecordRepository) FindForMigrant(ctx context.Context, id, migrantID uuid.UUID) (*db_models.HealthRecord, error) {
	var record db_models.HealthRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND migrant_id = ?", id, migrantID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
