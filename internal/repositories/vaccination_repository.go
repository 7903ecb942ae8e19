package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swasthsetu/internal/models/db_models"
)

type VaccinationRepository interface {
	Create(ctx context.Context, vaccination *db_models.Vaccination) error
	ListByMigrant(ctx context.Context, migrantID uuid.UUID) ([]db_models.Vaccination, error)
	FindForMigrant(ctx context.Context, id, migrantID uuid.UUID) (*db_models.Vaccination, error)
	Save(ctx context.Context, vaccination *db_models.Vaccination) error
}

type vaccinationRepository struct {
	db *gorm.DB
}

func NewVaccinationRepository(db *gorm.DB) VaccinationRepository {
	return &vaccinationRepository{db: db}
}

func (r *vaccinationRepository) Create(ctx context.Context, vaccination *db_models.Vaccination) error {
	return r.db.WithContext(ctx).Create(vaccination).Error
}

func (r *vaccinationRepository) ListByMigrant(ctx context.Context, migrantID uuid.UUID) ([]db_models.Vaccination, error) {
	vaccinations := []db_models.Vaccination{}
	err := r.db.WithContext(ctx).
		Where("migrant_id = ?", migrantID).
		Order("COALESCE(scheduled_date, completed_date, created_at) ASC").
		Find(&vaccinations).Error
	return vaccinations, err
}

func (r *vaccinationRepository) FindForMigrant(ctx context.Context, id, migrantID uuid.UUID) (*db_models.Vaccination, error) {
	var vaccination db_models.Vaccination
	err := r.db.WithContext(ctx).
		Where("id = ? AND migrant_id = ?", id, migrantID).
		First(&vaccination).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vaccination, nil
}

func (r *vaccinationRepository) Save(ctx context.Context, vaccination *db_models.Vaccination) error {
	return r.db.WithContext(ctx).Save(vaccination).Error
}
