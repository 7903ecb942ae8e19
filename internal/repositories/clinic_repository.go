package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"swasthsetu/internal/models/db_models"
)

type ClinicRepository interface {
	List(ctx context.Context, location string) ([]db_models.Clinic, error)
	// Upsert inserts clinic unless one with the same name exists.
	Upsert(ctx context.Context, clinic *db_models.Clinic) error
}

type clinicRepository struct {
	db *gorm.DB
}

func NewClinicRepository(db *gorm.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *clinicRepository) List(ctx context.Context, location string) ([]db_models.Clinic, error) {
	clinics := []db_models.Clinic{}
	query := r.db.WithContext(ctx)

	if location = strings.TrimSpace(location); location != "" {
		pattern := "%" + likeEscaper.Replace(location) + "%"
		query = query.Where(
			"name ILIKE ? OR address ILIKE ? OR district ILIKE ? OR city ILIKE ? OR state ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	err := query.Order("name ASC").Find(&clinics).Error
	return clinics, err
}

func (r *clinicRepository) Upsert(ctx context.Context, clinic *db_models.Clinic) error {
	return r.db.WithContext(ctx).
		Where(db_models.Clinic{Name: clinic.Name}).
		FirstOrCreate(clinic).Error
}
