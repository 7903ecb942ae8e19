package services

import (
	"context"

	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/repositories"
	"swasthsetu/pkg/utils"
)

type ClinicServiceInterface interface {
	ListClinics(ctx context.Context, location string) ([]db_models.Clinic, error)
}

type ClinicService struct {
	clinicRepo repositories.ClinicRepository
}

func NewClinicService(clinicRepo repositories.ClinicRepository) ClinicServiceInterface {
	return &ClinicService{clinicRepo: clinicRepo}
}

func (s *ClinicService) ListClinics(ctx context.Context, location string) ([]db_models.Clinic, error) {
	clinics, err := s.clinicRepo.List(ctx, location)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return clinics, nil
}
