package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/repositories"
	"swasthsetu/pkg/utils"
)

type VaccinationServiceInterface interface {
	ListVaccinations(ctx context.Context, userID uuid.UUID) ([]db_models.Vaccination, error)
	CreateVaccination(ctx context.Context, userID uuid.UUID, request request_models.CreateVaccinationRequest) (*db_models.Vaccination, error)
	UpdateVaccination(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateVaccinationRequest) (*db_models.Vaccination, error)
}

// VaccinationService does not enforce status transitions; the last write wins.
type VaccinationService struct {
	vaccinationRepo repositories.VaccinationRepository
	profileRepo     repositories.ProfileRepository
	now             func() time.Time
}

func NewVaccinationService(vaccinationRepo repositories.VaccinationRepository, profileRepo repositories.ProfileRepository) VaccinationServiceInterface {
	return &VaccinationService{
		vaccinationRepo: vaccinationRepo,
		profileRepo:     profileRepo,
		now:             time.Now,
	}
}

func (s *VaccinationService) ListVaccinations(ctx context.Context, userID uuid.UUID) ([]db_models.Vaccination, error) {
	migrantID, err := migrantIDFor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	vaccinations, err := s.vaccinationRepo.ListByMigrant(ctx, migrantID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return vaccinations, nil
}

func (s *VaccinationService) CreateVaccination(ctx context.Context, userID uuid.UUID, request request_models.CreateVaccinationRequest) (*db_models.Vaccination, error) {
	status := db_models.VaccinationStatus(request.Status)
	if !status.Valid() {
		return nil, utils.InvalidInput("unknown vaccination status %q", request.Status)
	}

	migrantID, err := migrantIDFor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	dose := request.DoseNumber
	if dose == 0 {
		dose = 1
	}

	vaccination := &db_models.Vaccination{
		MigrantID:     migrantID,
		VaccineName:   strings.TrimSpace(request.VaccineName),
		DoseNumber:    dose,
		Status:        status,
		ScheduledDate: request.ScheduledDate,
		CompletedDate: request.CompletedDate,
		Provider:      request.Provider,
		Notes:         request.Notes,
	}
	s.fillCompletedDate(vaccination)

	if err := s.vaccinationRepo.Create(ctx, vaccination); err != nil {
		return nil, utils.DatabaseError(err)
	}
	return vaccination, nil
}

func (s *VaccinationService) UpdateVaccination(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateVaccinationRequest) (*db_models.Vaccination, error) {
	migrantID, err := migrantIDFor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	vaccination, err := s.vaccinationRepo.FindForMigrant(ctx, id, migrantID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if vaccination == nil {
		return nil, utils.ErrRecordNotFound
	}

	if request.Status != nil {
		status := db_models.VaccinationStatus(*request.Status)
		if !status.Valid() {
			return nil, utils.InvalidInput("unknown vaccination status %q", *request.Status)
		}
		vaccination.Status = status
	}
	if request.VaccineName != nil {
		vaccination.VaccineName = strings.TrimSpace(*request.VaccineName)
	}
	if request.DoseNumber != nil {
		vaccination.DoseNumber = *request.DoseNumber
	}
	if request.ScheduledDate != nil {
		vaccination.ScheduledDate = request.ScheduledDate
	}
	if request.CompletedDate != nil {
		vaccination.CompletedDate = request.CompletedDate
	}
	if request.Provider != nil {
		vaccination.Provider = *request.Provider
	}
	if request.Notes != nil {
		vaccination.Notes = *request.Notes
	}
	s.fillCompletedDate(vaccination)

	if err := s.vaccinationRepo.Save(ctx, vaccination); err != nil {
		return nil, utils.DatabaseError(err)
	}
	return vaccination, nil
}

// fillCompletedDate stamps completed entries that arrive without a date with today (IST).
func (s *VaccinationService) fillCompletedDate(v *db_models.Vaccination) {
	if v.Status == db_models.VaccinationCompleted && v.CompletedDate == nil {
		today := utils.TodayIST(s.now())
		v.CompletedDate = &today
	}
}
