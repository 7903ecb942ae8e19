package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/repositories"
	"swasthsetu/pkg/utils"
)

const healthIDAttempts = 3

type ProfileServiceInterface interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, request request_models.CreateProfileRequest) (*db_models.MigrantProfile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.MigrantProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*db_models.MigrantProfile, error)
}

type ProfileService struct {
	profileRepo repositories.ProfileRepository
	log         logrus.FieldLogger
	newHealthID func(time.Time) (string, error)
	now         func() time.Time
}

func NewProfileService(profileRepo repositories.ProfileRepository, log logrus.FieldLogger) ProfileServiceInterface {
	return &ProfileService{
		profileRepo: profileRepo,
		log:         log,
		newHealthID: utils.GenerateHealthID,
		now:         time.Now,
	}
}

// migrantIDFor resolves the caller's profile id; every migrant-scoped table is
// keyed by it rather than by the user id.
func migrantIDFor(ctx context.Context, profiles repositories.ProfileRepository, userID uuid.UUID) (uuid.UUID, error) {
	profile, err := profiles.FindByUserID(ctx, userID)
	if err != nil {
		return uuid.Nil, utils.DatabaseError(err)
	}
	if profile == nil {
		return uuid.Nil, utils.ErrProfileNotFound
	}
	return profile.ID, nil
}

func (s *ProfileService) CreateProfile(ctx context.Context, userID uuid.UUID, request request_models.CreateProfileRequest) (*db_models.MigrantProfile, error) {
	existing, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if existing != nil {
		return nil, utils.ErrProfileAlreadyExists
	}

	healthID, err := s.uniqueHealthID(ctx)
	if err != nil {
		return nil, err
	}

	profile := &db_models.MigrantProfile{
		UserID:                userID,
		HealthID:              healthID,
		FullName:              request.FullName,
		DateOfBirth:           request.DateOfBirth,
		Gender:                request.Gender,
		Phone:                 request.Phone,
		Address:               request.Address,
		State:                 request.State,
		District:              request.District,
		OriginState:           request.OriginState,
		Occupation:            request.Occupation,
		Employer:              request.Employer,
		Language:              request.Language,
		BloodGroup:            request.BloodGroup,
		Allergies:             request.Allergies,
		ChronicConditions:     request.ChronicConditions,
		EmergencyContactName:  request.EmergencyContactName,
		EmergencyContactPhone: request.EmergencyContactPhone,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// a concurrent create for the same user loses on the user_id index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if again, findErr := s.profileRepo.FindByUserID(ctx, userID); findErr == nil && again != nil {
				return nil, utils.ErrProfileAlreadyExists
			}
		}
		s.log.WithError(err).WithField("user_id", userID).Error("creating profile")
		return nil, utils.DatabaseError(err)
	}

	return profile, nil
}

func (s *ProfileService) uniqueHealthID(ctx context.Context) (string, error) {
	for i := 0; i < healthIDAttempts; i++ {
		id, err := s.newHealthID(s.now())
		if err != nil {
			return "", err
		}
		if !utils.IsHealthID(id) {
			return "", fmt.Errorf("generated malformed health id %q", id)
		}
		exists, err := s.profileRepo.HealthIDExists(ctx, id)
		if err != nil {
			return "", utils.DatabaseError(err)
		}
		if !exists {
			return id, nil
		}
		s.log.WithField("health_id", id).Warn("health id collision, regenerating")
	}
	return "", fmt.Errorf("could not allocate a unique health id after %d attempts", healthIDAttempts)
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.MigrantProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if profile == nil {
		return nil, utils.ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*db_models.MigrantProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&profile.FullName, request.FullName)
	applyString(&profile.Gender, request.Gender)
	applyString(&profile.Phone, request.Phone)
	applyString(&profile.Address, request.Address)
	applyString(&profile.State, request.State)
	applyString(&profile.District, request.District)
	applyString(&profile.OriginState, request.OriginState)
	applyString(&profile.Occupation, request.Occupation)
	applyString(&profile.Employer, request.Employer)
	applyString(&profile.Language, request.Language)
	applyString(&profile.BloodGroup, request.BloodGroup)
	applyString(&profile.Allergies, request.Allergies)
	applyString(&profile.ChronicConditions, request.ChronicConditions)
	applyString(&profile.EmergencyContactName, request.EmergencyContactName)
	applyString(&profile.EmergencyContactPhone, request.EmergencyContactPhone)
	if request.DateOfBirth != nil {
		profile.DateOfBirth = request.DateOfBirth
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, utils.DatabaseError(err)
	}
	return profile, nil
}
