package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"swasthsetu/internal/events"
	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/repositories"
	"swasthsetu/pkg/utils"
)

// Placeholder guidance, not a validated clinical rule.
const (
	RecommendationHigh   = "Please visit the nearest health center for evaluation."
	RecommendationMedium = "Monitor your symptoms and visit a clinic if they persist."
	RecommendationLow    = "No immediate action needed. Continue routine monitoring."
)

const symptomHistoryLimit = 50

type SymptomServiceInterface interface {
	CheckSymptoms(ctx context.Context, userID uuid.UUID, request request_models.SymptomCheckRequest) (*db_models.Symptom, error)
	History(ctx context.Context, userID uuid.UUID) ([]db_models.Symptom, error)
}

type SymptomService struct {
	symptomRepo repositories.SymptomRepository
	publisher   events.Publisher
	log         logrus.FieldLogger
}

func NewSymptomService(symptomRepo repositories.SymptomRepository, publisher events.Publisher, log logrus.FieldLogger) SymptomServiceInterface {
	return &SymptomService{
		symptomRepo: symptomRepo,
		publisher:   publisher,
		log:         log,
	}
}

// AssessRisk counts the scored flags: two or more is high, one is medium,
// none is low.
func AssessRisk(fever, cough, fatigue bool) (db_models.RiskLevel, string) {
	n := 0
	for _, flag := range []bool{fever, cough, fatigue} {
		if flag {
			n++
		}
	}

	switch {
	case n >= 2:
		return db_models.RiskHigh, RecommendationHigh
	case n == 1:
		return db_models.RiskMedium, RecommendationMedium
	default:
		return db_models.RiskLow, RecommendationLow
	}
}

// CheckSymptoms always inserts a new row; identical submissions are not deduplicated.
func (s *SymptomService) CheckSymptoms(ctx context.Context, userID uuid.UUID, request request_models.SymptomCheckRequest) (*db_models.Symptom, error) {
	risk, recommendation := AssessRisk(request.Fever, request.Cough, request.Fatigue)

	symptom := &db_models.Symptom{
		UserID:         userID,
		Fever:          request.Fever,
		Cough:          request.Cough,
		Fatigue:        request.Fatigue,
		OtherSymptoms:  request.OtherSymptoms,
		RiskLevel:      risk,
		Recommendation: recommendation,
	}
	if err := s.symptomRepo.Create(ctx, symptom); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("saving symptom check")
		return nil, utils.DatabaseError(err)
	}

	event := events.SymptomChecked{
		ID:        symptom.ID.String(),
		UserID:    userID.String(),
		RiskLevel: string(risk),
		CheckedAt: symptom.CreatedAt,
	}
	if event.CheckedAt.IsZero() {
		event.CheckedAt = time.Now().UTC()
	}
	if err := s.publisher.PublishSymptomChecked(ctx, event); err != nil {
		s.log.WithError(err).WithField("symptom_id", symptom.ID).Warn("publishing symptom event")
	}

	return symptom, nil
}

func (s *SymptomService) History(ctx context.Context, userID uuid.UUID) ([]db_models.Symptom, error) {
	symptoms, err := s.symptomRepo.ListByUser(ctx, userID, symptomHistoryLimit)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return symptoms, nil
}
