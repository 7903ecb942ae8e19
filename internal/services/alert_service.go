package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/realtime"
	"swasthsetu/internal/repositories"
	"swasthsetu/pkg/utils"
)

type AlertServiceInterface interface {
	ListAlerts(ctx context.Context, userID uuid.UUID) ([]db_models.Alert, error)
	MarkRead(ctx context.Context, userID, alertID uuid.UUID) (*db_models.Alert, error)
	CreateAlert(ctx context.Context, request request_models.CreateAlertRequest) (*db_models.Alert, error)
	LatestAlert(ctx context.Context, userID uuid.UUID) (*db_models.Alert, error)
	Subscribe(ctx context.Context, userID uuid.UUID) (*realtime.Subscription, error)
}

type AlertService struct {
	alertRepo   repositories.AlertRepository
	profileRepo repositories.ProfileRepository
	broadcaster realtime.Broadcaster
	log         logrus.FieldLogger
}

func NewAlertService(
	alertRepo repositories.AlertRepository,
	profileRepo repositories.ProfileRepository,
	broadcaster realtime.Broadcaster,
	log logrus.FieldLogger,
) AlertServiceInterface {
	return &AlertService{
		alertRepo:   alertRepo,
		profileRepo: profileRepo,
		broadcaster: broadcaster,
		log:         log,
	}
}

// optionalMigrantID is nil for callers without a profile, who only see global alerts.
func (s *AlertService) optionalMigrantID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	id, err := migrantIDFor(ctx, s.profileRepo, userID)
	if errors.Is(err, utils.ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *AlertService) ListAlerts(ctx context.Context, userID uuid.UUID) ([]db_models.Alert, error) {
	migrantID, err := s.optionalMigrantID(ctx, userID)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alertRepo.ListVisible(ctx, migrantID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return alerts, nil
}

// MarkRead is idempotent: an alert that is already read is returned unchanged.
func (s *AlertService) MarkRead(ctx context.Context, userID, alertID uuid.UUID) (*db_models.Alert, error) {
	migrantID, err := s.optionalMigrantID(ctx, userID)
	if err != nil {
		return nil, err
	}

	alert, err := s.alertRepo.FindVisible(ctx, alertID, migrantID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if alert == nil {
		return nil, utils.ErrRecordNotFound
	}
	if alert.IsRead {
		return alert, nil
	}

	if err := s.alertRepo.MarkRead(ctx, alertID); err != nil {
		return nil, utils.DatabaseError(err)
	}
	alert.IsRead = true
	return alert, nil
}

func (s *AlertService) CreateAlert(ctx context.Context, request request_models.CreateAlertRequest) (*db_models.Alert, error) {
	severity := db_models.AlertInfo
	if request.Severity != "" {
		severity = db_models.AlertSeverity(request.Severity)
	}

	alert := &db_models.Alert{
		Title:    strings.TrimSpace(request.Title),
		Message:  request.Message,
		Severity: severity,
	}
	if request.MigrantID != nil {
		id, err := uuid.Parse(*request.MigrantID)
		if err != nil {
			return nil, utils.InvalidInput("migrantId is not a valid id")
		}
		alert.MigrantID = &id
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, utils.DatabaseError(err)
	}

	if err := s.broadcaster.Publish(ctx, *alert); err != nil {
		s.log.WithError(err).WithField("alert_id", alert.ID).Warn("publishing alert")
	}
	return alert, nil
}

// LatestAlert is nil when nothing is visible to the caller.
func (s *AlertService) LatestAlert(ctx context.Context, userID uuid.UUID) (*db_models.Alert, error) {
	migrantID, err := s.optionalMigrantID(ctx, userID)
	if err != nil {
		return nil, err
	}

	alert, err := s.alertRepo.LatestVisible(ctx, migrantID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return alert, nil
}

// Subscribe streams newly created alerts visible to the caller.
func (s *AlertService) Subscribe(ctx context.Context, userID uuid.UUID) (*realtime.Subscription, error) {
	migrantID, err := s.optionalMigrantID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.broadcaster.Subscribe(ctx, func(a db_models.Alert) bool {
		if a.MigrantID == nil {
			return true
		}
		return migrantID != nil && *a.MigrantID == *migrantID
	})
}
