package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swasthsetu/internal/models/db_models"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *db_models.Alert) error
	// ListVisible returns global alerts plus, when migrantID is set, that migrant's alerts.
	ListVisible(ctx context.Context, migrantID *uuid.UUID) ([]db_models.Alert, error)
	FindVisible(ctx context.Context, id uuid.UUID, migrantID *uuid.UUID) (*db_models.Alert, error)
	LatestVisible(ctx context.Context, migrantID *uuid.UUID) (*db_models.Alert, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func visibleTo(migrantID *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if migrantID == nil {
			return db.Where("migrant_id IS NULL")
		}
		return db.Where("migrant_id IS NULL OR migrant_id = ?", *migrantID)
	}
}

func (r *alertRepository) Create(ctx context.Context, alert *db_models.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) ListVisible(ctx context.Context, migrantID *uuid.UUID) ([]db_models.Alert, error) {
	alerts := []db_models.Alert{}
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(migrantID)).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) FindVisible(ctx context.Context, id uuid.UUID, migrantID *uuid.UUID) (*db_models.Alert, error) {
	var alert db_models.Alert
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(migrantID)).
		Where("id = ?", id).
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) LatestVisible(ctx context.Context, migrantID *uuid.UUID) (*db_models.Alert, error) {
	var alert db_models.Alert
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(migrantID)).
		Order("created_at DESC").
		Take(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Alert{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
