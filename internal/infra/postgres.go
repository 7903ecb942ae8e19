package infra

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"swasthsetu/internal/config"
	"swasthsetu/internal/models/db_models"
)

var ErrMissingPostgresURL = errors.New("POSTGRES_URL is not set")

func InitPostgresql(cfg *config.Config) (*gorm.DB, error) {
	if cfg.PostgresURL == "" {
		return nil, ErrMissingPostgresURL
	}

	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), gormConfig(cfg))
	if err != nil {
		return nil, err
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return connectionPool, nil
}

// gormConfig translates driver errors so unique violations surface as
// gorm.ErrDuplicatedKey.
func gormConfig(cfg *config.Config) *gorm.Config {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.IsLocal() {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	return &gorm.Config{Logger: gormLogger, TranslateError: true}
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("closing database connection")
	} else {
		logrus.Info("PostgreSQL database connection closed successfully")
	}
}

// Migrate creates or alters every table the API uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(db_models.All()...)
}

func StartTransaction(db *gorm.DB) *gorm.DB {
	tx := db.Begin()
	if tx.Error != nil {
		logrus.WithError(tx.Error).Error("starting transaction")
	}
	return tx
}

// ReleaseTransaction commits tx, or rolls it back when err is non-nil.
func ReleaseTransaction(tx *gorm.DB, err error) error {
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			logrus.WithError(rollbackErr).Error("rolling back transaction")
		}
		return err
	}
	if commitErr := tx.Commit().Error; commitErr != nil {
		logrus.WithError(commitErr).Error("committing transaction")
		return commitErr
	}
	return nil
}
