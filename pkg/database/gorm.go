package database

import (
	"context"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mindmanager/mindmanager_backend/config"
	"github.com/mindmanager/mindmanager_backend/internal/domain"
)

// NewGormClient creates a new GORM client from central config
func NewGormClient(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	return NewGormClientFromConfig(FromCentralConfig(cfg), log)
}

// NewGormClientFromConfig creates a new GORM client from package Config
func NewGormClientFromConfig(cfg Config, log *slog.Logger) (*gorm.DB, error) {
	conn, err := openSQLDB(cfg)
	if err != nil {
		return nil, err
	}

	var lg gormlogger.Interface = gormlogger.Discard
	if cfg.EnableLogging && log != nil {
		lg = newSlowQueryLogger(log, cfg.SlowQueryThreshold())
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: lg,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for all domain models
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&domain.User{},
		&domain.PsychologistProfile{},
		&domain.PatientProfile{},
		&domain.Appointment{},
		&domain.Session{},
		&domain.Anamnesis{},
		&domain.EmailSchedule{},
	)
}
