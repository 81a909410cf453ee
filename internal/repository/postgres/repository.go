// Package postgres implements the repository contract over a
// Postgres-compatible endpoint. Every statement is parameterized; values are
// never interpolated into SQL text.
package postgres

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

// DBConfig holds connection pool settings.
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

var defaultDBConfig = DBConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    100,
	ConnMaxLifetime: time.Hour,
	ConnMaxIdleTime: 30 * time.Minute,
}

// Repository is the Postgres-backed implementation of repository.Repository.
type Repository struct {
	db  *gorm.DB
	log *logrus.Logger
}

// Open connects to the endpoint behind dsn and configures the pool.
// TranslateError turns driver-specific unique violations into
// gorm.ErrDuplicatedKey so classification stays portable.
func Open(dsn string, log *logrus.Logger) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, repository.WrapError(repository.ErrConnection, "postgres.Open", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, repository.WrapError(repository.ErrConnection, "postgres.Open", err)
	}
	sqlDB.SetMaxIdleConns(defaultDBConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(defaultDBConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(defaultDBConfig.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(defaultDBConfig.ConnMaxIdleTime)

	return New(db, log), nil
}

// New wraps an existing gorm handle. Used by Open and by tests.
func New(db *gorm.DB, log *logrus.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// Migrate creates or updates the schema for every table this backend owns,
// including the identity and admin-role tables that only exist in SQL mode.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(
		&models.AuthUser{},
		&models.UserProfile{},
		&models.UserBalance{},
		&models.Transaction{},
		&models.InvestmentPlan{},
		&models.Investment{},
		&models.AdminUser{},
	)
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// wrap maps a gorm error onto the shared taxonomy. Anything unclassified is
// returned wrapped but otherwise untouched, so the original driver error
// survives for diagnostics.
func (r *Repository) wrap(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return repository.WrapError(repository.ErrConstraintViolation, op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return repository.WrapError(repository.ErrConnection, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFound reports whether err is gorm's empty-result signal.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
