package bootstrap

import (
	"fmt"
	"strings"

	"health-wheel/config"
	domainRepo "health-wheel/internal/domain/repository"
	"health-wheel/internal/infrastructure/database"
	store "health-wheel/internal/infrastructure/nocodb"
	"health-wheel/internal/repository"
	nocodbRepo "health-wheel/internal/repository/nocodb"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Stores bundles the repositories of the selected backend.
type Stores struct {
	Patients domainRepo.PatientRepository
	Criteria domainRepo.CriterionRepository
	Ratings  domainRepo.RatingRepository

	// PatientLinks is nil when the backend has no relation fields.
	PatientLinks domainRepo.PatientLinkRepository

	// DB is set only for the postgres driver.
	DB *gorm.DB
}

// NewStores builds the repositories for cfg.Store.Driver. The NocoDB client
// is built even without credentials; requests then fail as not configured.
func NewStores(cfg *config.Config, log *logrus.Logger) (*Stores, error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case "", config.StoreDriverNocoDB:
		client := store.NewClient(cfg.NocoDB, nil, log)
		if !client.Configured() {
			log.Warn("NocoDB credentials are not configured; record store requests will fail")
		}
		return &Stores{
			Patients:     nocodbRepo.NewPatientRepository(client, cfg.NocoDB.PatientsTable),
			PatientLinks: nocodbRepo.NewPatientLinkRepository(client, cfg.NocoDB.PatientsTable),
			Criteria: nocodbRepo.NewCriterionRepository(client, cfg.NocoDB.CriteriaTable),
			Ratings: nocodbRepo.NewRatingRepository(client, cfg.NocoDB.RatingsTable, nocodbRepo.RatingLinks{
				Patient:   cfg.NocoDB.RatingPatientLink,
				Criterion: cfg.NocoDB.RatingCriterionLink,
			}),
		}, nil

	case config.StoreDriverPostgres:
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := repository.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database connected successfully")
		return &Stores{
			Patients: repository.NewPatientRepository(db),
			Criteria: repository.NewCriterionRepository(db),
			Ratings:  repository.NewRatingRepository(db),
			DB:       db,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// Close releases the database connection, if any.
func (s *Stores) Close() {
	if s.DB == nil {
		return
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
