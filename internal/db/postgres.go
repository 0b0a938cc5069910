package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
	"github.com/alloyforge/metallurgy-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "alloycatalog", log)
	maxOpen := utils.GetEnvAsInt("POOL_MAX_OPEN", 20, log)
	maxIdle := utils.GetEnvAsInt("POOL_MAX_IDLE", 10, log)
	connMaxLifetime := utils.GetEnvAsInt("POOL_CONN_MAX_LIFETIME", 1800, log)
	log.Debug("Environment variables loaded")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Failed to get sql.DB handle", "error", err)
		return nil, fmt.Errorf("Failed to get sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.ChemicalElement{},
		&types.Patent{},
		&types.Alloy{},
		&types.Role{},
		&types.Person{},
		&types.MLModel{},
		&types.Prediction{},
		&types.AlloyElement{},
		&types.PredictionElement{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		table, name, column, refTable, refColumn string
	}{
		{"alloy", "fk_alloy_patent_id", "patent_id", "patent", "id"},
		{"person", "fk_person_role_id", "role_id", "role", "id"},
		{"prediction", "fk_prediction_ml_model_id", "ml_model_id", "model", "id"},
		{"prediction", "fk_prediction_person_id", "person_id", "person", "id"},
		{"alloy_element_association", "fk_alloy_element_alloy_id", "alloy_id", "alloy", "id"},
		{"alloy_element_association", "fk_alloy_element_element_id", "element_id", "chemical_element", "id"},
		{"prediction_element_association", "fk_prediction_element_prediction_id", "prediction_id", "prediction", "id"},
		{"prediction_element_association", "fk_prediction_element_element_id", "element_id", "chemical_element", "id"},
	}
	for _, fk := range constraints {
		stmt := fmt.Sprintf(`
			DO $$ BEGIN
				ALTER TABLE %q ADD CONSTRAINT %q
				FOREIGN KEY (%q) REFERENCES %q(%q);
			EXCEPTION WHEN duplicate_object THEN NULL;
			END $$;
		`, fk.table, fk.name, fk.column, fk.refTable, fk.refColumn)
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("Failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

func (s *PostgresService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
