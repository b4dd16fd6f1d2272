// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/drivelane/dealer-backend/internal/config"
	"github.com/drivelane/dealer-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Failed to get underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Failed to close database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Client{},
		&models.Vehicle{},
		&models.FIRequest{},
		&models.Notification{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_tenant_role_status ON users(tenant_id, role, status)",
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",

		// Client indexes
		"CREATE INDEX IF NOT EXISTS idx_clients_tenant ON clients(tenant_id)",
		"CREATE INDEX IF NOT EXISTS idx_clients_tenant_created_by ON clients(tenant_id, created_by)",

		// Vehicle indexes
		"CREATE INDEX IF NOT EXISTS idx_vehicles_tenant_status ON vehicles(tenant_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles(created_at DESC)",

		// F&I request indexes. The combined tenant+status+created_at index
		// backs the filtered, ordered list query; the list path still
		// tolerates its absence (see FIRequestService.List).
		"CREATE INDEX IF NOT EXISTS idx_fi_requests_tenant_status ON fi_requests(tenant_id, status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_fi_requests_tenant_creator ON fi_requests(tenant_id, created_by)",
		"CREATE INDEX IF NOT EXISTS idx_fi_requests_tenant_client ON fi_requests(tenant_id, client_id)",
		"CREATE INDEX IF NOT EXISTS idx_fi_requests_submitted_at ON fi_requests(submitted_at)",

		// Notification indexes
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_status ON notifications(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_tenant ON notifications(tenant_id)",

		// Audit log indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_tenant_created ON audit_logs(tenant_id, created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
