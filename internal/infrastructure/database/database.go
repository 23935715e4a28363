package database

import (
	"fmt"
	"log"

	"github.com/sangkips/receipt-engine/internal/config"
	"github.com/sangkips/receipt-engine/internal/domain/entity"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database selected by cfg.Driver ("postgres" or "mysql")
func Open(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q (use postgres or mysql)", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Printf("Successfully connected to %s database", db.Dialector.Name())
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Receipt settings
		&entity.PrintProfile{},

		// Transaction source
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.SaleTaxLine{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the named default print profile when it is missing.
// It stores no overrides, so it always resolves to the built-in defaults.
func SeedDefaultData(db *gorm.DB, profileName string) error {
	log.Println("Seeding default data...")

	if profileName == "" {
		profileName = entity.DefaultProfileName
	}

	var existing entity.PrintProfile
	err := db.Where("name = ?", profileName).First(&existing).Error
	if err == nil {
		log.Printf("Print profile already exists: %s", profileName)
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to look up print profile %s: %w", profileName, err)
	}

	if err := db.Create(&entity.PrintProfile{Name: profileName}).Error; err != nil {
		return fmt.Errorf("failed to create print profile %s: %w", profileName, err)
	}
	log.Printf("Print profile created: %s", profileName)

	log.Println("Default data seeding completed")
	return nil
}
