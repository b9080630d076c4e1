package db

import (
	"github.com/bloghub-dev/bloghub/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database once at startup. The handle is passed to the
// router and handlers explicitly, never reached through package state.
func Connect(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	return database, nil
}

// Migrate creates missing tables for the resource models.
func Migrate(database *gorm.DB) error {
	resources := []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
	}

	migrator := database.Migrator()

	for _, resource := range resources {
		if !migrator.HasTable(resource) {
			if err := database.AutoMigrate(resource); err != nil {
				return err
			}
		}
	}

	return nil
}

// Close releases the underlying connection pool at shutdown.
func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}
