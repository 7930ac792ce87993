package migration

import (
	"campuscook/domain"
	"campuscook/entities"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// extensions lists per-dialect setup statements run before AutoMigrate.
var extensions = map[string][]string{
	"postgres": {`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`},
}

func Migrate(db *gorm.DB) error {
	createExtensions(db, extensions[db.Dialector.Name()])

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"category", &entities.Category{}},
		{"recipe", &entities.Recipe{}},
		{"rating", &entities.Rating{}},
		{"favorite", &entities.Favorite{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("migrating %s table: %w", m.name, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}

// createExtensions reports how many statements failed. IDs are generated in
// Go, so a missing extension is logged and migration carries on.
func createExtensions(db *gorm.DB, statements []string) int {
	failed := 0
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Warnf("Error creating database extension (%s): %v", stmt, err)
			failed++
		}
	}
	return failed
}

// SeedCategories inserts every default category whose name is missing.
func SeedCategories(ctx context.Context, db *gorm.DB) error {
	for _, seed := range domain.DefaultCategories {
		var count int64
		if err := db.WithContext(ctx).
			Model(&entities.Category{}).
			Where("name = ?", seed.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		category := entities.Category{
			ID:          uuid.New(),
			Name:        seed.Name,
			Description: seed.Description,
		}
		if err := db.WithContext(ctx).Create(&category).Error; err != nil {
			return fmt.Errorf("seeding category %s: %w", seed.Name, err)
		}
		log.Infof("seeded category %s", seed.Name)
	}
	return nil
}
