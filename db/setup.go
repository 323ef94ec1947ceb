package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ublog-dev/ublog/internal/models"
)

// ConnectDatabase opens the postgres connection. TranslateError makes gorm
// surface unique-constraint violations as gorm.ErrDuplicatedKey.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// MigrateDatabase creates any missing tables for the blog's models.
func MigrateDatabase(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.Tag{},
		&models.ArticleTag{},
	}

	migrator := db.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := db.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
