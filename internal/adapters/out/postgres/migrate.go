package postgres

import (
	"fmt"

	"ftl/internal/adapters/out/postgres/accountrepo"
	"ftl/internal/adapters/out/postgres/publicationrepo"
	"ftl/internal/adapters/out/postgres/settingrepo"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to PostgreSQL. Unique-key violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the adapters use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountrepo.UserDTO{},
		&accountrepo.IdentityDTO{},
		&accountrepo.AddressDTO{},
		&settingrepo.SettingDTO{},
		&publicationrepo.PublicationDTO{},
	)
}

// DSN builds a PostgreSQL connection string.
func DSN(host, port, user, password, name, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, name, sslMode)
}
