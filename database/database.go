package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jamesabinibi/trybe-pos/models"
)

type Config struct {
	Driver string // "sqlite" (default) or "postgres"
	DSN    string
}

// Open builds a gorm session for the configured backend. Postgres runs over
// a database/sql pool opened with lib/pq so the pool limits live in one
// place; sqlite is the local-dev default.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		sqlDB.SetMaxIdleConns(8)
		sqlDB.SetMaxOpenConns(30)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	case "sqlite", "":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "trybe.db"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every model the server owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Variant{},
		&models.Staff{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Notification{},
	)
}
