package db

import (
	"fmt"
	"os"

	"portfolio/internal/config"
	"portfolio/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	// DATABASE_URL があれば最優先で使う
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort,
		cfg.PostgresUser, cfg.PostgresPassword,
		cfg.PostgresDB, cfg.PostgresSSLMode,
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate はスキーマを最新化する。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.SocialLink{},
		&model.BlogPost{},
		&model.Project{},
		&model.Comment{},
		&model.ContactMessage{},
	)
}
