package database

import (
	"fmt"
	"time"

	"helpdesk/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database selected by dsn and applies migrations.
// An empty dsn opens an in-memory sqlite database, so all state is lost
// when the process exits; a non-empty dsn is treated as postgres.
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if dsn == "" {
		log.Info("using in-memory sqlite database")
		db, err = gorm.Open(sqlite.Open(":memory:"), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		// The whole :memory: database lives in a single connection;
		// a second pooled connection would see an empty schema.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get database instance: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	} else {
		const maxAttempts = 10
		for i := 1; i <= maxAttempts; i++ {
			log.Info("connecting to postgres", zap.Int("attempt", i), zap.Int("max_attempts", maxAttempts))
			db, err = gorm.Open(postgres.Open(dsn), gormCfg)
			if err == nil {
				break
			}
			log.Warn("failed to connect", zap.Error(err))
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("connect to postgres after %d attempts: %w", maxAttempts, err)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Ticket{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedAdmin creates the initial admin account if no admin exists yet.
func SeedAdmin(db *gorm.DB, username, password string, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Info("created default admin user", zap.String("username", username))
	return nil
}
