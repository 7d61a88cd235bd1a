package database

import (
	"context"
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	"moviehub/internal/config"
	"moviehub/internal/microservices/http-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryDSN opens a private in-memory sqlite database
const MemoryDSN = ":memory:"

// ConnectDB opens the database selected by cfg.DBDriver and migrates the schema.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	logLevel := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := open(dialector, logLevel)
	if err != nil {
		return nil, err
	}

	// in-memory sqlite lives and dies with a single connection
	if cfg.DBDriver == "sqlite" && cfg.SQLitePath == MemoryDSN {
		if err := pinSingleConn(db); err != nil {
			Close(db)
			return nil, err
		}
	}

	if err := runMigrations(db, logger); err != nil {
		Close(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully", "driver", cfg.DBDriver)
	return db, nil
}

// OpenMemory returns a migrated in-memory sqlite database, used by tests and local runs.
func OpenMemory() (*gorm.DB, error) {
	db, err := open(sqlite.Open(MemoryDSN), gormlogger.Silent)
	if err != nil {
		return nil, err
	}
	if err := pinSingleConn(db); err != nil {
		Close(db)
		return nil, err
	}
	if err := db.AutoMigrate(&models.Movie{}); err != nil {
		Close(db)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return db, nil
}

// Ping verifies the connection is still usable
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func open(dialector gorm.Dialector, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Ping(ctx, db); err != nil {
		// close the pool if ping fails to avoid resource leak
		Close(db)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func pinSingleConn(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
	return nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(&models.Movie{}); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("Database migrations applied successfully")
	return nil
}
