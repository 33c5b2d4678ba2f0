package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/kanbanflow/internal/config"
	"github.com/yukikurage/kanbanflow/internal/logging"
)

// Gateway owns the single shared handle to the storage engine. The handle is
// opened and migrated on first use; the outcome of that first open, handle or
// error, is kept for the life of the gateway.
type Gateway struct {
	open func() (*gorm.DB, error)

	once sync.Once
	db   *gorm.DB
	err  error
}

// NewGateway creates a gateway that calls open on first access
func NewGateway(open func() (*gorm.DB, error)) *Gateway {
	return &Gateway{open: open}
}

// FromDB wraps an already opened and migrated handle
func FromDB(db *gorm.DB) *Gateway {
	g := &Gateway{}
	g.once.Do(func() { g.db = db })
	return g
}

// Open builds a lazily-connecting gateway from configuration
func Open(cfg *config.Config, log logrus.FieldLogger) *Gateway {
	return NewGateway(func() (*gorm.DB, error) {
		dialector, err := Dialector(cfg)
		if err != nil {
			return nil, err
		}
		return Connect(dialector, LogLevel(cfg.DBLogLevel), log)
	})
}

// Memory returns a gateway over a private in-memory sqlite database
func Memory() *Gateway {
	return NewGateway(func() (*gorm.DB, error) {
		return Connect(sqlite.Open(":memory:"), logger.Silent, logging.Discard())
	})
}

// DB returns the shared handle bound to ctx, opening it on first call
func (g *Gateway) DB(ctx context.Context) (*gorm.DB, error) {
	g.once.Do(func() {
		g.db, g.err = g.open()
	})
	if g.err != nil {
		return nil, g.err
	}
	return g.db.WithContext(ctx), nil
}

// Close releases the connection pool if the handle was ever opened
func (g *Gateway) Close() error {
	if g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dialector selects the gorm dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.Open(cfg.DBPath), nil
	case "postgres":
		port := cfg.DBPort
		if port == "" {
			port = "5432"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			port,
		)
		return postgres.Open(dsn), nil
	case "mysql":
		port := cfg.DBPort
		if port == "" {
			port = "3306"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			port,
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// LogLevel maps a config level name onto gorm's logger levels
func LogLevel(name string) logger.LogLevel {
	switch name {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Connect opens the engine and brings the schema to CurrentSchemaVersion
func Connect(dialector gorm.Dialector, level logger.LogLevel, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialector.Name() == "sqlite" {
		// one connection keeps writes serialized and ":memory:" databases alive
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.WithField("driver", dialector.Name()).Info("Database connection established")

	if err := Migrate(db, CurrentSchemaVersion, log); err != nil {
		return nil, err
	}
	return db, nil
}
