package storage

import (
	"fmt"
	"strings"
	"time"

	"gudang/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config selects the relational store backing the application.
type Config struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
	Logger logrus.FieldLogger
}

// Gateway owns the connection to the single relational store.
type Gateway struct {
	db     *gorm.DB
	driver string
}

// Open connects to the store described by cfg. The caller must Close the
// returned Gateway on every exit path.
func Open(cfg Config) (*Gateway, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	gormCfg := &gorm.Config{TranslateError: true}
	if cfg.Logger != nil {
		gormCfg.Logger = gormlogger.New(cfg.Logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	} else {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite handle: %w", err)
		}
		// SQLite allows one writer; a single connection keeps transactions serial.
		sqlDB.SetMaxOpenConns(1)
	}

	return &Gateway{db: db, driver: cfg.Driver}, nil
}

// sqliteDSN adds the connection options the store relies on unless the
// caller already set them. Immediate transactions take the write lock at
// BEGIN, so a second process waits on the busy timeout instead of failing
// when both try to upgrade a read lock.
func sqliteDSN(dsn string) string {
	options := []struct{ key, value string }{
		{"_busy_timeout", "5000"},
		{"_txlock", "immediate"},
		{"_foreign_keys", "on"},
	}
	for _, opt := range options {
		if strings.Contains(dsn, opt.key+"=") {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + opt.key + "=" + opt.value
	}
	return dsn
}

// DB returns the GORM handle for repositories.
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

// Driver reports which backend the gateway is connected to.
func (g *Gateway) Driver() string {
	return g.driver
}

// EnsureSchema creates the products, sales and users tables if they are
// absent and records the schema version. It is safe to call repeatedly.
func (g *Gateway) EnsureSchema() error {
	if err := g.db.AutoMigrate(&models.SchemaVersion{}); err != nil {
		return fmt.Errorf("failed to migrate schema_versions: %w", err)
	}

	var latest models.SchemaVersion
	if err := g.db.Order("version desc").Limit(1).Find(&latest).Error; err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if latest.Version > models.CurrentSchemaVersion {
		return fmt.Errorf("store schema version %d is newer than supported version %d", latest.Version, models.CurrentSchemaVersion)
	}

	if err := g.db.AutoMigrate(&models.Product{}, &models.Sale{}, &models.User{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if latest.Version < models.CurrentSchemaVersion {
		version := models.SchemaVersion{Version: models.CurrentSchemaVersion, AppliedAt: time.Now().UTC()}
		if err := g.db.Create(&version).Error; err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
