package database

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds configuration for a database connection.
// Supports both PostgreSQL and SQLite.
type Config struct {
	Driver string // "postgres" or "sqlite"

	// DSN, when set, is passed to the driver as-is and the fields below
	// are ignored.
	DSN string

	// PostgreSQL config
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	// SQLite config
	Path string // e.g., "ids.db" or ":memory:"

	// Connection pool settings
	MaxIdleConns    int           // Maximum idle connections in pool (default: 10)
	MaxOpenConns    int           // Maximum open connections (default: 25)
	ConnMaxLifetime time.Duration // Maximum connection lifetime (default: 5 minutes)
	ConnMaxIdleTime time.Duration // Maximum connection idle time (default: 10 minutes)
}

// dialector returns the gorm dialector for the configured driver.
func (cfg Config) dialector() (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		dsn := cfg.DSN
		if dsn == "" {
			sslMode := cfg.SSLMode
			if sslMode == "" {
				sslMode = "disable"
			}
			dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				cfg.Host,
				cfg.Port,
				cfg.User,
				cfg.Password,
				cfg.DBName,
				sslMode,
			)
		}
		return postgres.Open(dsn), nil

	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = cfg.Path
		}
		if dsn == "" {
			return nil, fmt.Errorf("sqlite requires a path or dsn")
		}
		return sqlite.Open(dsn), nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s (must be 'postgres' or 'sqlite')", cfg.Driver)
	}
}

// Connect establishes a database connection using the provided configuration.
// A nil logger silences gorm.
func Connect(cfg Config, log hclog.Logger) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	// Create GORM config with optional logger
	gormConfig := &gorm.Config{}
	if log != nil {
		gormConfig.Logger = NewGormLogger(log.Named("gorm"))
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	// Apply connection pool settings with sensible defaults
	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = 10
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)

	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns == 0 {
		maxOpenConns = 25
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)

	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	connMaxIdleTime := cfg.ConnMaxIdleTime
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	if log != nil {
		log.Debug("connected to database",
			"driver", cfg.Driver,
			"host", cfg.Host,
			"database", cfg.DBName,
			"path", cfg.Path,
			"max_idle_conns", maxIdleConns,
			"max_open_conns", maxOpenConns,
		)
	}

	return db, nil
}

// PoolStats holds database connection pool statistics.
type PoolStats struct {
	MaxOpenConnections int           // Maximum number of open connections to the database
	OpenConnections    int           // The number of established connections both in use and idle
	InUse              int           // The number of connections currently in use
	Idle               int           // The number of idle connections
	WaitCount          int64         // The total number of connections waited for
	WaitDuration       time.Duration // The total time blocked waiting for a new connection
}

// GetPoolStats returns connection pool statistics from a GORM DB instance.
func GetPoolStats(db *gorm.DB) (*PoolStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	stats := sqlDB.Stats()
	return &PoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}, nil
}

// gormHclogAdapter adapts hclog.Logger to gorm.logger.Interface.
type gormHclogAdapter struct {
	logger hclog.Logger
	level  logger.LogLevel
}

// NewGormLogger creates a new GORM logger that uses hclog.
func NewGormLogger(log hclog.Logger) logger.Interface {
	return &gormHclogAdapter{
		logger: log,
		level:  logger.Warn,
	}
}

// LogMode sets the log level for GORM queries.
func (g *gormHclogAdapter) LogMode(level logger.LogLevel) logger.Interface {
	return &gormHclogAdapter{
		logger: g.logger,
		level:  level,
	}
}

func (g *gormHclogAdapter) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Info && g.logger != nil {
		g.logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (g *gormHclogAdapter) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Warn && g.logger != nil {
		g.logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (g *gormHclogAdapter) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Error && g.logger != nil {
		g.logger.Error(fmt.Sprintf(msg, data...))
	}
}

// Trace logs SQL statements. Failed and slow (>200ms) statements are logged
// at error and warn; everything else at debug.
func (g *gormHclogAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent || g.logger == nil {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && g.level >= logger.Error:
		g.logger.Error("database query failed",
			"error", err,
			"elapsed", elapsed,
			"rows", rows,
			"sql", sql,
		)
	case elapsed > 200*time.Millisecond && g.level >= logger.Warn:
		g.logger.Warn("slow database query",
			"elapsed", elapsed,
			"rows", rows,
			"sql", sql,
		)
	case g.level >= logger.Info:
		g.logger.Debug("database query",
			"elapsed", elapsed,
			"rows", rows,
			"sql", sql,
		)
	}
}
