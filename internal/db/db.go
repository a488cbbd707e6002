package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultBusyTimeout = 5 * time.Second
	// sqlite serializes writers.
	defaultMaxOpenConns = 1
)

// Options controls how the SQLite file behind the local portfolio store is opened.
type Options struct {
	Path         string
	Logger       logger.Interface
	BusyTimeout  time.Duration
	MaxOpenConns int
	ConnMaxIdle  time.Duration
}

// Open creates the parent directory of Path when missing and opens the database with
// WAL journaling, foreign keys and a busy timeout.
func Open(opts Options) (*gorm.DB, error) {
	if opts.Path == "" {
		return nil, eris.New("database path is required")
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = defaultBusyTimeout
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = defaultMaxOpenConns
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "creating database directory %s", dir)
		}
	}

	gormLogger := opts.Logger
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=1&_journal_mode=WAL",
		opts.Path, opts.BusyTimeout.Milliseconds())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, eris.Wrap(err, "opening sqlite database")
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, eris.Wrap(err, "retrieving sql.DB from gorm")
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	if opts.ConnMaxIdle > 0 {
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdle)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", opts.BusyTimeout.Milliseconds()),
		"PRAGMA journal_mode = WAL;",
	}
	for _, pragma := range pragmas {
		if err := database.Exec(pragma).Error; err != nil {
			_ = sqlDB.Close()
			return nil, eris.Wrapf(err, "applying %q", pragma)
		}
	}

	return database, nil
}

// Close releases the connection pool. A nil database is a no-op.
func Close(database *gorm.DB) error {
	if database == nil {
		return nil
	}
	sqlDB, err := SQLDB(database)
	if err != nil {
		return err
	}
	return eris.Wrap(sqlDB.Close(), "closing database connection")
}

// Ping reports whether the database answers. Used by the health endpoint.
func Ping(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := SQLDB(database)
	if err != nil {
		return err
	}
	return eris.Wrap(sqlDB.PingContext(ctx), "pinging sqlite database")
}

// SQLDB exposes the underlying *sql.DB.
func SQLDB(database *gorm.DB) (*sql.DB, error) {
	if database == nil {
		return nil, eris.New("gorm.DB is nil")
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, eris.Wrap(err, "retrieving sql.DB")
	}
	return sqlDB, nil
}
