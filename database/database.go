package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"spscan/logging"

	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path              string        `env:"DB_PATH" default:"./spscan.db"`
	MaxOpenConns      int           `env:"DB_MAX_OPEN_CONNS" default:"10"`
	ConnMaxLifetime   time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"1h"`
	BusyTimeoutMs     int           `env:"DB_BUSY_TIMEOUT_MS" default:"5000"`
	EnableForeignKeys bool          `env:"DB_ENABLE_FOREIGN_KEYS" default:"true"`
	EnableWAL         bool          `env:"DB_ENABLE_WAL" default:"true"`
}

// Database wraps the SQL connection and provides managed access
type Database struct {
	db     *sql.DB
	config Config
	logger *logging.Logger
}

// New opens the scan-history database, applies pragmas, and runs migrations.
func New(config Config, logger *logging.Logger) (*Database, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dsn := buildDSN(config)
	dbExists := checkDatabaseExists(config.Path)

	logger.Database("Opening database connection",
		"path", config.Path,
		"exists", dbExists,
		"max_open_conns", config.MaxOpenConns)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	database := &Database{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	logger.Database("Database initialized",
		"path", config.Path,
		"existed", dbExists,
		"wal_mode", config.EnableWAL)

	return database, nil
}

// Conn exposes the underlying connection pool.
func (d *Database) Conn() *sql.DB {
	return d.db
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// buildDSN constructs the SQLite Data Source Name with pragma parameters
// in the form the modernc driver understands.
func buildDSN(config Config) string {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", config.Path, config.BusyTimeoutMs)
	if config.EnableWAL {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	if config.EnableForeignKeys {
		dsn += "&_pragma=foreign_keys(1)"
	}
	return dsn
}

// checkDatabaseExists reports whether a database file already exists at path.
// In-memory databases never exist beforehand.
func checkDatabaseExists(path string) bool {
	if path == "" || path == ":memory:" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
