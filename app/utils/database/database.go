// Package database opens the database/sql connection the migration
// tool runs against. The service itself talks to PostgreSQL through
// pgx; this lib/pq connection exists only for schema management.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// Config holds the connection parameters for the migration connection.
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnTimeout     time.Duration
}

func (c *Config) dsn() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
		int(c.ConnTimeout.Seconds()),
	)
}

// Connection wraps the *sql.DB handed to the migrator.
type Connection struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewConnection opens and pings a connection using the given config.
func NewConnection(config *Config, logger *slog.Logger) (*Connection, error) {
	log := logger.With("component", "database")
	log.Info("connecting to database",
		"host", config.Host,
		"port", config.Port,
		"database", config.Database,
		"ssl_mode", config.SSLMode)

	db, err := sql.Open("postgres", config.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return &Connection{db: db, logger: log}, nil
}

// DB returns the underlying *sql.DB.
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Close closes the connection.
func (c *Connection) Close() error {
	if c.db == nil {
		return nil
	}
	c.logger.Info("closing database connection")
	return c.db.Close()
}
