package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"willvault-auth/app/config"
	"willvault-auth/app/utils/database"
	"willvault-auth/app/utils/logger"
	"willvault-auth/app/utils/migration"
)

//go:embed migrations
var migrationsFS embed.FS

func main() {
	var (
		command = flag.String("command", "up", "Migration command (up, down, status)")
		steps   = flag.String("steps", "0", "Number of steps for down migration")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logLevel := cfg.LogLevel
	if *verbose {
		logLevel = "debug"
	}

	appLogger, err := logger.New(logLevel)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	// Create database connection
	dbConfig := &database.Config{
		Host:            cfg.DatabaseHost,
		Port:            parsePort(cfg.DatabasePort),
		User:            cfg.DatabaseUser,
		Password:        cfg.DatabasePassword,
		Database:        cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		ConnTimeout:     10 * time.Second,
	}

	dbConn, err := database.NewConnection(dbConfig, appLogger)
	if err != nil {
		appLogger.Error("Failed to create database connection", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create migrator
	migrator := migration.NewMigrator(dbConn.DB(), appLogger, migrationsFS)
	ctx := context.Background()

	// Execute command
	switch *command {
	case "up":
		applied, err := migrator.Up(ctx)
		if err != nil {
			appLogger.Error("Migration up failed", "error", err)
			os.Exit(1)
		}
		appLogger.Info("Migrations applied", "count", applied)

	case "down":
		stepCount, err := strconv.Atoi(*steps)
		if err != nil {
			appLogger.Error("Invalid steps value", "steps", *steps, "error", err)
			os.Exit(1)
		}

		rolledBack, err := migrator.Down(ctx, stepCount)
		if err != nil {
			appLogger.Error("Migration down failed", "error", err)
			os.Exit(1)
		}
		appLogger.Info("Migrations rolled back", "count", rolledBack)

	case "status":
		if err := printStatus(ctx, migrator, appLogger); err != nil {
			appLogger.Error("Migration status failed", "error", err)
			os.Exit(1)
		}

	default:
		appLogger.Error("Unknown command", "command", *command)
		fmt.Println("Available commands: up, down, status")
		os.Exit(1)
	}
}

func printStatus(ctx context.Context, migrator *migration.Migrator, log *slog.Logger) error {
	// Pending creates the tracking table on a fresh database, so it
	// runs first.
	pending, err := migrator.Pending(ctx)
	if err != nil {
		return err
	}
	applied, err := migrator.Applied(ctx)
	if err != nil {
		return err
	}

	for _, a := range applied {
		log.Info("Migration applied",
			"version", a.Version,
			"name", a.Name,
			"applied_at", a.AppliedAt.Format(time.RFC3339))
	}
	for _, p := range pending {
		log.Info("Migration pending", "version", p.Version, "name", p.Name)
	}
	return nil
}

func parsePort(portStr string) int {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 5432 // default PostgreSQL port
	}
	return port
}
