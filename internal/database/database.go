// Package database provides PostgreSQL connection management. Records are
// stored as JSONB documents, one table per entity kind, with uniqueness
// enforced by database indexes (contact email, session refresh token).
package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquagrid/aquagrid/internal/config"
)

// Config holds database connection configuration.
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
}

// ConfigFromEnv creates a Config from environment variables. The user,
// password and database name are required; absence is fatal at startup.
func ConfigFromEnv() (Config, error) {
	user, err := config.Require("DB_USER")
	if err != nil {
		return Config{}, err
	}
	password, err := config.Require("DB_PASSWORD")
	if err != nil {
		return Config{}, err
	}
	name, err := config.Require("DB_NAME")
	if err != nil {
		return Config{}, err
	}

	port, _ := strconv.Atoi(config.GetOrDefault("DB_PORT", "5432"))
	maxOpen, _ := strconv.Atoi(config.GetOrDefault("DB_MAX_OPEN_CONNS", "10"))
	maxIdle, _ := strconv.Atoi(config.GetOrDefault("DB_MAX_IDLE_CONNS", "5"))
	lifetime, _ := time.ParseDuration(config.GetOrDefault("DB_CONN_MAX_LIFETIME", "5m"))

	return Config{
		Host:            config.GetOrDefault("DB_HOST", "localhost"),
		Port:            port,
		User:            user,
		Password:        password,
		Database:        name,
		SSLMode:         config.GetOrDefault("DB_SSL_MODE", "disable"),
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: lifetime,
	}, nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c Config) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// Connect creates a new database connection pool and verifies it with a
// ping.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns) //nolint:gosec // bounded by config
	poolConfig.MinConns = int32(cfg.MaxIdleConns) //nolint:gosec // bounded by config
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
