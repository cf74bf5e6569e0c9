package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
	"github.com/zatekoja/surgicalbooking/pkg/config"
	"github.com/zatekoja/surgicalbooking/pkg/retry"
)

// Client represents a PostgreSQL database client
type Client struct {
	db *sql.DB
}

// NewClient creates a new PostgreSQL client with exponential backoff retry
func NewClient(cfg *config.DatabaseConfig) (*Client, error) {
	db, err := sql.Open("postgres", cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger := observability.GetLogger()
	retryConfig := retry.DefaultConfig()
	retryConfig.Name = "PostgreSQL"
	retryConfig.OnRetry = func(attempt int, err error, nextDelay time.Duration) {
		logger.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).Msg("PostgreSQL connection attempt failed")
	}

	err = retry.Do(context.Background(), retryConfig, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL after retries: %w", err)
	}

	logger.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("Successfully connected to PostgreSQL")
	return &Client{db: db}, nil
}

// NewClientFromDB wraps an already opened database handle
func NewClientFromDB(db *sql.DB) *Client {
	return &Client{db: db}
}

// DB returns the underlying database connection
func (c *Client) DB() *sql.DB {
	return c.db
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// BeginTx starts a new transaction
func (c *Client) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}

// Ping verifies the connection to the database
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
