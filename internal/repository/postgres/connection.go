package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"homeground/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Principals     string
	Properties     string
	Projects       string
	ProjectUpdates string
	ProjectOffers  string
	ProjectEvents  string
	Members        string
	Threads        string
	Messages       string
	Payments       string
}

// NewTableNames creates table names with the given prefix. Each
// environment (dev_, test_, prod_) gets its own table set in the same
// database.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Principals:     prefix + "principals",
		Properties:     prefix + "properties",
		Projects:       prefix + "projects",
		ProjectUpdates: prefix + "project_updates",
		ProjectOffers:  prefix + "project_offers",
		ProjectEvents:  prefix + "project_events",
		Members:        prefix + "members",
		Threads:        prefix + "threads",
		Messages:       prefix + "messages",
		Payments:       prefix + "payments",
	}
}

// CreateConnectionPool creates a pgx connection pool.
//
// Supabase's transaction pooler (port 6543) does not support prepared
// statements, so when that port is detected the pool switches to
// QueryExecModeCacheDescribe, which uses the extended protocol without
// creating server-side prepared statements. An explicit
// default_query_exec_mode in the connection string takes precedence.
//
// Interpolating table prefixes with fmt.Sprintf is safe alongside
// statement caching: the SQL text is fixed before it reaches the
// server, and each environment's statements are distinct.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction from the context when one is
// present, the pool otherwise, so repositories automatically
// participate in surrounding transactions.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
