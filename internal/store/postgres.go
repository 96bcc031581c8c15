package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose
	"github.com/pressly/goose/v3"

	"github.com/paystream-demos/advance-app/internal/advance"
	"github.com/paystream-demos/advance-app/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// PostgresStore persists loans in PostgreSQL. Loan records are stored as
// jsonb alongside the request fingerprint.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL with the configured pool settings,
// runs any pending migrations, and verifies connectivity.
func NewPostgresStore(ctx context.Context, cfg *config.ServerEnvironment, logger *slog.Logger) (*PostgresStore, error) {
	if err := runMigrations(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConnections
	poolConfig.MinConns = cfg.DBMinConnections
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.DBConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	logger.Info("connected to PostgreSQL")

	return &PostgresStore{pool: pool}, nil
}

// runMigrations applies the embedded goose migrations through database/sql
// (goose does not speak pgx's native interface).
func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

func (s *PostgresStore) Create(ctx context.Context, loan advance.Loan) error {
	id, err := uuid.Parse(loan.LoanID)
	if err != nil {
		return fmt.Errorf("invalid loan ID %q: %w", loan.LoanID, err)
	}

	record, err := json.Marshal(loan)
	if err != nil {
		return fmt.Errorf("failed to marshal loan record: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO loans (id, fingerprint, record) VALUES ($1, $2, $3)`,
		id, loan.Fingerprint, record,
	)
	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, loanID string) (advance.Loan, error) {
	id, err := uuid.Parse(loanID)
	if err != nil {
		// a malformed ID can never match a stored loan
		return advance.Loan{}, ErrLoanNotFound
	}

	var record []byte
	var fingerprint string
	err = s.pool.QueryRow(ctx,
		`SELECT record, fingerprint FROM loans WHERE id = $1`, id,
	).Scan(&record, &fingerprint)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.Loan{}, ErrLoanNotFound
		}
		return advance.Loan{}, fmt.Errorf("failed to query loan: %w", err)
	}

	return unmarshalLoan(record, fingerprint)
}

func (s *PostgresStore) GetByFingerprint(ctx context.Context, fingerprint string) (advance.Loan, error) {
	var record []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM loans WHERE fingerprint = $1 ORDER BY created_at LIMIT 1`,
		fingerprint,
	).Scan(&record)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.Loan{}, ErrLoanNotFound
		}
		return advance.Loan{}, fmt.Errorf("failed to query loan by fingerprint: %w", err)
	}

	return unmarshalLoan(record, fingerprint)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func unmarshalLoan(record []byte, fingerprint string) (advance.Loan, error) {
	var loan advance.Loan
	if err := json.Unmarshal(record, &loan); err != nil {
		return advance.Loan{}, fmt.Errorf("failed to unmarshal loan record: %w", err)
	}
	loan.Fingerprint = fingerprint
	return loan, nil
}
