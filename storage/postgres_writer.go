package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"flight-connection/migrations"
	"flight-connection/models"
	"flight-connection/utils"
)

// PostgresWriter stores estimate runs and their connections in PostgreSQL
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(ctx context.Context, connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// Migrate applies the embedded schema migrations
func (w *PostgresWriter) Migrate(ctx context.Context) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, w.db, migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		w.logger.Info("Applied migration %s (%s)", r.Source.Path, r.Duration)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	w.logger.Info("Schema is at version %d", version)
	return nil
}

// SaveEstimate inserts the run summary and every connection in a single transaction
func (w *PostgresWriter) SaveEstimate(ctx context.Context, est *models.Estimate) (err error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	s := est.Stats
	_, err = tx.ExecContext(ctx, `
		INSERT INTO estimate_runs (
			id, leg1_code, leg2_code, connection_airport, connection_count,
			avg_length_sec, avg_leg1_delay_sec, avg_leg2_delay_sec,
			min_length_sec, max_length_sec, tight_count, tight_threshold_sec, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		est.ID,
		est.Leg1Code,
		est.Leg2Code,
		est.ConnectionAirport(),
		s.Count,
		s.AvgLengthSec,
		s.AvgStartDelaySec,
		s.AvgEndDelaySec,
		s.MinLengthSec,
		s.MaxLengthSec,
		s.TightCount,
		s.TightThresholdSec,
		est.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert estimate run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO connections (
			run_id, arrival_scheduled, arrival_actual, departure_scheduled, departure_actual, length_sec
		) VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range est.Connections {
		_, err = stmt.ExecContext(ctx,
			est.ID,
			c.Start.ScheduledTime(),
			c.Start.ActualTime(),
			c.End.ScheduledTime(),
			c.End.ActualTime(),
			c.Length(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert connection: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.logger.Info("Stored run %s with %d connections in PostgreSQL", est.ID, len(est.Connections))
	return nil
}

// CountConnections returns the number of stored connections for a run
func (w *PostgresWriter) CountConnections(ctx context.Context, runID string) (int, error) {
	var n int
	err := w.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM connections WHERE run_id = $1`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count connections: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}
