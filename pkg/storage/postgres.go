package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/opscart/avd-business-case/pkg/models"
)

//go:embed migrations/*.sql
var postgresFS embed.FS

const runColumns = `id, company_name, total_users, annual_value, payback_months, year3_roi,
			parallelized_weeks, validity_weeks, formats, placeholders, draw_failures, created_at`

// PostgresStore implements Store interface using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, pings and migrates
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := NewPostgresStoreFromDB(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// NewPostgresStoreFromDB wraps an open handle; the caller owns the schema
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the embedded schema
func (s *PostgresStore) Migrate(ctx context.Context) error {
	schema, err := postgresFS.ReadFile("migrations/001_schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// SaveRun archives one generated business case
func (s *PostgresStore) SaveRun(ctx context.Context, run *models.ReportRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO report_runs (` + runColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var validity *int64
	if run.Validity != nil {
		v := int64(*run.Validity)
		validity = &v
	}

	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.CompanyName, run.TotalUsers,
		run.AnnualValue, run.PaybackMonths, run.Year3ROI,
		run.ParallelizedWeeks, validity, pq.Array(run.Formats),
		run.Placeholders, run.DrawFailures, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *PostgresStore) GetRun(ctx context.Context, id string) (*models.ReportRun, error) {
	query := `SELECT ` + runColumns + ` FROM report_runs WHERE id = $1`

	run, err := scanRun(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the newest runs, optionally for one company
func (s *PostgresStore) ListRuns(ctx context.Context, company string, limit int) ([]*models.ReportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + runColumns + `
		FROM report_runs
		WHERE ($1 = '' OR company_name = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, company, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ReportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunStats aggregates one company's runs over the last days
func (s *PostgresStore) GetRunStats(ctx context.Context, company string, days int) (*models.RunStats, error) {
	if days <= 0 {
		days = 30
	}
	query := `
		SELECT COUNT(*), COALESCE(AVG(annual_value), 0), AVG(payback_months), MAX(created_at)
		FROM report_runs
		WHERE company_name = $1 AND created_at >= $2
	`

	since := time.Now().AddDate(0, 0, -days)
	stats := &models.RunStats{CompanyName: company, PeriodDays: days}
	var payback sql.NullFloat64
	var latest sql.NullTime

	err := s.db.QueryRowContext(ctx, query, company, since).Scan(
		&stats.TotalRuns, &stats.AvgAnnualValue, &payback, &latest,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate runs: %w", err)
	}

	if payback.Valid {
		stats.AvgPaybackMonths = &payback.Float64
	}
	if latest.Valid {
		stats.LatestRun = &latest.Time
	}
	return stats, nil
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.ReportRun, error) {
	var run models.ReportRun
	var annual, payback, roi sql.NullFloat64
	var validity sql.NullInt64

	err := row.Scan(
		&run.ID, &run.CompanyName, &run.TotalUsers,
		&annual, &payback, &roi,
		&run.ParallelizedWeeks, &validity, pq.Array(&run.Formats),
		&run.Placeholders, &run.DrawFailures, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if annual.Valid {
		run.AnnualValue = &annual.Float64
	}
	if payback.Valid {
		run.PaybackMonths = &payback.Float64
	}
	if roi.Valid {
		run.Year3ROI = &roi.Float64
	}
	if validity.Valid {
		v := int(validity.Int64)
		run.Validity = &v
	}
	return &run, nil
}
