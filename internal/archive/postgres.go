package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/domain"
)

const DefaultTable = "job_snapshots"

// PostgresIndexer upserts job snapshots into PostgreSQL
type PostgresIndexer struct {
	db        *sql.DB
	tableName string
	logger    *zap.Logger
	now       func() time.Time
}

// NewPostgresIndexer connects and creates the table if needed
func NewPostgresIndexer(ctx context.Context, connStr, tableName string, logger *zap.Logger) (*PostgresIndexer, error) {
	if tableName == "" {
		tableName = DefaultTable
	}
	if err := validName("table", tableName); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	indexer := &PostgresIndexer{db: db, tableName: tableName, logger: logger, now: time.Now}
	if err := indexer.ensureTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure table: %w", err)
	}
	return indexer, nil
}

func (i *PostgresIndexer) ensureTable(ctx context.Context) error {
	_, err := i.db.ExecContext(ctx, createTableQuery(i.tableName))
	return err
}

func createTableQuery(table string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			company_logo_url TEXT,
			rating DOUBLE PRECISION,
			employment_type TEXT,
			location TEXT,
			package_per_annum TEXT,
			job_description TEXT,
			captured_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`, table)
}

func upsertQuery(table string) string {
	return fmt.Sprintf(`
		INSERT INTO %s (
			id, title, company_logo_url, rating, employment_type,
			location, package_per_annum, job_description, captured_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			company_logo_url = EXCLUDED.company_logo_url,
			rating = EXCLUDED.rating,
			employment_type = EXCLUDED.employment_type,
			location = EXCLUDED.location,
			package_per_annum = EXCLUDED.package_per_annum,
			job_description = EXCLUDED.job_description,
			captured_at = EXCLUDED.captured_at,
			updated_at = NOW()
	`, table)
}

// BulkIndex upserts all jobs in one transaction. A failing row is
// logged and skipped.
func (i *PostgresIndexer) BulkIndex(ctx context.Context, jobs []domain.JobSummary) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertQuery(i.tableName))
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, doc := range documents(jobs, i.now()) {
		_, err := stmt.ExecContext(ctx,
			doc.ID, doc.Title, doc.CompanyLogoURL, doc.Rating, doc.EmploymentType,
			doc.Location, doc.PackagePerAnnum, doc.JobDescription, doc.CapturedAt,
		)
		if err != nil {
			i.logger.Warn("index job", zap.String("job_id", doc.ID), zap.Error(err))
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection
func (i *PostgresIndexer) Close() error {
	return i.db.Close()
}
