package database

import (
	"context"
	"fmt"
	"time"

	"go-career-scraper/internal/models"
	"go-career-scraper/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_postings (
	id               UUID PRIMARY KEY,
	company_name     TEXT NOT NULL,
	job_title        TEXT NOT NULL,
	work_location    TEXT NOT NULL,
	job_location     TEXT NOT NULL,
	experience       TEXT NOT NULL,
	job_description  TEXT NOT NULL,
	responsibilities TEXT NOT NULL,
	qualifications   TEXT NOT NULL,
	apply_link       TEXT NOT NULL,
	scraped_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (job_title, company_name)
)`

const insertPosting = `
INSERT INTO job_postings (id, company_name, job_title, work_location, job_location, experience,
	job_description, responsibilities, qualifications, apply_link)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT DO NOTHING`

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// PgBouncer in transaction mode cannot hold prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// EnsureSchema creates the job_postings table when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create job_postings: %w", err)
	}
	return nil
}

// PostingID derives a stable id from the posting's apply link.
func PostingID(rec models.JobRecord) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(rec.ApplyLink))
}

// SaveRecords inserts the deduplicated records in one transaction and
// returns how many rows were new.
func (r *Repository) SaveRecords(ctx context.Context, records []models.JobRecord) (int, error) {
	unique := storage.Dedup(records)
	if len(unique) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, rec := range unique {
		tag, err := tx.Exec(ctx, insertPosting,
			PostingID(rec), rec.CompanyName, rec.JobTitle, rec.WorkLocation, rec.JobLocation,
			rec.Experience, rec.JobDescription, rec.Responsibilities, rec.Qualifications, rec.ApplyLink)
		if err != nil {
			return 0, fmt.Errorf("failed to save posting %s: %w", rec.ApplyLink, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit postings: %w", err)
	}
	return inserted, nil
}

// Store makes the repository a storage.Sink.
func (r *Repository) Store(ctx context.Context, records []models.JobRecord) (int, error) {
	return r.SaveRecords(ctx, records)
}

func (r *Repository) Name() string {
	return "postgres"
}
