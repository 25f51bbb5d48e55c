// Package storage writes job records as spreadsheet-like files and reads
// them back.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperrors "go-career-scraper/internal/errors"
	"go-career-scraper/internal/models"

	"go.uber.org/zap"
)

const DefaultFileName = "job_postings.xlsx"

// Sink is a destination for a finished batch. Store returns how many
// records were written.
type Sink interface {
	Store(ctx context.Context, records []models.JobRecord) (int, error)
	Name() string
}

// Dedup keeps the first record of every (job_title, company_name) pair.
func Dedup(records []models.JobRecord) []models.JobRecord {
	seen := make(map[[2]string]bool, len(records))
	unique := make([]models.JobRecord, 0, len(records))
	for _, r := range records {
		key := r.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, r)
	}
	return unique
}

// FileNameFor names the output of a single career page, jobs_<host>.xlsx.
func FileNameFor(careerURL string) string {
	u, err := url.Parse(careerURL)
	if err != nil || u.Host == "" {
		return DefaultFileName
	}
	return fmt.Sprintf("jobs_%s.xlsx", u.Host)
}

type format string

const (
	formatXLSX format = ".xlsx"
	formatCSV  format = ".csv"
	formatJSON format = ".json"
)

func formatOf(path string) (format, error) {
	switch f := format(strings.ToLower(filepath.Ext(path))); f {
	case formatXLSX, formatCSV, formatJSON:
		return f, nil
	default:
		return "", apperrors.InvalidInput(fmt.Sprintf("unsupported output format %q (want .xlsx, .csv or .json)", filepath.Ext(path)), nil)
	}
}

// Save deduplicates records and writes them to path, the extension picking
// the format. An empty input writes nothing and is not an error.
func Save(records []models.JobRecord, path string, logger *zap.Logger) (int, error) {
	if len(records) == 0 {
		logger.Warn("no jobs to save", zap.String("path", path))
		return 0, nil
	}

	f, err := formatOf(path)
	if err != nil {
		return 0, err
	}

	unique := Dedup(records)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, apperrors.Persistence(fmt.Sprintf("create %s", dir), err)
		}
	}

	switch f {
	case formatXLSX:
		err = writeXLSX(path, unique)
	case formatCSV:
		err = writeCSV(path, unique)
	case formatJSON:
		err = writeJSON(path, unique)
	}
	if err != nil {
		return 0, apperrors.Persistence(fmt.Sprintf("write %s", path), err)
	}

	logger.Info("saved jobs", zap.String("path", path), zap.Int("count", len(unique)), zap.Int("duplicates", len(records)-len(unique)))
	return len(unique), nil
}

// Load reads records written by Save.
func Load(path string) ([]models.JobRecord, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	switch f {
	case formatXLSX:
		return readXLSX(path)
	case formatCSV:
		return readCSV(path)
	default:
		return readJSON(path)
	}
}

// FileSink is a Sink accumulating every stored batch in one file. It is
// safe for concurrent use.
type FileSink struct {
	Path   string
	Logger *zap.Logger

	mu sync.Mutex
}

// Store merges records into the rows already in the file and rewrites it.
// It returns how many rows were added.
func (s *FileSink) Store(_ context.Context, records []models.JobRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing []models.JobRecord
	if _, err := os.Stat(s.Path); err == nil {
		if existing, err = Load(s.Path); err != nil {
			return 0, apperrors.Persistence(fmt.Sprintf("read %s", s.Path), err)
		}
	}
	existing = Dedup(existing)

	merged := make([]models.JobRecord, 0, len(existing)+len(records))
	merged = append(merged, existing...)
	merged = append(merged, records...)

	n, err := Save(merged, s.Path, s.Logger)
	if err != nil {
		return 0, err
	}
	return n - len(existing), nil
}

func (s *FileSink) Name() string {
	return "file:" + s.Path
}
