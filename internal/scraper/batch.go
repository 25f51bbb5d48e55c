package scraper

import (
	"context"

	"go-career-scraper/internal/config"
	"go-career-scraper/internal/extractor"
	"go-career-scraper/internal/models"

	"go.uber.org/zap"
)

// TargetResult summarises one career page of a batch.
type TargetResult struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// Batch accumulates the records of several career pages.
type Batch struct {
	Records []models.JobRecord `json:"records"`
	Targets []TargetResult     `json:"targets"`
}

func (b *Batch) add(url string, records []models.JobRecord) {
	b.Records = append(b.Records, records...)
	b.Targets = append(b.Targets, TargetResult{URL: url, Count: len(records)})
}

// Opener starts a scraping session for one target.
type Opener func(t config.Target) *Scraper

// ScrapeAll scrapes every target in order, each with its own session that
// is closed before the next target starts. It stops early only when ctx is
// done, returning what was gathered so far.
func ScrapeAll(ctx context.Context, targets []config.Target, open Opener, selectors *extractor.SelectorConfig, maxJobs int, logger *zap.Logger) (*Batch, error) {
	batch := &Batch{}
	for _, t := range targets {
		records, err := scrapeTarget(ctx, t, open, selectors, maxJobs, logger)
		batch.add(t.URL, records)
		if err != nil {
			return batch, err
		}
	}
	return batch, nil
}

func scrapeTarget(ctx context.Context, t config.Target, open Opener, selectors *extractor.SelectorConfig, maxJobs int, logger *zap.Logger) ([]models.JobRecord, error) {
	s := open(t)
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close scraping session", zap.String("url", t.URL), zap.Error(err))
		}
	}()
	return s.ScrapeJobs(ctx, t.URL, selectors, maxJobs)
}
