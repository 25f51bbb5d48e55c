// Package fetch retrieves pages as parsed documents, over plain HTTP or
// through a headless browser that falls back to HTTP.
package fetch

import (
	"context"
	"time"

	"go-career-scraper/internal/config"
	"go-career-scraper/internal/document"

	"go.uber.org/zap"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Fetcher turns a URL into a Document. waitFor is a CSS selector hint that
// browser-backed fetchers wait for; plain HTTP ignores it.
type Fetcher interface {
	Fetch(ctx context.Context, url, waitFor string) (*document.Document, error)
	Close() error
}

// New builds the fetcher for one scraping session.
func New(cfg config.FetchConfig, logger *zap.Logger) Fetcher {
	httpFetcher := NewHTTPFetcher(cfg.HTTPTimeout, cfg.UserAgent)
	if !cfg.UseBrowser {
		return httpFetcher
	}

	var browserFetcher Fetcher
	switch cfg.Engine {
	case config.EngineChromedp:
		browserFetcher = NewChromedpFetcher(cfg, logger)
	default:
		browserFetcher = NewPlaywrightFetcher(cfg, logger)
	}
	return NewFallbackFetcher(browserFetcher, httpFetcher, logger)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func millis(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}
