package fetch

import (
	"context"
	"fmt"

	"go-career-scraper/internal/browser"
	"go-career-scraper/internal/config"
	"go-career-scraper/internal/document"
	apperrors "go-career-scraper/internal/errors"

	"go.uber.org/zap"
)

// ChromedpFetcher is the chromedp flavour of PlaywrightFetcher.
type ChromedpFetcher struct {
	cfg    config.FetchConfig
	logger *zap.Logger

	chrome   *browser.ChromeManager
	setupErr error
}

func NewChromedpFetcher(cfg config.FetchConfig, logger *zap.Logger) *ChromedpFetcher {
	return &ChromedpFetcher{cfg: cfg, logger: logger}
}

func (f *ChromedpFetcher) start() error {
	if f.chrome != nil || f.setupErr != nil {
		return f.setupErr
	}
	chrome, err := browser.NewChrome(!f.cfg.Headful, f.cfg.UserAgent)
	if err != nil {
		f.setupErr = apperrors.Unavailable("chromedp browser", err)
		return f.setupErr
	}
	f.chrome = chrome
	f.logger.Info("browser started", zap.String("engine", config.EngineChromedp), zap.Bool("headless", !f.cfg.Headful))
	return nil
}

func (f *ChromedpFetcher) Fetch(ctx context.Context, url, waitFor string) (*document.Document, error) {
	if err := f.start(); err != nil {
		return nil, err
	}

	html, err := f.chrome.HTML(ctx, url, browser.PageOptions{
		WaitFor:     waitFor,
		LoadTimeout: f.cfg.PageLoadTimeout,
		WaitTimeout: f.cfg.WaitTimeout,
		Settle:      f.cfg.SettleDelay,
	})
	if err != nil {
		return nil, apperrors.Fetch(fmt.Sprintf("render %s", url), err)
	}

	doc, err := document.FromString(html, url)
	if err != nil {
		return nil, apperrors.Fetch(fmt.Sprintf("parse %s", url), err)
	}
	return doc, nil
}

func (f *ChromedpFetcher) Close() error {
	if f.chrome == nil {
		return nil
	}
	err := f.chrome.Close()
	f.chrome = nil
	return err
}
