package fetch

import (
	"context"
	"fmt"

	"go-career-scraper/internal/browser"
	"go-career-scraper/internal/config"
	"go-career-scraper/internal/document"
	apperrors "go-career-scraper/internal/errors"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// PlaywrightFetcher renders pages in Chromium. The browser is started on
// the first Fetch and kept until Close.
type PlaywrightFetcher struct {
	cfg    config.FetchConfig
	logger *zap.Logger

	manager  *browser.PlaywrightManager
	bctx     playwright.BrowserContext
	shots    *browser.Screenshotter
	setupErr error
}

func NewPlaywrightFetcher(cfg config.FetchConfig, logger *zap.Logger) *PlaywrightFetcher {
	return &PlaywrightFetcher{cfg: cfg, logger: logger}
}

func (f *PlaywrightFetcher) start() error {
	if f.bctx != nil || f.setupErr != nil {
		return f.setupErr
	}

	manager, err := browser.NewPlaywright(!f.cfg.Headful)
	if err != nil {
		f.setupErr = apperrors.Unavailable("playwright browser", err)
		return f.setupErr
	}

	var cookies []playwright.OptionalCookie
	if f.cfg.CookiesFile != "" {
		cookies, err = browser.LoadCookies(f.cfg.CookiesFile)
		if err != nil {
			f.logger.Warn("could not load cookies, continuing without", zap.String("path", f.cfg.CookiesFile), zap.Error(err))
		} else {
			f.logger.Info("loaded cookies", zap.Int("count", len(cookies)))
		}
	}

	bctx, err := manager.NewContext(cookies, f.cfg.UserAgent)
	if err != nil {
		_ = manager.Close()
		f.setupErr = apperrors.Unavailable("playwright browser context", err)
		return f.setupErr
	}

	if f.cfg.ScreenshotDir != "" {
		if f.shots, err = browser.NewScreenshotter(f.cfg.ScreenshotDir); err != nil {
			f.logger.Warn("screenshots disabled", zap.Error(err))
		}
	}

	f.manager = manager
	f.bctx = bctx
	f.logger.Info("browser started", zap.String("engine", config.EnginePlaywright), zap.Bool("headless", !f.cfg.Headful))
	return nil
}

func (f *PlaywrightFetcher) Fetch(ctx context.Context, url, waitFor string) (*document.Document, error) {
	if err := f.start(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.bctx.NewPage()
	if err != nil {
		return nil, apperrors.Fetch(fmt.Sprintf("open tab for %s", url), err)
	}
	defer page.Close()

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(millis(f.cfg.PageLoadTimeout)),
	}); err != nil {
		f.capture(page, url)
		return nil, apperrors.Fetch(fmt.Sprintf("navigate %s", url), err)
	}

	if waitFor != "" {
		if _, err := page.WaitForSelector(waitFor, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(millis(f.cfg.WaitTimeout)),
		}); err != nil {
			f.logger.Debug("wait hint not found", zap.String("url", url), zap.String("selector", waitFor))
		}
	}

	if err := sleepCtx(ctx, f.cfg.SettleDelay); err != nil {
		return nil, err
	}
	if err := browser.ScrollToBottom(page); err != nil {
		f.logger.Debug("scroll failed", zap.String("url", url), zap.Error(err))
	}

	content, err := page.Content()
	if err != nil {
		return nil, apperrors.Fetch(fmt.Sprintf("read content of %s", url), err)
	}

	doc, err := document.FromString(content, url)
	if err != nil {
		return nil, apperrors.Fetch(fmt.Sprintf("parse %s", url), err)
	}
	return doc, nil
}

func (f *PlaywrightFetcher) capture(page playwright.Page, url string) {
	if f.shots == nil {
		return
	}
	path, err := f.shots.Capture(page, url)
	if err != nil {
		f.logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	f.logger.Info("saved failure screenshot", zap.String("url", url), zap.String("path", path))
}

func (f *PlaywrightFetcher) Close() error {
	if f.manager == nil {
		return nil
	}
	if f.bctx != nil {
		_ = f.bctx.Close()
	}
	err := f.manager.Close()
	f.manager, f.bctx = nil, nil
	return err
}
