package fetch

import (
	"context"

	"go-career-scraper/internal/document"
	apperrors "go-career-scraper/internal/errors"

	"go.uber.org/zap"
)

// FallbackFetcher tries the browser first and retries a failed URL once over
// HTTP. Once the browser fails to start it is skipped for the rest of the
// session. The reverse direction is never attempted.
type FallbackFetcher struct {
	primary     Fetcher
	secondary   Fetcher
	logger      *zap.Logger
	primaryDown bool
}

func NewFallbackFetcher(primary, secondary Fetcher, logger *zap.Logger) *FallbackFetcher {
	return &FallbackFetcher{primary: primary, secondary: secondary, logger: logger}
}

func (f *FallbackFetcher) Fetch(ctx context.Context, url, waitFor string) (*document.Document, error) {
	if !f.primaryDown {
		doc, err := f.primary.Fetch(ctx, url, waitFor)
		if err == nil {
			return doc, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if apperrors.IsType(err, apperrors.ErrTypeUnavailable) {
			f.primaryDown = true
			f.logger.Warn("browser unavailable, using plain HTTP for the rest of the session", zap.Error(err))
		} else {
			f.logger.Warn("browser fetch failed, falling back to plain HTTP", zap.String("url", url), zap.Error(err))
		}
	}
	return f.secondary.Fetch(ctx, url, waitFor)
}

// BrowserDown reports whether the session degraded to plain HTTP.
func (f *FallbackFetcher) BrowserDown() bool {
	return f.primaryDown
}

func (f *FallbackFetcher) Close() error {
	errPrimary := f.primary.Close()
	errSecondary := f.secondary.Close()
	if errPrimary != nil {
		return errPrimary
	}
	return errSecondary
}
