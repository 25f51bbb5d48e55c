package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-career-scraper/internal/document"
	apperrors "go-career-scraper/internal/errors"

	"golang.org/x/net/html/charset"
)

const defaultHTTPTimeout = 15 * time.Second

type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url, _ string) (*document.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("build request for %s", url), err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperrors.Fetch(fmt.Sprintf("GET %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Fetch(fmt.Sprintf("GET %s returned status %d", url, resp.StatusCode), nil)
	}

	//the decoder consumes a preview of the body, so a failure here leaves
	//nothing safe to parse
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	switch {
	case errors.Is(err, io.EOF):
		body = strings.NewReader("")
	case err != nil:
		return nil, apperrors.Fetch(fmt.Sprintf("read body of %s", url), err)
	}

	doc, err := document.New(body, url)
	if err != nil {
		return nil, apperrors.Fetch(fmt.Sprintf("parse %s", url), err)
	}
	return doc, nil
}

func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
