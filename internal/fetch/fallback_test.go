package fetch

import (
	"context"
	"fmt"
	"testing"

	"go-career-scraper/internal/config"
	"go-career-scraper/internal/document"
	apperrors "go-career-scraper/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type stubFetcher struct {
	name   string
	errs   map[string]error
	calls  []string
	closed bool
}

func (s *stubFetcher) Fetch(_ context.Context, url, _ string) (*document.Document, error) {
	s.calls = append(s.calls, url)
	if err := s.errs[url]; err != nil {
		return nil, err
	}
	return document.FromString("<html><title>"+s.name+"</title></html>", url)
}

func (s *stubFetcher) Close() error {
	s.closed = true
	return nil
}

func titleOf(t *testing.T, doc *document.Document) string {
	t.Helper()
	require.NotNil(t, doc)
	title, _ := doc.Title()
	return title
}

func TestFallbackFetcher_FallsBackOncePerURL(t *testing.T) {
	browserF := &stubFetcher{name: "browser", errs: map[string]error{
		"https://acme.example/jobs/2": apperrors.Fetch("navigate", fmt.Errorf("timeout")),
	}}
	httpF := &stubFetcher{name: "http"}
	f := NewFallbackFetcher(browserF, httpF, zaptest.NewLogger(t))

	doc, err := f.Fetch(context.Background(), "https://acme.example/jobs/1", "")
	require.NoError(t, err)
	assert.Equal(t, "browser", titleOf(t, doc))

	doc, err = f.Fetch(context.Background(), "https://acme.example/jobs/2", "")
	require.NoError(t, err)
	assert.Equal(t, "http", titleOf(t, doc))

	// a navigation failure does not disable the browser
	doc, err = f.Fetch(context.Background(), "https://acme.example/jobs/3", "")
	require.NoError(t, err)
	assert.Equal(t, "browser", titleOf(t, doc))
	assert.False(t, f.BrowserDown())
	assert.Equal(t, []string{"https://acme.example/jobs/2"}, httpF.calls)
}

func TestFallbackFetcher_BrowserSetupFailureDegradesSession(t *testing.T) {
	unavailable := apperrors.Unavailable("playwright browser", fmt.Errorf("driver missing"))
	browserF := &stubFetcher{name: "browser", errs: map[string]error{
		"https://acme.example/careers": unavailable,
	}}
	httpF := &stubFetcher{name: "http"}
	f := NewFallbackFetcher(browserF, httpF, zap.NewNop())

	doc, err := f.Fetch(context.Background(), "https://acme.example/careers", ".job")
	require.NoError(t, err)
	assert.Equal(t, "http", titleOf(t, doc))
	assert.True(t, f.BrowserDown())

	doc, err = f.Fetch(context.Background(), "https://acme.example/jobs/1", "")
	require.NoError(t, err)
	assert.Equal(t, "http", titleOf(t, doc))
	assert.Len(t, browserF.calls, 1)

	require.NoError(t, f.Close())
	assert.True(t, browserF.closed)
	assert.True(t, httpF.closed)
}

func TestFallbackFetcher_BothFail(t *testing.T) {
	url := "https://acme.example/jobs/9"
	browserF := &stubFetcher{errs: map[string]error{url: apperrors.Fetch("navigate", nil)}}
	httpF := &stubFetcher{errs: map[string]error{url: apperrors.Fetch("GET returned status 500", nil)}}
	f := NewFallbackFetcher(browserF, httpF, zap.NewNop())

	_, err := f.Fetch(context.Background(), url, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNew(t *testing.T) {
	_, ok := New(config.FetchConfig{}, zap.NewNop()).(*HTTPFetcher)
	assert.True(t, ok)

	fb, ok := New(config.FetchConfig{UseBrowser: true, Engine: config.EngineChromedp}, zap.NewNop()).(*FallbackFetcher)
	require.True(t, ok)
	_, ok = fb.primary.(*ChromedpFetcher)
	assert.True(t, ok)

	fb, ok = New(config.FetchConfig{UseBrowser: true, Engine: config.EnginePlaywright}, zap.NewNop()).(*FallbackFetcher)
	require.True(t, ok)
	_, ok = fb.primary.(*PlaywrightFetcher)
	assert.True(t, ok)
}
