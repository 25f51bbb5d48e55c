// Scrape a company career page: find postings, extract them one by one.

package scraper

import (
	"context"
	"time"

	"go-career-scraper/internal/dedup"
	"go-career-scraper/internal/discovery"
	"go-career-scraper/internal/extractor"
	"go-career-scraper/internal/fetch"
	"go-career-scraper/internal/models"

	"go.uber.org/zap"
)

const (
	DefaultMaxJobs = 50
	DefaultDelay   = time.Second
	// CareerPageWaitHint is what browser fetchers wait for on a listing page.
	CareerPageWaitHint = ".job, .career, .position"
)

// Scraper runs one sequential scraping session over a single fetcher.
// It is not safe for concurrent use.
type Scraper struct {
	fetcher       fetch.Fetcher
	logger        *zap.Logger
	delay         time.Duration
	maxLinks      int
	linkSelectors []string
	seen          dedup.Store
	skipSeen      bool
	sleep         func(ctx context.Context, d time.Duration) error
}

type Option func(*Scraper)

// WithDelay sets the pause between two posting fetches.
func WithDelay(d time.Duration) Option {
	return func(s *Scraper) { s.delay = d }
}

func WithMaxLinks(n int) Option {
	return func(s *Scraper) { s.maxLinks = n }
}

// WithLinkSelectors replaces the default discovery selectors when non-empty.
func WithLinkSelectors(selectors []string) Option {
	return func(s *Scraper) { s.linkSelectors = selectors }
}

// WithSeenStore records scraped URLs in store. With skip set, URLs already
// in the store are not fetched again.
func WithSeenStore(store dedup.Store, skip bool) Option {
	return func(s *Scraper) {
		s.seen = store
		s.skipSeen = skip
	}
}

func New(fetcher fetch.Fetcher, logger *zap.Logger, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:  fetcher,
		logger:   logger,
		delay:    DefaultDelay,
		maxLinks: discovery.DefaultMaxLinks,
		sleep:    sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the fetcher, including any browser it started.
func (s *Scraper) Close() error {
	return s.fetcher.Close()
}

// FindJobLinks fetches the career page and returns the discovered posting
// URLs. A page that cannot be fetched yields no links.
func (s *Scraper) FindJobLinks(ctx context.Context, careerURL string) []string {
	doc, err := s.fetcher.Fetch(ctx, careerURL, CareerPageWaitHint)
	if err != nil {
		s.logger.Warn("could not fetch career page", zap.String("url", careerURL), zap.Error(err))
		return nil
	}

	links := discovery.Discover(doc, s.linkSelectors, s.maxLinks)
	s.logger.Info("found job links", zap.String("url", careerURL), zap.Int("count", len(links)))
	return links
}

// ExtractJob fetches one posting and extracts its record.
func (s *Scraper) ExtractJob(ctx context.Context, url string, selectors *extractor.SelectorConfig) (*models.JobRecord, error) {
	doc, err := s.fetcher.Fetch(ctx, url, "")
	if err != nil {
		return nil, err
	}
	return extractor.Extract(doc, url, selectors), nil
}

// ScrapeJobs discovers up to maxJobs postings on careerURL and extracts them
// in order. Postings that fail to load are skipped. On cancellation the
// records gathered so far are returned with the context error.
func (s *Scraper) ScrapeJobs(ctx context.Context, careerURL string, selectors *extractor.SelectorConfig, maxJobs int) ([]models.JobRecord, error) {
	s.logger.Info("starting job scraping", zap.String("url", careerURL))

	links := s.FindJobLinks(ctx, careerURL)
	if len(links) == 0 {
		s.logger.Warn("no job links found, try a browser for dynamic content", zap.String("url", careerURL))
		return nil, ctx.Err()
	}

	if maxJobs <= 0 {
		maxJobs = DefaultMaxJobs
	}
	if len(links) > maxJobs {
		links = links[:maxJobs]
	}

	var (
		records []models.JobRecord
		scraped []string
		fetched bool
	)
	for i, link := range links {
		if err := ctx.Err(); err != nil {
			s.markSeen(scraped)
			return records, err
		}
		if s.alreadySeen(ctx, link) {
			s.logger.Debug("skipping seen posting", zap.String("url", link))
			continue
		}

		//respectful delay between postings
		if fetched {
			if err := s.sleep(ctx, s.delay); err != nil {
				s.markSeen(scraped)
				return records, err
			}
		}
		fetched = true

		s.logger.Info("scraping job", zap.Int("n", i+1), zap.Int("total", len(links)), zap.String("url", link))
		rec, err := s.ExtractJob(ctx, link, selectors)
		if err != nil {
			if ctx.Err() != nil {
				s.markSeen(scraped)
				return records, ctx.Err()
			}
			s.logger.Warn("skipping posting", zap.String("url", link), zap.Error(err))
			continue
		}
		records = append(records, *rec)
		scraped = append(scraped, link)
	}

	s.markSeen(scraped)
	s.logger.Info("successfully scraped jobs", zap.String("url", careerURL), zap.Int("count", len(records)))
	return records, nil
}

func (s *Scraper) alreadySeen(ctx context.Context, url string) bool {
	if s.seen == nil || !s.skipSeen {
		return false
	}
	seen, err := s.seen.IsSeen(ctx, url)
	if err != nil {
		s.logger.Warn("seen store lookup failed", zap.String("url", url), zap.Error(err))
		return false
	}
	return seen
}

func (s *Scraper) markSeen(urls []string) {
	if s.seen == nil || len(urls) == 0 {
		return
	}
	//a cancelled run still records what it finished
	if err := s.seen.Add(context.Background(), urls); err != nil {
		s.logger.Warn("could not record seen postings", zap.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
