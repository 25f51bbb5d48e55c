// Package server exposes scraping over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-career-scraper/internal/config"
	"go-career-scraper/internal/extractor"
	"go-career-scraper/internal/fetch"
	"go-career-scraper/internal/models"
	"go-career-scraper/internal/scraper"
	"go-career-scraper/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScrapeRequest struct {
	CareerURL     string                    `json:"career_url" binding:"required"`
	MaxJobs       int                       `json:"max_jobs"`
	UseBrowser    *bool                     `json:"use_browser"`
	Selectors     *extractor.SelectorConfig `json:"selectors"`
	LinkSelectors []string                  `json:"link_selectors"`
}

type ScrapeResponse struct {
	CareerURL string             `json:"career_url"`
	Count     int                `json:"count"`
	Jobs      []models.JobRecord `json:"jobs"`
}

// FetcherFactory builds the fetcher of one scrape request.
type FetcherFactory func(cfg config.FetchConfig, logger *zap.Logger) fetch.Fetcher

type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	sinks      []storage.Sink
	newFetcher FetcherFactory
	engine     *gin.Engine
	httpServer *http.Server
}

func New(cfg *config.Config, logger *zap.Logger, sinks []storage.Sink, newFetcher FetcherFactory) *Server {
	if newFetcher == nil {
		newFetcher = fetch.New
	}
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		sinks:      sinks,
		newFetcher: newFetcher,
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET("/", s.health)
	r.GET("/health", s.health)
	r.POST("/scrape", s.scrape)
	s.engine = r

	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves in the background. Errors after startup are logged.
func (s *Server) Start() {
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server stopped", zap.Error(err))
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Career scraper API is running!",
		"status":  "healthy",
	})
}

func (s *Server) scrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.ValidateURL(req.CareerURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fetchCfg := s.cfg.FetchFor(config.Target{URL: req.CareerURL, UseBrowser: req.UseBrowser})
	linkSelectors := s.cfg.LinkSelectors
	if len(req.LinkSelectors) > 0 {
		linkSelectors = req.LinkSelectors
	}
	selectors := s.cfg.Selectors
	if req.Selectors != nil {
		selectors = selectors.Merge(*req.Selectors)
	}
	maxJobs := req.MaxJobs
	if maxJobs <= 0 {
		maxJobs = s.cfg.MaxJobs
	}

	sc := scraper.New(s.newFetcher(fetchCfg, s.logger), s.logger,
		scraper.WithDelay(s.cfg.RequestDelay),
		scraper.WithMaxLinks(s.cfg.MaxLinks),
		scraper.WithLinkSelectors(linkSelectors),
	)
	defer func() {
		if err := sc.Close(); err != nil {
			s.logger.Warn("failed to close scraping session", zap.Error(err))
		}
	}()

	records, err := sc.ScrapeJobs(c.Request.Context(), req.CareerURL, &selectors, maxJobs)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	records = storage.Dedup(records)
	for _, sink := range s.sinks {
		if len(records) == 0 {
			break
		}
		n, err := sink.Store(c.Request.Context(), records)
		if err != nil {
			s.logger.Error("failed to store jobs", zap.String("sink", sink.Name()), zap.Error(err))
			continue
		}
		s.logger.Info("stored jobs", zap.String("sink", sink.Name()), zap.Int("count", n))
	}

	if records == nil {
		records = []models.JobRecord{}
	}
	c.JSON(http.StatusOK, ScrapeResponse{
		CareerURL: req.CareerURL,
		Count:     len(records),
		Jobs:      records,
	})
}
