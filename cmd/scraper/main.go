package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-career-scraper/internal/config"
	"go-career-scraper/internal/database"
	"go-career-scraper/internal/dedup"
	"go-career-scraper/internal/fetch"
	"go-career-scraper/internal/logger"
	"go-career-scraper/internal/models"
	"go-career-scraper/internal/scraper"
	"go-career-scraper/internal/storage"
	"go-career-scraper/internal/telegram"

	"go.uber.org/zap"
)

type flags struct {
	configPath string
	url        string
	browser    bool
	engine     string
	headful    bool
	maxJobs    int
	output     string
	delay      time.Duration
	set        map[string]bool
}

func parseFlags() *flags {
	f := &flags{set: make(map[string]bool)}
	flag.StringVar(&f.configPath, "config", config.DefaultPath, "path to the YAML config")
	flag.StringVar(&f.url, "url", "", "career page to scrape, overrides configured targets")
	flag.BoolVar(&f.browser, "browser", false, "render pages in a headless browser")
	flag.StringVar(&f.engine, "engine", "", "browser engine: playwright or chromedp")
	flag.BoolVar(&f.headful, "headful", false, "show the browser window")
	flag.IntVar(&f.maxJobs, "max-jobs", 0, "maximum postings per career page")
	flag.StringVar(&f.output, "output", "", "output file (.xlsx, .csv or .json)")
	flag.DurationVar(&f.delay, "delay", 0, "pause between posting fetches")
	flag.Parse()
	flag.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f
}

// apply lets explicitly set flags win over the config file.
func (f *flags) apply(cfg *config.Config) {
	if f.set["browser"] {
		cfg.Fetch.UseBrowser = f.browser
	}
	if f.set["engine"] {
		cfg.Fetch.Engine = f.engine
	}
	if f.set["headful"] {
		cfg.Fetch.Headful = f.headful
	}
	if f.set["max-jobs"] {
		cfg.MaxJobs = f.maxJobs
	}
	if f.set["output"] {
		cfg.Output = f.output
	}
	if f.set["delay"] {
		cfg.RequestDelay = f.delay
	}
	if f.url != "" {
		cfg.Targets = []config.Target{{URL: f.url}}
	}
}

func main() {
	f := parseFlags()

	//load config
	cfg, err := config.Load(f.configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid settings: %v", err)
	}

	logger, err := logger.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	targets := cfg.Targets
	if len(targets) == 0 {
		target, err := promptTarget(os.Stdin, os.Stdout)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		targets = []config.Target{target}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := openBot(cfg, logger)

	seen := openSeenStore(ctx, cfg, logger)
	if seen != nil {
		defer seen.Close()
	}

	open := func(t config.Target) *scraper.Scraper {
		opts := []scraper.Option{
			scraper.WithDelay(cfg.RequestDelay),
			scraper.WithMaxLinks(cfg.MaxLinks),
			scraper.WithLinkSelectors(cfg.LinkSelectors),
		}
		if seen != nil {
			opts = append(opts, scraper.WithSeenStore(seen, cfg.SkipSeen))
		}
		return scraper.New(fetch.New(cfg.FetchFor(t), logger), logger, opts...)
	}

	log.Printf("🚀 Scraping %d career page(s)...", len(targets))
	batch, err := scraper.ScrapeAll(ctx, targets, open, &cfg.Selectors, cfg.MaxJobs, logger)
	if err != nil {
		log.Printf("⚠️ Scraping interrupted (%v). Saving what was collected.", err)
		reportError(bot, fmt.Errorf("scraping interrupted: %w", err), logger)
	}

	records := storage.Dedup(batch.Records)
	if len(records) == 0 {
		log.Println("ℹ️ No jobs found. Try -browser for pages that render with JavaScript.")
		return
	}
	log.Printf("📦 Total jobs collected: %d (%d after dedup)", len(batch.Records), len(records))

	output := cfg.Output
	if output == "" {
		output = storage.DefaultFileName
		if len(targets) == 1 {
			output = storage.FileNameFor(targets[0].URL)
		}
	}
	n, err := storage.Save(records, output, logger)
	if err != nil {
		reportError(bot, err, logger)
		log.Fatalf("❌ Failed to save jobs: %v", err)
	}
	log.Printf("📁 Saved %d jobs to %s", n, output)

	saveToDatabase(cfg, records, logger)
	notify(bot, batch, logger)

	log.Println("🏁 Execution finished.")
}

// openSeenStore prefers redis and falls back to the file cache. It returns
// nil when neither is usable; scraping then runs without the gate.
func openSeenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) dedup.Store {
	if cfg.RedisURL != "" {
		store, err := dedup.NewRedisStore(ctx, cfg.RedisURL)
		if err == nil {
			log.Println("🔍 Using redis seen-posting cache")
			return store
		}
		logger.Warn("redis unavailable, using file cache", zap.Error(err))
	}

	store, err := dedup.NewFileStore(cfg.CachePath, dedup.DefaultTTL, logger)
	if err != nil {
		logger.Warn("seen-posting cache disabled", zap.Error(err))
		return nil
	}
	return store
}

func saveToDatabase(cfg *config.Config, records []models.JobRecord, logger *zap.Logger) {
	if cfg.DatabaseURL == "" {
		return
	}

	ctx := context.Background()
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", zap.Error(err))
		return
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to prepare schema", zap.Error(err))
		return
	}
	n, err := repo.Store(ctx, records)
	if err != nil {
		logger.Error("failed to store jobs in postgres", zap.Error(err))
		return
	}
	log.Printf("💾 Inserted %d new jobs into postgres", n)
}

// openBot returns nil when telegram is not configured or unreachable.
func openBot(cfg *config.Config, logger *zap.Logger) *telegram.Bot {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		return nil
	}
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		logger.Warn("failed to init telegram bot", zap.Error(err))
		return nil
	}
	log.Println("🤖 Telegram Bot initialized.")
	return bot
}

func reportError(bot *telegram.Bot, err error, logger *zap.Logger) {
	if bot == nil {
		return
	}
	if sendErr := bot.SendError(err); sendErr != nil {
		logger.Warn("failed to send telegram error", zap.Error(sendErr))
	}
}

// notify sends one summary per career page. Records of a batch are laid out
// target by target, so each page's slice is found from the counts.
func notify(bot *telegram.Bot, batch *scraper.Batch, logger *zap.Logger) {
	if bot == nil {
		return
	}

	offset := 0
	for _, t := range batch.Targets {
		records := batch.Records[offset : offset+t.Count]
		offset += t.Count
		if err := bot.SendSummary(t.URL, records); err != nil {
			logger.Warn("failed to send telegram summary", zap.String("url", t.URL), zap.Error(err))
		}
		//avoid telegram 429
		time.Sleep(time.Second)
	}

	status := fmt.Sprintf("✅ Scraped %d career page(s), %d jobs.", len(batch.Targets), len(batch.Records))
	if err := bot.SendStatus(status); err != nil {
		logger.Warn("failed to send telegram status", zap.Error(err))
	}
}
