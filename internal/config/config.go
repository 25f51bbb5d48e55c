// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"go-career-scraper/internal/extractor"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

const (
	defaultRequestDelay = time.Second
	defaultSettleDelay  = 3 * time.Second
)

const (
	EnginePlaywright = "playwright"
	EngineChromedp   = "chromedp"
)

// Target is one career page to scrape.
type Target struct {
	URL        string `yaml:"url"`
	UseBrowser *bool  `yaml:"use_browser"`
}

type FetchConfig struct {
	UseBrowser      bool          `yaml:"use_browser"`
	Engine          string        `yaml:"engine"`
	Headful         bool          `yaml:"headful"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	PageLoadTimeout time.Duration `yaml:"page_load_timeout"`
	SettleDelay     time.Duration `yaml:"settle_delay"`
	WaitTimeout     time.Duration `yaml:"wait_timeout"`
	UserAgent       string        `yaml:"user_agent"`
	CookiesFile     string        `yaml:"cookies_file"`
	ScreenshotDir   string        `yaml:"screenshot_dir"`
}

type Config struct {
	Targets []Target `yaml:"targets"`
	//Output file, extension picks the format
	Output       string        `yaml:"output"`
	MaxJobs      int           `yaml:"max_jobs"`
	MaxLinks     int           `yaml:"max_links"`
	RequestDelay time.Duration `yaml:"request_delay"`
	//Seen cache
	SkipSeen  bool   `yaml:"skip_seen"`
	CachePath string `yaml:"cache_path"`

	Fetch         FetchConfig              `yaml:"fetch"`
	Selectors     extractor.SelectorConfig `yaml:"selectors"`
	LinkSelectors []string                 `yaml:"link_selectors"`

	//Optional collaborators, env only
	DatabaseURL    string `yaml:"-"`
	RedisURL       string `yaml:"-"`
	TelegramToken  string `yaml:"-"`
	TelegramChatID int64  `yaml:"-"`

	Port        string `yaml:"port"`
	LogLevel    string `yaml:"log_level"`
	Development bool   `yaml:"development"`
}

// Load reads .env, then the YAML file at path (a missing file is fine),
// then environment overrides, then fills defaults and validates.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	//pauses are seeded before decoding so an explicit 0s in YAML switches
	//them off
	cfg := &Config{
		RequestDelay: defaultRequestDelay,
		Fetch:        FetchConfig{SettleDelay: defaultSettleDelay},
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SCRAPER_USE_BROWSER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SCRAPER_USE_BROWSER: %w", err)
		}
		c.Fetch.UseBrowser = b
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.MaxJobs == 0 {
		c.MaxJobs = 50
	}
	if c.MaxLinks == 0 {
		c.MaxLinks = 100
	}
	if c.CachePath == "" {
		c.CachePath = ".cache"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	f := &c.Fetch
	if f.Engine == "" {
		f.Engine = EnginePlaywright
	}
	if f.HTTPTimeout == 0 {
		f.HTTPTimeout = 15 * time.Second
	}
	if f.PageLoadTimeout == 0 {
		f.PageLoadTimeout = 30 * time.Second
	}
	if f.WaitTimeout == 0 {
		f.WaitTimeout = 10 * time.Second
	}
	if f.UserAgent == "" {
		f.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
}

func (c *Config) Validate() error {
	if c.RequestDelay < 0 || c.Fetch.SettleDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.MaxJobs < 0 {
		return fmt.Errorf("max_jobs must be positive, got %d", c.MaxJobs)
	}
	if c.MaxLinks < 0 {
		return fmt.Errorf("max_links must be positive, got %d", c.MaxLinks)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request_delay must not be negative")
	}
	switch c.Fetch.Engine {
	case EnginePlaywright, EngineChromedp:
	default:
		return fmt.Errorf("unknown browser engine %q (want %s or %s)", c.Fetch.Engine, EnginePlaywright, EngineChromedp)
	}
	for _, t := range c.Targets {
		if err := ValidateURL(t.URL); err != nil {
			return err
		}
	}
	return nil
}

// ValidateURL accepts absolute http(s) URLs only.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url %q: want an absolute http(s) url", raw)
	}
	return nil
}

// FetchFor returns the fetch settings for t, honouring its browser override.
func (c *Config) FetchFor(t Target) FetchConfig {
	f := c.Fetch
	if t.UseBrowser != nil {
		f.UseBrowser = *t.UseBrowser
	}
	return f
}
