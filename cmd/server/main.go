package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-career-scraper/internal/config"
	"go-career-scraper/internal/database"
	"go-career-scraper/internal/logger"
	"go-career-scraper/internal/server"
	"go-career-scraper/internal/storage"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = config.DefaultPath
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.Development)
}

// newSinks wires the configured outputs. Postgres is used only when
// DATABASE_URL is set.
func newSinks(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) ([]storage.Sink, error) {
	var sinks []storage.Sink
	if cfg.Output != "" {
		sinks = append(sinks, &storage.FileSink{Path: cfg.Output, Logger: logger})
	}
	if cfg.DatabaseURL == "" {
		return sinks, nil
	}

	ctx := context.Background()
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			repo.Close()
			return nil
		},
	})
	logger.Info("postgres sink enabled")
	return append(sinks, repo), nil
}

func newServer(cfg *config.Config, logger *zap.Logger, sinks []storage.Sink) *server.Server {
	return server.New(cfg, logger, sinks, nil)
}

func main() {
	app := fx.New(
		fx.Provide(
			loadConfig,
			newLogger,
			newSinks,
			newServer,
		),
		fx.Invoke(
			func(s *server.Server, lc fx.Lifecycle) {
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						s.Start()
						return nil
					},
					OnStop: s.Shutdown,
				})
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
