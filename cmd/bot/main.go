// Command bot runs the FindYourAd marketplace Telegram bot.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/findyourad/core/config"
	"github.com/m3rciful/findyourad/core/database"
	"github.com/m3rciful/findyourad/core/logger"
	tg "github.com/m3rciful/findyourad/core/telegram"
	"github.com/m3rciful/findyourad/internal/bot"
	"github.com/m3rciful/findyourad/internal/service"
	"github.com/m3rciful/findyourad/internal/storage/postgres"
)

// appConfig joins the shared runtime configuration with the storage settings.
type appConfig struct {
	Core     coreconfig.Config `yaml:",inline"`
	Database database.Config   `yaml:"database"`
}

func loadConfig(path string) (*appConfig, error) {
	var cfg appConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yml"
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := logger.InitLogger(&cfg.Core); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Shutdown() }()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	svc := service.New(postgres.NewUsers(db), postgres.NewListings(db))
	handlers := bot.NewHandlers(svc)
	registry := bot.BuildRegistry(handlers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = tg.RunTelegram(ctx, tg.RunOptions{
		Config:      &cfg.Core,
		Registry:    registry,
		Middlewares: tg.DefaultMiddlewares(&cfg.Core, nil),
		Routes:      bot.Routes(registry, &cfg.Core),
	})
	if err != nil {
		logger.L.Error("bot stopped",
			slog.String("event", "shutdown"),
			slog.String("err", err.Error()),
		)
		return err
	}

	logger.L.Info("bot stopped", slog.String("event", "shutdown"))
	return nil
}
