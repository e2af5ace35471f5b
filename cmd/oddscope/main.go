package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oddscope/oddscope/internal/aggregator"
	"github.com/oddscope/oddscope/internal/api"
	"github.com/oddscope/oddscope/internal/notify"
	pkgconfig "github.com/oddscope/oddscope/internal/pkg/config"
	"github.com/oddscope/oddscope/internal/pkg/logging"
	"github.com/oddscope/oddscope/internal/scrapers"
	"github.com/oddscope/oddscope/internal/snapshot"

	// Register all supported scrapers via init().
	_ "github.com/oddscope/oddscope/internal/scrapers/all"
)

type flags struct {
	mode       string
	configPath string
	interval   time.Duration
}

func main() {
	if err := run(); err != nil {
		slog.Error("oddscope failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	f := parseFlags()

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}
	logging.SetupLogger(&cfg.Logging, "oddscope")
	slog.Info("config loaded", "mode", f.mode)

	interval := cfg.Scraper.Interval
	if f.interval > 0 {
		interval = f.interval
	}

	store, err := snapshot.Open(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open snapshot storage: %w", err)
	}
	defer store.Close()

	pipeline, err := buildPipeline(cfg, store)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch f.mode {
	case "api":
		server := api.NewServer(cfg, store, pipeline)
		go func() {
			<-ctx.Done()
			server.Stop()
		}()
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case "scrape":
		return pipeline.RunCycle(ctx)
	case "schedule":
		pipeline.RunEvery(ctx, interval)
		return nil
	}
	return fmt.Errorf("unknown mode %q (want api, scrape or schedule)", f.mode)
}

func parseFlags() flags {
	var f flags

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "configs/local.yaml"
	}

	flag.StringVar(&f.mode, "mode", "api", "run mode: api, scrape (one cycle), schedule (repeat)")
	flag.StringVar(&f.configPath, "config", defaultConfig, "path to YAML config")
	flag.DurationVar(&f.interval, "interval", 0, "override scrape interval, e.g. 300s")
	flag.Parse()
	return f
}

func loadConfig(path string) (*pkgconfig.Config, error) {
	cfg, err := pkgconfig.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("config file not found, using defaults", "path", path)
			return pkgconfig.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func buildPipeline(cfg *pkgconfig.Config, store snapshot.Store) (*aggregator.Pipeline, error) {
	list := make([]scrapers.Scraper, 0, len(cfg.Scraper.EnabledScrapers))
	for _, name := range cfg.Scraper.EnabledScrapers {
		factory, ok := scrapers.FactoryByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown scraper %q (available: %s)",
				name, strings.Join(scrapers.AvailableNames(), ", "))
		}
		list = append(list, factory(cfg))
	}
	slog.Info("scrapers selected", "count", len(list))

	var observers []aggregator.CycleObserver
	if cfg.Telegram.Enabled {
		notifier, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("failed to set up telegram notifier: %w", err)
		}
		observers = append(observers, notifier)
		slog.Info("telegram arbitrage alerts enabled", "chat_id", cfg.Telegram.ChatID)
	}

	return aggregator.New(list, store, observers...), nil
}
