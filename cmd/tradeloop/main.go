// ==============================
// File: cmd/tradeloop/main.go
// ==============================
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shuimuliang/pumpfun-sak/internal/config"
	"github.com/shuimuliang/pumpfun-sak/internal/logging"
	"github.com/shuimuliang/pumpfun-sak/internal/metrics"
	"github.com/shuimuliang/pumpfun-sak/internal/pipeline"
	"github.com/shuimuliang/pumpfun-sak/internal/queue"
	"github.com/shuimuliang/pumpfun-sak/internal/trading"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		zap.NewExample().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger := logging.New(cfg.Log)
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting trading loop",
		zap.String("config", *configPath),
		zap.Bool("paper_trading", cfg.Trading.PaperTrading))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Trading loop terminated", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("Trading loop stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	source, err := queue.NewRedisSource(ctx, cfg.Redis.URL, cfg.Redis.Queue, logging.WithComponent(logger, "queue"))
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	registry := prometheus.NewRegistry()
	sink := metrics.NewCollector(registry)
	if addr := cfg.Metrics.ListenAddr; addr != "" {
		serveMetrics(addr, registry, logger)
	}

	controller := trading.NewController(cfg.Trading, logger, sink)
	executor := trading.NewPaperExecutor(logger, 0)

	p := pipeline.New(pipeline.Config{
		Program:      cfg.Trading.ProgramPubKey(),
		SellDelay:    time.Duration(cfg.Trading.SellDelaySeconds) * time.Second,
		PaperTrading: cfg.Trading.PaperTrading,
	}, source, controller, executor, logger, sink)

	return p.Run(ctx)
}

// serveMetrics exposes the Prometheus registry on its own listener. Failures
// here are logged and ignored; the trading loop does not depend on it.
func serveMetrics(addr string, registry *prometheus.Registry, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	go func() {
		logger.Info("Serving metrics", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("Metrics listener stopped", zap.Error(err))
		}
	}()
}
