package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guidebot/planner-core/internal/metrics"
	"github.com/guidebot/planner-core/internal/plannerd"
	"github.com/guidebot/planner-core/pkg/config"
	"github.com/guidebot/planner-core/pkg/logger"
)

func main() {
	var httpAddr string
	var configPath string
	var logLevel string

	flag.StringVar(&httpAddr, "http-addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&configPath, "config", "", "path to config YAML file")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error; overrides config)")
	flag.Parse()

	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Error("failed to load config", "path", configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg.LogLevel = "info"
		cfg.LogFormat = "text"
		cfg.HTTPAddr = ":8080"
		cfg.Optimizer = config.DefaultOptimizerConfig()
	}

	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if cfg.LogFormat == "json" {
		logger.SetDefault(logger.New(cfg.LogLevel, os.Stdout))
	} else {
		logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stdout))
	}

	metrics.RegisterDefault()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store := plannerd.NewPlanStore()
	executor := plannerd.NewPlanExecutor(store, cfg.Optimizer)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           plannerd.NewHTTPServer(store, executor).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		// No WriteTimeout: progress streams stay open for the whole run.
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
}
