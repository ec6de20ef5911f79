package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/ghlookup/internal/api"
	"github.com/vytor/ghlookup/internal/config"
	"github.com/vytor/ghlookup/internal/db"
	"github.com/vytor/ghlookup/internal/github"
	"github.com/vytor/ghlookup/internal/jobs"
	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/repository/sqlite"
	"github.com/vytor/ghlookup/internal/search"
	"github.com/vytor/ghlookup/internal/services"
	"github.com/vytor/ghlookup/internal/theme"
	"github.com/vytor/ghlookup/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("ghlookup Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("github_api_url=%s", cfg.GitHubAPIURL)
	log.Debug("github_rps=%d", cfg.GitHubRPS)
	log.Debug("search_mode=%s", cfg.SearchMode)
	log.Debug("debounce=%v", cfg.Debounce())
	log.Debug("cache_ttl=%v", cfg.CacheTTL())
	log.Debug("history_enabled=%t", cfg.HistoryEnabled)
	log.Debug("log_level=%s", cfg.LogLevel)

	palette, err := theme.Load(cfg.ThemeFile)
	if err != nil {
		log.Error("failed to load theme: %v", err)
		os.Exit(1)
	}

	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fetcher github.UserFetcher = github.New(github.Config{
		BaseURL: cfg.GitHubAPIURL,
		Token:   cfg.GitHubToken,
		RPS:     cfg.GitHubRPS,
		Timeout: cfg.RequestTimeout(),
	}, nil)
	if ttl := cfg.CacheTTL(); ttl > 0 {
		cache := github.NewCachingClient(fetcher, ttl)
		go cache.Run(ctx, ttl)
		fetcher = cache
	}

	mode, _ := search.ParseMode(cfg.SearchMode)
	srv := &api.Server{
		Templates: tmpl,
		Palette:   palette,
		Mode:      mode,
		Debounce:  cfg.Debounce(),
	}

	var historyPool *worker.Pool
	var queue jobs.JobQueue
	if cfg.HistoryEnabled {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			log.Error("failed to open database: %v", err)
			os.Exit(1)
		}
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()

		lookupRepo := sqlite.NewLookupRepository(database.DB)
		historyPool = worker.NewPool(cfg.HistoryWorkerCount, cfg.HistoryQueueSize)
		// History writes must still run after shutdown cancels ctx.
		historyPool.Start(context.Background())
		queue = jobs.NewWorkerQueue(historyPool, lookupRepo)

		srv.DB = database
		srv.HistoryService = services.NewHistoryService(lookupRepo)
	}
	srv.LookupService = services.NewLookupService(fetcher, queue)

	if cfg.RateLimitRPS > 0 {
		srv.RateLimiter = api.NewRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst)
		go srv.RateLimiter.Run(ctx)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	// Search sockets are long-lived; shutdown cancels their views.
	httpServer.RegisterOnShutdown(cancel)

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	if historyPool != nil {
		log.Debug("stopping history pool")
		historyPool.Stop()
	}

	log.Info("===========================================")
	log.Info("ghlookup Server Stopped")
	log.Info("===========================================")
}
