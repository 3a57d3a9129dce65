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
	"path/filepath"
	"syscall"
	"time"

	"github.com/KingAbe1/wp-next-blog/internal/api"
	"github.com/KingAbe1/wp-next-blog/internal/blog"
	"github.com/KingAbe1/wp-next-blog/internal/config"
	"github.com/KingAbe1/wp-next-blog/internal/metrics"
	"github.com/KingAbe1/wp-next-blog/internal/storage"
	"github.com/KingAbe1/wp-next-blog/internal/wordpress"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	dataDir := flag.String("data-dir", "./data", "path to data directory")
	debug := flag.Bool("debug", false, "log outbound WordPress requests")
	flag.Parse()

	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	opts := wordpress.Options{
		Timeout:   cfg.WordPress.Timeout(),
		PostsPath: cfg.WordPress.PostsPath,
		CacheTTL:  cfg.WordPress.Revalidate(),
		Metrics:   m,
	}

	// The response cache is optional: without it every request goes upstream.
	if cfg.Cache.Enabled {
		store, err := openCache(cfg, *dataDir)
		if err != nil {
			slog.Error("failed to open response cache", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		opts.Cache = store
		go purgeLoop(ctx, store, cfg.WordPress.Revalidate(), cfg.Cache.PurgeInterval())
	}

	client := wordpress.NewClient(cfg.WordPress.BaseURL, opts)
	if client.BaseURL() == "" {
		slog.Warn("no WordPress base URL configured, content requests will fail until one is set")
	} else {
		slog.Info("WordPress API configured", "base_url", client.BaseURL(), "posts_path", cfg.WordPress.PostsPath)
	}

	engine := blog.NewEngine(client, m)
	router := api.NewRouter(engine, m)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openCache opens the SQLite response cache and applies migrations. A
// relative cache path is resolved against dataDir.
func openCache(cfg *config.Config, dataDir string) (*storage.Store, error) {
	path := cfg.Cache.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}

	db, err := storage.OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	if err := storage.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return storage.NewStore(db), nil
}

// purgeLoop removes expired cache rows every interval until ctx is done.
func purgeLoop(ctx context.Context, store *storage.Store, maxAge, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeStale(ctx, maxAge)
			if err != nil {
				slog.Warn("failed to purge response cache", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("purged stale responses", "count", n)
			}
		}
	}
}
