// filmrec is a content-based movie recommender.
// It normalizes the raw movie tables into a catalog once, then ranks the catalog
// against a reference movie chosen interactively or with -title.
//
// Usage:
//
//	filmrec [-env local] [-rebuild] [-title "toy story"] [-version]
//
// Env vars:
//
//	ENV        config environment (default: local), reads config/<ENV>.yaml
//	LOG_LEVEL  log level override used by the bundled configs
//	LOG_OUTPUT log destination: stderr (default), stdout or a file path
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/filmrec/internal/config"
	"github.com/kailas-cloud/filmrec/internal/db"
	dbRedis "github.com/kailas-cloud/filmrec/internal/db/redis"
	logpkg "github.com/kailas-cloud/filmrec/internal/logger"
	"github.com/kailas-cloud/filmrec/internal/metrics"
	"github.com/kailas-cloud/filmrec/internal/repository/rankcache"
	chiTransport "github.com/kailas-cloud/filmrec/internal/transport/chi"
	"github.com/kailas-cloud/filmrec/internal/transport/cli"
	healthuc "github.com/kailas-cloud/filmrec/internal/usecase/health"
	"github.com/kailas-cloud/filmrec/internal/usecase/ingest"
	"github.com/kailas-cloud/filmrec/internal/usecase/similarity"
	"github.com/kailas-cloud/filmrec/internal/version"
)

type flags struct {
	env     string
	rebuild bool
	title   string
	version bool
}

func parseFlags() flags {
	f := flags{}
	flag.StringVar(&f.env, "env", config.GetEnv(), "config environment (reads config/<env>.yaml)")
	flag.BoolVar(&f.rebuild, "rebuild", false, "rebuild the catalog from the raw tables even if it exists")
	flag.StringVar(&f.title, "title", "", "print recommendations for this title and exit")
	flag.BoolVar(&f.version, "version", false, "print version and exit")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	if f.version {
		fmt.Println(version.String())
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Ctrl-C ends the session or an unfinished build quietly.
	if err := run(ctx, f); err != nil && !errors.Is(err, context.Canceled) {
		cancel()
		fmt.Fprintln(os.Stderr, "filmrec:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(f.env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(f.env, logpkg.Options{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	logger.Info("Starting filmrec",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", f.env),
		zap.String("catalog", cfg.Data.Catalog),
		zap.String("catalog_format", cfg.Data.CatalogFormat),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	pipeline := ingest.New(logger, metrics.CatalogRowsKept, metrics.CatalogRowsExcluded)
	catalog, err := loadCatalog(ctx, cfg.Data, pipeline, f.rebuild, logger)
	if err != nil {
		return err
	}
	metrics.CatalogSize.Set(float64(catalog.Len()))

	var rec similarity.Recommender = similarity.New(catalog).
		WithWorkers(cfg.Recommend.Workers).
		WithDuration(metrics.RecommendDuration)

	// Pass a nil interface (not a typed nil pointer) to health when no cache is configured.
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled() {
		store, err := connectCache(ctx, cfg.Cache)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("Connected to ranking cache", zap.Strings("addrs", cfg.Cache.Addrs))

		ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
		rec = rankcache.New(rec, catalog, store, ttl, metrics.RankCacheTotal, logger)
		cachePinger = store
	}

	if cfg.HTTP.Addr != "" {
		metrics.RegisterHTTPMetrics()
		health := healthuc.New(catalog, cachePinger)
		server := chiTransport.NewServer(catalog, rec, health, cfg.Recommend.TopN, logger)
		srv := &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      server.Router(cfg.HTTP.APIKeys),
			ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		}
		go func() {
			logger.Info("Starting HTTP server", zap.String("addr", cfg.HTTP.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server error", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Error during shutdown", zap.Error(err))
			}
		}()
	}

	session := cli.NewSession(os.Stdin, os.Stdout, catalog, rec, cfg.Recommend.TopN)
	if f.title != "" {
		return session.Once(ctx, f.title)
	}
	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("interactive session: %w", err)
	}
	return nil
}

// connectCache creates the ranking cache store and waits until it answers.
func connectCache(ctx context.Context, cfg config.CacheConfig) (db.Store, error) {
	// Valkey speaks the Redis protocol; both drivers share the rueidis store.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	return store, nil
}
