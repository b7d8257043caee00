package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sushant-k-tiwari/TravelSplit/internal/auth"
	"github.com/sushant-k-tiwari/TravelSplit/internal/config"
	"github.com/sushant-k-tiwari/TravelSplit/internal/metrics"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage/redis"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage/sqlite"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var marks storage.MarkStore = store
	if cfg.MarksBackend == config.MarksBackendRedis {
		redisMarks, err := redis.New(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer redisMarks.Close()
		marks = redisMarks
	}
	slog.Info("Debt marks backend ready", "backend", cfg.MarksBackend)

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)

	deps := routerDeps{
		store:     store,
		marks:     marks,
		policy:    cfg.Policy(),
		collector: metrics.NewCollector(),
		staticDir: staticDir,
		origins:   cfg.CORSOrigins,
	}
	if cfg.AuthEnabled() {
		authenticator, err := auth.NewPassphraseAuthenticator(cfg.AuthPassphraseHash)
		if err != nil {
			return fmt.Errorf("failed to configure auth: %w", err)
		}
		if authenticator.Open() {
			slog.Warn("Auth enabled without a passphrase; any device can pair")
		}
		deps.authenticator = authenticator
		deps.jwtManager = auth.NewJWTManager(cfg.AuthSecret, cfg.TokenTTL)
	}
	slog.Info("Services configured", "ledger_policy", deps.policy, "auth", cfg.AuthEnabled())

	// h2c serves HTTP/2 without TLS, which Connect and gRPC clients expect.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(newRouter(deps), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
