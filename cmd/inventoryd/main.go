// Command inventoryd serves the home inventory JSON API.
package main

import (
	"context"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"homeinventory/internal/archive"
	"homeinventory/internal/assist"
	"homeinventory/internal/blob"
	"homeinventory/internal/config"
	"homeinventory/internal/core"
	"homeinventory/internal/httpapi"
	"homeinventory/internal/observability"
	"homeinventory/pkg/domain"
)

const serviceName = "inventoryd"

var exitFunc = os.Exit

func main() {
	exitFunc(cli(os.Args[1:], os.Stderr))
}

func cli(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var envFile, addr string
	fs.StringVar(&envFile, "env-file", "", "optional .env file to load before reading the environment")
	fs.StringVar(&addr, "addr", "", "listen address (overrides INVENTORY_HTTP_ADDR)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if addr != "" {
		cfg.HTTPAddr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", serviceName, err)
		return 1
	}
	return 0
}

// app owns everything built from a Config.
type app struct {
	router *gin.Engine
	repo   *core.Repository
	store  domain.KeyValueStore
	logger *zap.Logger
}

func buildApp(ctx context.Context, cfg config.Config) (*app, error) {
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promRecorder, err := observability.NewPrometheusRecorder(registry)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	metrics := observability.NewFanout(promRecorder, observability.NewExpvarRecorder(""))

	store, err := core.OpenKeyValueStore(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, err
	}
	repo, err := core.Open(ctx, core.NewKVGateway(store, logger.Named("gateway")),
		core.WithLogger(logger.Named("repository")),
		core.WithMetricsRecorder(metrics))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("open repository: %w", err)
	}

	blobs, err := blob.Open(ctx, cfg.BlobConfig())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("open archive: %w", err)
	}

	assistant := assist.New(cfg.AssistOptions(logger.Named("assist")))
	if _, disabled := assistant.(assist.Disabled); disabled {
		logger.Info("AI features disabled: no API key configured")
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(httpapi.Options{
		Repository:  repo,
		Assistant:   assistant,
		Archiver:    archive.New(blobs, logger.Named("archive")),
		Logger:      logger.Named("http"),
		Gatherer:    registry,
		CORSOrigins: cfg.CORSOrigins,
	})
	router.GET("/debug/vars", gin.WrapH(expvar.Handler()))

	logger.Info("inventory ready",
		zap.String("storage", string(cfg.StorageDriver)),
		zap.String("blob", string(blobs.Driver())))
	return &app{router: router, repo: repo, store: store, logger: logger}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func run(ctx context.Context, cfg config.Config) error {
	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
