package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/stranalyzer/internal/config"
	logpkg "github.com/kailas-cloud/stranalyzer/internal/logger"
	"github.com/kailas-cloud/stranalyzer/internal/metrics"
	analysisrepo "github.com/kailas-cloud/stranalyzer/internal/repository/analysis"
	chiTransport "github.com/kailas-cloud/stranalyzer/internal/transport/chi"
	analysisuc "github.com/kailas-cloud/stranalyzer/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/stranalyzer/internal/usecase/health"
	"github.com/kailas-cloud/stranalyzer/internal/version"
)

func newServeCmd() *cobra.Command {
	var env string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env == "" {
				env = config.GetEnv()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, env)
		},
	}
	cmd.Flags().StringVar(&env, "env", "", "config environment (local, dev, prod); defaults to $ENV")
	return cmd
}

func serve(ctx context.Context, env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting stranalyzer API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.Strings("cors_origins", cfg.CORS.AllowedOrigins),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	repo := analysisrepo.New().WithSizeGauge(metrics.RecordsStored)
	analysisSvc := analysisuc.New(repo).WithObserver(metrics.Observer{})
	healthSvc := healthuc.New(repo, repo)

	server := chiTransport.NewServer(analysisSvc, healthSvc, logger).WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)
	handler := chiTransport.NewRouter(server, logger, chiTransport.RouterOptions{
		CORS:    cfg.CORS,
		Metrics: cfg.Metrics,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
