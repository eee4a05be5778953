// Package main provides the entry point for the research dashboard service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhettlabs/research-dashboard-service/internal/config"
	"github.com/rhettlabs/research-dashboard-service/internal/dashboard"
	"github.com/rhettlabs/research-dashboard-service/internal/llm"
	"github.com/rhettlabs/research-dashboard-service/internal/observability"
	"github.com/rhettlabs/research-dashboard-service/internal/openalex"
	httpserver "github.com/rhettlabs/research-dashboard-service/internal/server/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("research-dashboard-service starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Set up Prometheus metrics if configured.
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)
	}

	// Bibliographic client for the OpenAlex API.
	bibClient := openalex.New(openalex.Config{
		BaseURL:     cfg.OpenAlex.BaseURL,
		Email:       cfg.OpenAlex.Email,
		Timeout:     cfg.OpenAlex.Timeout,
		MinInterval: cfg.OpenAlex.MinInterval,
		PerPage:     cfg.OpenAlex.PerPage,
	})

	// Completion client. Without a configured provider the narrative
	// endpoints serve curated fallback text.
	var completer llm.Completer
	if cfg.CompletionEnabled() {
		completer = llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:      cfg.LLM.OpenAI.APIKey,
			Model:       cfg.LLM.OpenAI.Model,
			BaseURL:     cfg.LLM.OpenAI.BaseURL,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		})
		logger.Info().
			Str("provider", completer.Provider()).
			Str("model", completer.Model()).
			Msg("completion client configured")
	} else {
		logger.Warn().Msg("no completion provider configured, narrative endpoints serve fallback text")
	}

	svc := dashboard.New(bibClient, completer, dashboard.Config{
		TrendingWindowDays: cfg.Dashboard.TrendingWindowDays,
		TrendingSample:     cfg.Dashboard.TrendingSample,
		MinConceptLevel:    cfg.Dashboard.MinConceptLevel,
		TopN:               cfg.Dashboard.TopN,
		AIConceptID:        cfg.Dashboard.AIConceptID,
		ResearcherLimit:    cfg.Dashboard.ResearcherLimit,
		ChatSuggestions:    cfg.Dashboard.ChatSuggestions,
		LootboxQuery:       cfg.Dashboard.LootboxQuery,
		LootboxYears:       cfg.Dashboard.LootboxYears,
	}, logger, metrics)

	httpCfg := httpserver.Config{
		Address:            cfg.Server.HTTPAddress(),
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}
	httpSrv := httpserver.NewServer(httpCfg, svc, logger, metrics)

	// Set up Prometheus metrics handler on a separate port if configured.
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress(),
			Handler:      metricsMux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	// Channel to collect server errors.
	errCh := make(chan error, 2)

	// Start HTTP REST API server in background.
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Start metrics server if configured.
	if metricsServer != nil {
		go func() {
			logger.Info().
				Str("address", metricsServer.Addr).
				Msg("metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	readyLog := logger.Info().Str("http_address", httpCfg.Address)
	if metricsServer != nil {
		readyLog = readyLog.Str("metrics_address", metricsServer.Addr)
	}
	readyLog.Msg("research-dashboard-service is ready")

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	// Graceful shutdown.
	logger.Info().Msg("shutting down research-dashboard-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown error")
		}
	}

	logger.Info().Msg("research-dashboard-service stopped")
	return nil
}
