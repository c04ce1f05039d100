package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"natal-chart/config"
	"natal-chart/utils/logger"
	"natal-chart/utils/otel"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		return err
	}

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	log := logger.Init(logger.Options{
		Level:       cfg.LogLevel,
		OTel:        otelCfg.Enabled,
		ServiceName: otelCfg.ServiceName,
	})

	log.InfoContext(ctx, "configuration loaded",
		"port", cfg.Port,
		"variant", string(cfg.Variant),
		"default_width", cfg.DefaultWidth,
		"chart_service", cfg.ChartServiceURL != "",
		"backgrounds_file", cfg.BackgroundsFile)

	srv := newServer(cfg, otelCfg.Enabled, otelCfg.ServiceName, log)
	defer srv.Close()

	address := fmt.Sprintf(":%s", cfg.Port)
	log.InfoContext(ctx, "starting natal-chart server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.echo.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server exited properly")
	return nil
}
