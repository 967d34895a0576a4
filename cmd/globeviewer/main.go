// Package main is the entry point for the globe viewer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/globeview/internal/app"
	"github.com/Faultbox/globeview/internal/config"
	"github.com/Faultbox/globeview/internal/coverage"
	"github.com/Faultbox/globeview/internal/engine/camera"
	"github.com/Faultbox/globeview/internal/lod"
	"github.com/Faultbox/globeview/internal/logger"
	"github.com/Faultbox/globeview/internal/observability"
	"github.com/Faultbox/globeview/internal/tiles"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote config to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== GlobeView ===")
	logger.Debug("config loaded", zap.Any("config", cfg))

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := cfg.CameraSettings()
	cam := camera.NewPerspective(settings.FOVY, float64(cfg.Graphics.Width)/float64(cfg.Graphics.Height), 0, 0)
	ctrl := camera.NewOrbitController(cam, settings)
	ctrl.SetViewport(cfg.Graphics.Width, cfg.Graphics.Height)

	estimator := lod.NewEstimator(cfg.Globe.EarthRadius, cfg.Globe.MaxZoom)
	estimator.FOVDegrees = cfg.Globe.LODFOV
	estimator.TileSize = float64(cfg.Globe.TileSize)

	var metrics *observability.CoverageCollector
	if cfg.Metrics.Listen != "" {
		var err error
		metrics, err = observability.NewCoverageCollector(nil)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Listen); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	slot := tiles.NewSlot()
	go func() {
		if err := slot.Serve(ctx, logLoad); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("tile loader stopped", zap.Error(err))
		}
	}()

	// The whole globe at a coarse level first, before any pick is possible
	slot.RequestCoverage(coverage.GlobalRequest(cfg.Globe.InitialZoom))

	var recorder coverage.Recorder
	if metrics != nil {
		recorder = metrics
	}
	refresher := coverage.NewRefresher(ctrl, estimator, slot, recorder)
	refresher.Interval = cfg.Coverage.Interval
	go func() {
		if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("coverage refresher stopped", zap.Error(err))
		}
	}()

	viewer, err := app.New(app.Config{
		Width:         cfg.Graphics.Width,
		Height:        cfg.Graphics.Height,
		Fullscreen:    cfg.Graphics.Fullscreen,
		VSync:         cfg.Graphics.VSync,
		FPSLimit:      cfg.Graphics.FPSLimit,
		ScreenshotDir: cfg.Graphics.ScreenshotDir,
	}, ctrl, slot, metrics)
	if err != nil {
		return err
	}
	defer viewer.Close()

	return viewer.Run(ctx)
}

// logLoad stands in for tile fetching, which lives outside the viewer core.
func logLoad(_ context.Context, req coverage.Request) error {
	logger.Info("coverage", zap.Stringer("request", req))
	return nil
}
