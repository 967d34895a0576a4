// Package observability exposes Prometheus metrics for the viewer.
package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Faultbox/globeview/internal/coverage"
	"github.com/Faultbox/globeview/internal/logger"
)

// CoverageCollector bundles the coverage refresh metrics. It implements
// coverage.Recorder.
type CoverageCollector struct {
	gatherer prometheus.Gatherer

	Refreshes    *prometheus.CounterVec
	Zoom         prometheus.Gauge
	CameraHeight prometheus.Gauge
}

// NewCoverageCollector registers the coverage metrics against reg, defaulting
// to the global Prometheus registry when nil.
func NewCoverageCollector(reg prometheus.Registerer) (*CoverageCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coverage_refresh_total",
		Help: "Coverage refresh cycles, labeled by outcome.",
	}, []string{"outcome"})
	if err := reg.Register(refreshes); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		refreshes = existing
	}

	zoom, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "coverage_zoom_level",
		Help: "Zoom level of the last dispatched coverage request.",
	}))
	if err != nil {
		return nil, err
	}
	height, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "camera_height_meters",
		Help: "Camera height above the globe surface.",
	}))
	if err != nil {
		return nil, err
	}

	// Pre-create the outcome series so they export as zero.
	for _, o := range []coverage.Outcome{coverage.Dispatched, coverage.SkippedBusy, coverage.SkippedMiss} {
		refreshes.WithLabelValues(o.String())
	}

	return &CoverageCollector{
		gatherer:     gatherer,
		Refreshes:    refreshes,
		Zoom:         zoom,
		CameraHeight: height,
	}, nil
}

// RecordOutcome counts one refresh cycle.
func (c *CoverageCollector) RecordOutcome(o coverage.Outcome) {
	if c == nil || c.Refreshes == nil {
		return
	}
	c.Refreshes.WithLabelValues(o.String()).Inc()
}

// RecordRequest tracks the zoom of a dispatched request.
func (c *CoverageCollector) RecordRequest(req coverage.Request) {
	if c == nil || c.Zoom == nil {
		return
	}
	c.Zoom.Set(float64(req.Zoom))
}

// SetCameraHeight records the current camera height.
func (c *CoverageCollector) SetCameraHeight(meters float64) {
	if c == nil || c.CameraHeight == nil {
		return
	}
	c.CameraHeight.Set(meters)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *CoverageCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Serve runs a /metrics HTTP server on addr until ctx is cancelled.
func (c *CoverageCollector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return g, nil
}
