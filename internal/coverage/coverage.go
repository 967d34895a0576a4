// Package coverage periodically works out which tiles the current view needs
// and hands that request to the tile subsystem.
package coverage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/globeview/internal/engine/camera"
	"github.com/Faultbox/globeview/internal/logger"
	"github.com/Faultbox/globeview/pkg/geo"
)

// DefaultInterval is the refresh period.
const DefaultInterval = 100 * time.Millisecond

// Request describes the tiles that should be resident for the current view.
type Request struct {
	Center camera.GeoPick
	Zoom   int
	Tile   geo.Tile // Tile under Center at Zoom

	// Global requests the whole Mercator range at Zoom instead of the area
	// around Center.
	Global bool
}

// String formats the request for logs.
func (r Request) String() string {
	if r.Global {
		return fmt.Sprintf("global z%d", r.Zoom)
	}
	return fmt.Sprintf("%s z%d (%s)", r.Center.Point(), r.Zoom, r.Tile)
}

// NewRequest builds a request centred on pick.
func NewRequest(pick camera.GeoPick, zoom int) Request {
	return Request{
		Center: pick,
		Zoom:   zoom,
		Tile:   geo.TileAt(pick.Point(), zoom),
	}
}

// GlobalRequest builds a request covering the whole globe at zoom.
func GlobalRequest(zoom int) Request {
	return Request{Zoom: zoom, Global: true}
}

// TileSource is the tile subsystem as seen by the refresher.
type TileSource interface {
	// Busy reports whether a previous request is still being served.
	Busy() bool
	// RequestCoverage hands off a request. It must not block.
	RequestCoverage(Request)
}

// Picker resolves a screen point to a geographic pick.
type Picker interface {
	Pick(screenX, screenY, viewportW, viewportH float64) (camera.GeoPick, bool)
	Viewport() (width, height int)
}

// ZoomEstimator maps a pick to a zoom level.
type ZoomEstimator interface {
	Zoom(pick camera.GeoPick, viewportWidth int) int
}

// Outcome is the result of one refresh cycle.
type Outcome int

const (
	Dispatched Outcome = iota
	SkippedBusy
	SkippedMiss
)

// String returns the outcome label used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case Dispatched:
		return "dispatched"
	case SkippedBusy:
		return "skipped_busy"
	case SkippedMiss:
		return "skipped_miss"
	default:
		return "unknown"
	}
}

// Recorder receives refresh results. Implementations must tolerate being
// called from the refresher goroutine.
type Recorder interface {
	RecordOutcome(Outcome)
	RecordRequest(Request)
}

// Refresher runs the coverage refresh cycle.
type Refresher struct {
	Interval time.Duration

	picker    Picker
	estimator ZoomEstimator
	tiles     TileSource
	recorder  Recorder
}

// NewRefresher wires a refresher. recorder may be nil.
func NewRefresher(picker Picker, estimator ZoomEstimator, tiles TileSource, recorder Recorder) *Refresher {
	return &Refresher{
		Interval:  DefaultInterval,
		picker:    picker,
		estimator: estimator,
		tiles:     tiles,
		recorder:  recorder,
	}
}

// Step runs one cycle: skip while the tile subsystem is busy, pick the screen
// centre, skip on a miss, otherwise estimate the zoom and dispatch.
func (r *Refresher) Step() Outcome {
	out, req := r.step()
	if r.recorder != nil {
		r.recorder.RecordOutcome(out)
		if out == Dispatched {
			r.recorder.RecordRequest(req)
		}
	}
	return out
}

func (r *Refresher) step() (Outcome, Request) {
	if r.tiles.Busy() {
		return SkippedBusy, Request{}
	}

	w, h := r.picker.Viewport()
	pick, ok := r.picker.Pick(float64(w)/2, float64(h)/2, float64(w), float64(h))
	if !ok {
		return SkippedMiss, Request{}
	}

	req := NewRequest(pick, r.estimator.Zoom(pick, w))
	r.tiles.RequestCoverage(req)
	logger.Debug("coverage requested",
		zap.Stringer("request", req),
		zap.Float64("distance", pick.Distance),
	)
	return Dispatched, req
}

// Run calls Step every Interval until ctx is cancelled. Cycles never overlap:
// a slow Step delays the next tick instead of queueing extra ones.
func (r *Refresher) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("coverage refresher started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("coverage refresher stopped")
			return ctx.Err()
		case <-ticker.C:
			r.Step()
		}
	}
}
