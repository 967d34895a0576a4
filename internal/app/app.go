// Package app runs the interactive globe viewer: window, input, render loop.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/globeview/internal/engine/camera"
	"github.com/Faultbox/globeview/internal/engine/debug"
	"github.com/Faultbox/globeview/internal/engine/input"
	"github.com/Faultbox/globeview/internal/engine/renderer"
	"github.com/Faultbox/globeview/internal/engine/window"
	"github.com/Faultbox/globeview/internal/logger"
	"github.com/Faultbox/globeview/internal/navigation"
	"github.com/Faultbox/globeview/internal/observability"
	"github.com/Faultbox/globeview/internal/tiles"
	"github.com/Faultbox/globeview/internal/viewer"
)

// Config holds viewer window configuration.
type Config struct {
	Width         int
	Height        int
	Fullscreen    bool
	VSync         bool
	FPSLimit      int
	ScreenshotDir string
}

// App is the running viewer.
type App struct {
	config   Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	controller  *camera.OrbitController
	slot        *tiles.Slot
	metrics     *observability.CoverageCollector
	tracker     *viewer.TileTracker
	screenshots *debug.ScreenshotCapture

	title string
}

// New creates the window and renderer and attaches the navigation state.
// metrics may be nil.
func New(cfg Config, ctrl *camera.OrbitController, slot *tiles.Slot, metrics *observability.CoverageCollector) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	a := &App{
		config:      cfg,
		controller:  ctrl,
		slot:        slot,
		metrics:     metrics,
		screenshots: debug.NewScreenshotCapture(cfg.ScreenshotDir, "globeview"),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      viewer.Title(slot.Busy(), ctrl.Height()),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, which owns the GL context
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	radius := ctrl.Settings().EarthRadius * ctrl.Settings().Ratio
	a.renderer.SetGraticule(debug.Flatten(debug.NewGraticule(radius).Lines()))
	a.tracker = viewer.NewTileTracker(radius * 1.0005)

	a.resize(w, h)
	a.input = input.New()

	logger.Info("viewer initialized")
	return a, nil
}

// Run drives the frame loop until the window is closed, Escape is pressed or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.running = true

	var minFrame time.Duration
	if a.config.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(a.config.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for a.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		if a.input.Update() || ctx.Err() != nil {
			a.running = false
			break
		}
		a.handleEvents()

		a.update()
		a.render()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if spent := time.Since(frameStart); spent < minFrame {
				time.Sleep(minFrame - spent)
			}
		}
	}

	return nil
}

// Close releases the renderer and the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			// Event sizes are in window points; GL needs pixels
			a.resize(a.window.DrawableSize())
		case input.EventMouseWheel:
			navigation.ApplyWheel(a.controller, event.WheelY)
		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_F12 {
				a.screenshot()
				continue
			}
			if event.Action == navigation.ActionQuit {
				a.running = false
				continue
			}
			navigation.Apply(a.controller, event.Action)
		}
	}
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.renderer.Resize(width, height)
	a.controller.SetViewport(width, height)
}

func (a *App) update() {
	a.controller.Update()

	height := a.controller.Height()
	a.metrics.SetCameraHeight(height)

	if title := viewer.Title(a.slot.Busy(), height); title != a.title {
		a.window.SetTitle(title)
		a.title = title
	}

	if verts, changed := a.tracker.Update(a.slot.Last()); changed {
		a.renderer.SetTileOutline(verts)
	}
}

func (a *App) render() {
	a.renderer.Begin()
	a.renderer.DrawLines(a.controller.ViewProjection().Float32())
	a.renderer.End()
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	name, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}
