// Package viewer holds the frame-level state of the globe viewer that does not
// depend on a window: the status title and the highlighted coverage tile.
package viewer

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/globeview/internal/coverage"
	"github.com/Faultbox/globeview/internal/engine/debug"
	"github.com/Faultbox/globeview/pkg/geo"
)

var printer = message.NewPrinter(language.English)

// Title formats the window title from the tile loader state and the camera
// height above the surface, rounded to whole meters with digit grouping.
func Title(loading bool, height float64) string {
	state := "loaded"
	if loading {
		state = "loading"
	}
	return printer.Sprintf("%s height: %d", state, int64(math.Round(height)))
}

// TileTracker turns coverage requests into outline geometry, regenerating it
// only when the requested tile changes.
type TileTracker struct {
	Radius   float64 // Render units
	Segments int

	current geo.Tile
	global  bool
	valid   bool
}

// NewTileTracker creates a tracker for a globe of the given render radius.
func NewTileTracker(radius float64) *TileTracker {
	return &TileTracker{Radius: radius, Segments: 16}
}

// Update reports whether the outline changed and, if so, the new vertices in
// [x, y, z, r, g, b] layout. Global requests clear the outline.
func (t *TileTracker) Update(req coverage.Request, ok bool) ([]float32, bool) {
	if !ok {
		return nil, false
	}
	if t.valid && req.Global == t.global && (req.Global || req.Tile == t.current) {
		return nil, false
	}

	t.valid = true
	t.global = req.Global
	t.current = req.Tile
	if req.Global {
		return []float32{}, true
	}
	return debug.Flatten(debug.TileOutline(req.Tile, t.Radius, t.Segments)), true
}
