// Package lod picks the map tile zoom level whose texel density matches the
// screen's pixel density at a picked point on the globe.
package lod

import (
	"math"

	"github.com/Faultbox/globeview/internal/engine/camera"
	"github.com/Faultbox/globeview/pkg/geo"
)

// DefaultFOV is the horizontal field of view, in degrees, assumed for the
// estimate. It is fixed and independent of the camera's configured FOV.
const DefaultFOV = 40.0

// Estimator converts a picked distance and latitude into a tile zoom level.
type Estimator struct {
	EarthRadius float64 // Meters
	FOVDegrees  float64
	TileSize    float64 // Texels per tile edge
	MinZoom     int
	MaxZoom     int
}

// Estimate holds the intermediate values of one zoom computation.
type Estimate struct {
	DeltaTheta    float64 // Radians subtended by one screen pixel
	PictureWidth  float64 // Meters covered by one tile's worth of pixels
	Circumference float64 // Meters around the globe at the picked latitude
	DivideCount   float64 // Tiles that fit around that circle
	Zoom          int
}

// NewEstimator returns an estimator with the default FOV and tile size.
func NewEstimator(earthRadius float64, maxZoom int) *Estimator {
	return &Estimator{
		EarthRadius: earthRadius,
		FOVDegrees:  DefaultFOV,
		TileSize:    geo.TileSize,
		MinZoom:     0,
		MaxZoom:     maxZoom,
	}
}

// Zoom returns the zoom level for a pick seen through a viewport of the given
// pixel width.
func (e *Estimator) Zoom(pick camera.GeoPick, viewportWidth int) int {
	return e.Detail(pick, viewportWidth).Zoom
}

// Detail computes the zoom level and returns every intermediate value.
//
// Both the pick distance and the circumference are in meters, so the
// world-to-render ratio cancels out of divideCount.
func (e *Estimator) Detail(pick camera.GeoPick, viewportWidth int) Estimate {
	var est Estimate
	if viewportWidth <= 0 {
		est.Zoom = e.MinZoom
		return est
	}

	est.DeltaTheta = (1.0 / float64(viewportWidth)) * e.FOVDegrees / 180 * math.Pi
	est.PictureWidth = est.DeltaTheta * pick.Distance * e.TileSize
	est.Circumference = math.Cos(pick.Latitude/180*math.Pi) * 2 * math.Pi * e.EarthRadius
	est.DivideCount = est.Circumference / est.PictureWidth
	est.Zoom = e.clampZoom(est.DivideCount)
	return est
}

// clampZoom returns floor(log2(n)) bounded to [MinZoom, MaxZoom]. n <= 0 and
// NaN, where log2 is undefined, yield MinZoom.
func (e *Estimator) clampZoom(n float64) int {
	if math.IsNaN(n) || n <= 0 {
		return e.MinZoom
	}
	z := math.Floor(math.Log2(n))
	if z > float64(e.MaxZoom) {
		return e.MaxZoom
	}
	if z < float64(e.MinZoom) {
		return e.MinZoom
	}
	return int(z)
}
