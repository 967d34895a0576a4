// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/globeview/pkg/geo"
)

// LineVertex is one endpoint of a GL_LINES segment.
type LineVertex struct {
	X, Y, Z float32 // Position in render units
	R, G, B float32 // Color
}

var (
	gridColor    = [3]float32{0.45, 0.55, 0.65}
	equatorColor = [3]float32{0.85, 0.35, 0.25}
	tileColor    = [3]float32{0.95, 0.85, 0.2}
)

// Graticule generates latitude and longitude lines on a sphere.
type Graticule struct {
	Radius   float64 // Render units
	Step     float64 // Degrees between lines
	Segments int     // Segments per full circle
}

// NewGraticule creates a graticule with 15 degree spacing.
func NewGraticule(radius float64) *Graticule {
	return &Graticule{
		Radius:   radius,
		Step:     15,
		Segments: 96,
	}
}

// Lines returns meridians and parallels as line segment pairs.
// The poles are not drawn as parallels.
func (g *Graticule) Lines() []LineVertex {
	if g.Step <= 0 || g.Segments < 4 || g.Radius <= 0 {
		return nil
	}

	var vertices []LineVertex
	half := g.Segments / 2

	// Meridians, pole to pole
	for lon := -180.0; lon < 180.0; lon += g.Step {
		color := gridColor
		if lon == 0 {
			color = equatorColor
		}
		vertices = appendArc(vertices, g.Radius, half,
			geo.Point{Lat: -90, Lon: lon}, geo.Point{Lat: 90, Lon: lon}, color)
	}

	// Parallels
	for lat := -90.0 + g.Step; lat < 90.0; lat += g.Step {
		color := gridColor
		if lat == 0 {
			color = equatorColor
		}
		vertices = appendArc(vertices, g.Radius, g.Segments,
			geo.Point{Lat: lat, Lon: -180}, geo.Point{Lat: lat, Lon: 180}, color)
	}

	return vertices
}

// TileOutline returns the four edges of t draped over a sphere of the given
// radius, each edge split into segments pieces.
func TileOutline(t geo.Tile, radius float64, segments int) []LineVertex {
	if segments < 1 {
		segments = 1
	}
	nw, se := t.Bounds()
	ne := geo.Point{Lat: nw.Lat, Lon: se.Lon}
	sw := geo.Point{Lat: se.Lat, Lon: nw.Lon}

	vertices := make([]LineVertex, 0, 8*segments)
	vertices = appendArc(vertices, radius, segments, nw, ne, tileColor)
	vertices = appendArc(vertices, radius, segments, ne, se, tileColor)
	vertices = appendArc(vertices, radius, segments, se, sw, tileColor)
	vertices = appendArc(vertices, radius, segments, sw, nw, tileColor)
	return vertices
}

// appendArc appends a polyline interpolated linearly in lat/lon from a to b.
func appendArc(dst []LineVertex, radius float64, segments int, a, b geo.Point, color [3]float32) []LineVertex {
	prev := vertexAt(a, radius, color)
	for i := 1; i <= segments; i++ {
		t := float64(i) / float64(segments)
		p := geo.Point{
			Lat: a.Lat + (b.Lat-a.Lat)*t,
			Lon: a.Lon + (b.Lon-a.Lon)*t,
		}
		next := vertexAt(p, radius, color)
		dst = append(dst, prev, next)
		prev = next
	}
	return dst
}

func vertexAt(p geo.Point, radius float64, color [3]float32) LineVertex {
	v := geo.ToCartesian(p, radius)
	return LineVertex{
		X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z),
		R: color[0], G: color[1], B: color[2],
	}
}

// Flatten packs vertices as interleaved [x, y, z, r, g, b] floats.
func Flatten(vertices []LineVertex) []float32 {
	out := make([]float32, 0, len(vertices)*6)
	for _, v := range vertices {
		out = append(out, v.X, v.Y, v.Z, v.R, v.G, v.B)
	}
	return out
}
