// Package geo converts between geographic coordinates, globe-centred Cartesian
// space and slippy-map tile indices.
//
// Cartesian space has its polar axis along +Z: latitude 0, longitude 0 lies on
// +X and longitude 90 on +Y.
package geo

import (
	"fmt"
	"math"

	gmath "github.com/Faultbox/globeview/pkg/math"
)

const (
	// EarthRadius is the WGS84 equatorial radius in meters.
	EarthRadius = 6378137.0

	// TileSize is the edge length of a map tile texture in pixels.
	TileSize = 256

	// MaxLatitude is the Web Mercator latitude limit in degrees.
	MaxLatitude = 85.05112878
)

// Point is a geographic position in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// String formats the point as "lat,lon".
func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// ToCartesian places p on a sphere of the given radius.
func ToCartesian(p Point, radius float64) gmath.Vec3 {
	lat := Radians(p.Lat)
	lon := Radians(p.Lon)
	cosLat := math.Cos(lat)
	return gmath.Vec3{
		X: radius * cosLat * math.Cos(lon),
		Y: radius * cosLat * math.Sin(lon),
		Z: radius * math.Sin(lat),
	}
}

// FromCartesian returns the geographic direction of v. The radius is ignored;
// the zero vector maps to (0, 0).
func FromCartesian(v gmath.Vec3) Point {
	r := v.Length()
	if r == 0 {
		return Point{}
	}
	z := v.Z / r
	// Rounding can push |z| a hair past 1 at the poles.
	z = math.Max(-1, math.Min(1, z))
	return Point{
		Lat: Degrees(math.Asin(z)),
		Lon: Degrees(math.Atan2(v.Y, v.X)),
	}
}
