package geo

import (
	"fmt"
	"math"
)

// Tile addresses one slippy-map tile.
type Tile struct {
	X, Y, Z int
}

// String formats the tile as "z/x/y".
func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Bounds returns the north-west and south-east corners of the tile.
func (t Tile) Bounds() (nw, se Point) {
	nw = Point{Lat: TileYToLat(float64(t.Y), t.Z), Lon: TileXToLon(float64(t.X), t.Z)}
	se = Point{Lat: TileYToLat(float64(t.Y+1), t.Z), Lon: TileXToLon(float64(t.X+1), t.Z)}
	return nw, se
}

// LonToTileX returns the fractional tile column of lon at zoom z.
func LonToTileX(lon float64, z int) float64 {
	return (lon + 180.0) / 360.0 * math.Exp2(float64(z))
}

// LatToTileY returns the fractional tile row of lat at zoom z.
// Latitudes beyond the Mercator limit are clamped.
func LatToTileY(lat float64, z int) float64 {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	r := Radians(lat)
	return (1.0 - math.Log(math.Tan(r)+1/math.Cos(r))/math.Pi) / 2.0 * math.Exp2(float64(z))
}

// TileXToLon returns the longitude of the western edge of column x.
func TileXToLon(x float64, z int) float64 {
	return x/math.Exp2(float64(z))*360.0 - 180.0
}

// TileYToLat returns the latitude of the northern edge of row y.
func TileYToLat(y float64, z int) float64 {
	n := math.Pi - 2.0*math.Pi*y/math.Exp2(float64(z))
	return Degrees(math.Atan(math.Sinh(n)))
}

// TileAt returns the tile containing p at zoom z. Indices are kept inside the
// 2^z grid so the antimeridian and the clamped poles stay addressable.
func TileAt(p Point, z int) Tile {
	if z < 0 {
		z = 0
	}
	last := int(math.Exp2(float64(z))) - 1
	x := int(math.Floor(LonToTileX(p.Lon, z)))
	y := int(math.Floor(LatToTileY(p.Lat, z)))
	return Tile{X: clampIndex(x, last), Y: clampIndex(y, last), Z: z}
}

func clampIndex(i, last int) int {
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}
