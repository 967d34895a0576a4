package geo

import (
	"math"
	"testing"
)

func TestCartesianRoundTrip(t *testing.T) {
	points := []Point{
		{0, 0},
		{0, -90},
		{45, 45},
		{-33.8688, 151.2093},
		{51.5074, -0.1278},
		{89.9, 10},
		{-89.9, -170},
	}

	for _, p := range points {
		t.Run(p.String(), func(t *testing.T) {
			v := ToCartesian(p, EarthRadius)
			if math.Abs(v.Length()-EarthRadius) > 1e-6 {
				t.Errorf("|v| = %f, want %f", v.Length(), EarthRadius)
			}
			got := FromCartesian(v)
			if math.Abs(Radians(got.Lat-p.Lat)) > 1e-9 || math.Abs(Radians(got.Lon-p.Lon)) > 1e-9 {
				t.Errorf("round trip = %v, want %v", got, p)
			}
		})
	}
}

func TestToCartesianAxes(t *testing.T) {
	tests := []struct {
		p          Point
		x, y, z    float64
		descriptor string
	}{
		{Point{0, 0}, 1, 0, 0, "prime meridian on +X"},
		{Point{0, 90}, 0, 1, 0, "90E on +Y"},
		{Point{90, 0}, 0, 0, 1, "north pole on +Z"},
	}

	for _, tt := range tests {
		v := ToCartesian(tt.p, 1)
		if math.Abs(v.X-tt.x) > 1e-12 || math.Abs(v.Y-tt.y) > 1e-12 || math.Abs(v.Z-tt.z) > 1e-12 {
			t.Errorf("%s: got %v", tt.descriptor, v)
		}
	}
}

func TestFromCartesianZero(t *testing.T) {
	var zero Point
	if got := FromCartesian(ToCartesian(zero, 0)); got != zero {
		t.Errorf("FromCartesian(0) = %v, want %v", got, zero)
	}
}

func TestTileAt(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		z    int
		want Tile
	}{
		{"world", Point{10, 10}, 0, Tile{0, 0, 0}},
		{"origin z1", Point{-1, 1}, 1, Tile{1, 1, 1}},
		{"london z10", Point{51.5074, -0.1278}, 10, Tile{511, 340, 10}},
		{"antimeridian", Point{0, 180}, 3, Tile{7, 4, 3}},
		{"north pole clamps", Point{90, -180}, 4, Tile{0, 0, 4}},
		{"south pole clamps", Point{-90, 0}, 4, Tile{8, 15, 4}},
		{"negative zoom", Point{0, 0}, -2, Tile{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TileAt(tt.p, tt.z); got != tt.want {
				t.Errorf("TileAt(%v, %d) = %v, want %v", tt.p, tt.z, got, tt.want)
			}
		})
	}
}

func TestTileBoundsContainPoint(t *testing.T) {
	p := Point{Lat: 35.6762, Lon: 139.6503}
	for z := 0; z <= 19; z++ {
		nw, se := TileAt(p, z).Bounds()
		if p.Lat > nw.Lat || p.Lat < se.Lat || p.Lon < nw.Lon || p.Lon > se.Lon {
			t.Errorf("zoom %d: %v outside tile bounds %v..%v", z, p, nw, se)
		}
	}
}

func TestTileString(t *testing.T) {
	if got := (Tile{X: 3, Y: 5, Z: 7}).String(); got != "7/3/5" {
		t.Errorf("String() = %q, want 7/3/5", got)
	}
}
