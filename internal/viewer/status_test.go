package viewer

import (
	"testing"

	"github.com/Faultbox/globeview/internal/coverage"
	"github.com/Faultbox/globeview/internal/engine/camera"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		loading bool
		height  float64
		want    string
	}{
		{true, 12756274, "loading height: 12,756,274"},
		{false, 500.4, "loaded height: 500"},
		{false, 999.6, "loaded height: 1,000"},
		{false, 0, "loaded height: 0"},
	}
	for _, tt := range tests {
		if got := Title(tt.loading, tt.height); got != tt.want {
			t.Errorf("Title(%v, %v) = %q, want %q", tt.loading, tt.height, got, tt.want)
		}
	}
}

func TestTileTracker(t *testing.T) {
	tr := NewTileTracker(1)

	if _, changed := tr.Update(coverage.Request{}, false); changed {
		t.Error("no request should not change the outline")
	}

	verts, changed := tr.Update(coverage.GlobalRequest(3), true)
	if !changed || len(verts) != 0 {
		t.Errorf("global request: changed=%v len=%d, want cleared outline", changed, len(verts))
	}
	if _, changed := tr.Update(coverage.GlobalRequest(3), true); changed {
		t.Error("repeated global request should not change the outline")
	}

	pick := camera.GeoPick{Latitude: 10, Longitude: 20, Distance: 1e6}
	verts, changed = tr.Update(coverage.NewRequest(pick, 5), true)
	if !changed {
		t.Fatal("new tile should change the outline")
	}
	// 4 edges, 16 segments, 2 vertices, 6 floats
	if want := 4 * 16 * 2 * 6; len(verts) != want {
		t.Errorf("len = %d, want %d", len(verts), want)
	}

	// Nearby pick within the same tile
	pick.Longitude += 0.01
	if _, changed := tr.Update(coverage.NewRequest(pick, 5), true); changed {
		t.Error("same tile should not change the outline")
	}
	if _, changed := tr.Update(coverage.NewRequest(pick, 6), true); !changed {
		t.Error("different zoom should change the outline")
	}
}
