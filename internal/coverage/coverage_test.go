package coverage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Faultbox/globeview/internal/engine/camera"
	"github.com/Faultbox/globeview/internal/lod"
	"github.com/Faultbox/globeview/pkg/geo"
)

type fakeTiles struct {
	mu       sync.Mutex
	busy     bool
	requests []Request
}

func (f *fakeTiles) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func (f *fakeTiles) RequestCoverage(req Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
}

func (f *fakeTiles) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakePicker struct {
	pick  camera.GeoPick
	hit   bool
	calls int
	lastX float64
	lastY float64
}

func (f *fakePicker) Pick(x, y, w, h float64) (camera.GeoPick, bool) {
	f.calls++
	f.lastX, f.lastY = x, y
	return f.pick, f.hit
}

func (f *fakePicker) Viewport() (int, int) { return 1000, 600 }

type countingRecorder struct {
	outcomes map[Outcome]int
	last     Request
}

func (r *countingRecorder) RecordOutcome(o Outcome) {
	if r.outcomes == nil {
		r.outcomes = map[Outcome]int{}
	}
	r.outcomes[o]++
}

func (r *countingRecorder) RecordRequest(req Request) { r.last = req }

func TestStepDispatches(t *testing.T) {
	tiles := &fakeTiles{}
	picker := &fakePicker{pick: camera.GeoPick{Latitude: 0, Longitude: -90, Distance: 2 * geo.EarthRadius}, hit: true}
	rec := &countingRecorder{}
	r := NewRefresher(picker, lod.NewEstimator(geo.EarthRadius, 19), tiles, rec)

	if got := r.Step(); got != Dispatched {
		t.Fatalf("Step() = %v, want dispatched", got)
	}
	if picker.lastX != 500 || picker.lastY != 300 {
		t.Errorf("picked (%v, %v), want screen centre (500, 300)", picker.lastX, picker.lastY)
	}
	if tiles.count() != 1 {
		t.Fatalf("got %d requests, want 1", tiles.count())
	}

	req := tiles.requests[0]
	if req.Zoom != 4 {
		t.Errorf("zoom = %d, want 4", req.Zoom)
	}
	if req.Tile != geo.TileAt(geo.Point{Lat: 0, Lon: -90}, 4) {
		t.Errorf("tile = %v", req.Tile)
	}
	if rec.outcomes[Dispatched] != 1 || rec.last.Zoom != 4 {
		t.Errorf("recorder = %+v", rec)
	}
}

func TestStepSkipsWhenBusy(t *testing.T) {
	tiles := &fakeTiles{busy: true}
	picker := &fakePicker{hit: true, pick: camera.GeoPick{Distance: geo.EarthRadius}}
	rec := &countingRecorder{}
	r := NewRefresher(picker, lod.NewEstimator(geo.EarthRadius, 19), tiles, rec)

	for i := 0; i < 3; i++ {
		if got := r.Step(); got != SkippedBusy {
			t.Fatalf("Step() = %v, want skipped_busy", got)
		}
	}
	if picker.calls != 0 {
		t.Errorf("picker called %d times while busy", picker.calls)
	}
	if tiles.count() != 0 {
		t.Errorf("dispatched %d requests while busy", tiles.count())
	}
	if rec.outcomes[SkippedBusy] != 3 {
		t.Errorf("skipped_busy = %d, want 3", rec.outcomes[SkippedBusy])
	}
}

func TestStepSkipsOnMiss(t *testing.T) {
	tiles := &fakeTiles{}
	r := NewRefresher(&fakePicker{hit: false}, lod.NewEstimator(geo.EarthRadius, 19), tiles, nil)

	if got := r.Step(); got != SkippedMiss {
		t.Fatalf("Step() = %v, want skipped_miss", got)
	}
	if tiles.count() != 0 {
		t.Error("a miss must not dispatch")
	}
}

func TestStepWithOrbitController(t *testing.T) {
	cam := camera.NewPerspective(60, 1, 0.1, 1000)
	ctrl := camera.NewOrbitController(cam, camera.DefaultSettings())
	ctrl.SetViewport(1000, 600)
	ctrl.Update()

	tiles := &fakeTiles{}
	r := NewRefresher(ctrl, lod.NewEstimator(geo.EarthRadius, 19), tiles, nil)
	if got := r.Step(); got != Dispatched {
		t.Fatalf("Step() = %v, want dispatched", got)
	}

	req := tiles.requests[0]
	if req.Zoom != 4 {
		t.Errorf("zoom from 2R altitude = %d, want 4", req.Zoom)
	}
	if req.Center.Longitude > -89.999 || req.Center.Longitude < -90.001 {
		t.Errorf("centre longitude = %v, want -90", req.Center.Longitude)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	tiles := &fakeTiles{}
	picker := &fakePicker{hit: true, pick: camera.GeoPick{Distance: geo.EarthRadius}}
	r := NewRefresher(picker, lod.NewEstimator(geo.EarthRadius, 19), tiles, nil)
	r.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()

	deadline := time.Now().Add(time.Second)
	for tiles.count() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("refresher did not tick")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRequestString(t *testing.T) {
	if got := GlobalRequest(3).String(); got != "global z3" {
		t.Errorf("String() = %q", got)
	}
	req := NewRequest(camera.GeoPick{Latitude: 0, Longitude: 0}, 1)
	if got := req.String(); got != "0.000000,0.000000 z1 (1/1/1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := map[Outcome]string{
		Dispatched:  "dispatched",
		SkippedBusy: "skipped_busy",
		SkippedMiss: "skipped_miss",
		Outcome(99): "unknown",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}
