package camera

import (
	gomath "math"
	"sync"

	"github.com/Faultbox/globeview/internal/engine/picking"
	"github.com/Faultbox/globeview/pkg/geo"
	"github.com/Faultbox/globeview/pkg/math"
)

// LookMode selects where the camera points.
type LookMode int

const (
	// LookHorizon aims at the globe centre.
	LookHorizon LookMode = iota
	// LookZenith aims one planet radius up the polar axis.
	LookZenith
)

// String returns the mode name.
func (m LookMode) String() string {
	switch m {
	case LookZenith:
		return "zenith"
	default:
		return "horizon"
	}
}

// OrbitState is the camera's position on its orbit around the globe.
// Theta and Phi are radians, Height is meters above the surface and the
// angular velocities are radians per tick.
type OrbitState struct {
	Theta  float64
	Phi    float64
	Height float64

	AngularVelocityTheta float64
	AngularVelocityPhi   float64

	LookTargetZ float64 // Render units
}

// Pose is the camera placement derived from an OrbitState.
type Pose struct {
	Position   math.Vec3
	Up         math.Vec3
	LookTarget math.Vec3
}

// GeoPick is the geographic point under a screen coordinate. Distance is the
// camera-to-surface distance in meters.
type GeoPick struct {
	Latitude  float64 // Degrees
	Longitude float64 // Degrees
	Distance  float64
}

// Point returns the pick position as a geo.Point.
func (p GeoPick) Point() geo.Point {
	return geo.Point{Lat: p.Latitude, Lon: p.Longitude}
}

// Settings configures an OrbitController. Distances are meters; Ratio converts
// meters to render units and is applied only when building poses.
type Settings struct {
	EarthRadius float64
	Ratio       float64
	MinHeight   float64
	MaxHeight   float64

	ZoomSensitivity float64 // Height fraction per zoom step
	PanSensitivity  float64 // Radians per tick per pan step, at height == EarthRadius
	Damping         float64 // Per-tick velocity multiplier, in (0, 1)

	FOVY float64 // Degrees
}

// DefaultSettings returns the stock globe navigation settings.
func DefaultSettings() Settings {
	return Settings{
		EarthRadius:     geo.EarthRadius,
		Ratio:           1e-4,
		MinHeight:       500,
		MaxHeight:       4 * geo.EarthRadius,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.02,
		Damping:         0.93,
		FOVY:            60,
	}
}

// OrbitController orbits a Perspective camera around the globe.
// All methods are safe for concurrent use; each call observes and mutates the
// state atomically.
type OrbitController struct {
	mu sync.Mutex

	settings Settings
	state    OrbitState
	camera   *Perspective

	viewportW, viewportH float64

	// Pickable geometry in render units.
	pickables []picking.Sphere
}

// NewOrbitController creates a controller for cam. The camera's projection
// planes are sized for the globe and its pose is set from the initial state.
func NewOrbitController(cam *Perspective, s Settings) *OrbitController {
	c := &OrbitController{
		settings: s,
		camera:   cam,
		state: OrbitState{
			Theta:  -gomath.Pi / 2,
			Phi:    0,
			Height: 2 * s.EarthRadius,
		},
		viewportW: 1,
		viewportH: 1,
		pickables: []picking.Sphere{{Radius: s.EarthRadius * s.Ratio}},
	}
	c.state.Height = clamp(c.state.Height, s.MinHeight, s.MaxHeight)

	cam.FOVY = s.FOVY
	cam.Far = farPlane(s)
	cam.Near = s.Ratio * s.MinHeight / 10
	cam.SetPose(c.pose())
	return c
}

// Settings returns the controller configuration.
func (c *OrbitController) Settings() Settings {
	return c.settings
}

// State returns a snapshot of the orbit state.
func (c *OrbitController) State() OrbitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Height returns the current height above the surface in meters.
func (c *OrbitController) Height() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Height
}

// SetViewport records the viewport size in pixels and updates the camera
// aspect ratio.
func (c *OrbitController) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewportW = float64(width)
	c.viewportH = float64(height)
	c.camera.Aspect = c.viewportW / c.viewportH
}

// Update advances the orbit by one tick, writes the new pose into the camera
// and returns it.
func (c *OrbitController) Update() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Theta += c.state.AngularVelocityTheta
	c.state.Phi += c.state.AngularVelocityPhi

	p := c.pose()

	c.state.AngularVelocityTheta *= c.settings.Damping
	c.state.AngularVelocityPhi *= c.settings.Damping

	c.camera.SetPose(p)
	return p
}

// ApplyZoomDelta scales the height by (1 + ZoomSensitivity*k) and clamps it.
// Positive k moves away from the globe.
func (c *OrbitController) ApplyZoomDelta(k float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := c.state.Height * (1 + c.settings.ZoomSensitivity*k)
	c.state.Height = clamp(h, c.settings.MinHeight, c.settings.MaxHeight)
}

// ApplyPanDelta adds angular velocity proportional to the current height, so a
// pan step covers roughly the same screen distance at every zoom.
func (c *OrbitController) ApplyPanDelta(kx, ky float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	scale := c.settings.PanSensitivity * c.state.Height / c.settings.EarthRadius
	c.state.AngularVelocityTheta += kx * scale
	c.state.AngularVelocityPhi += ky * scale
}

// SetLookMode switches the look target.
func (c *OrbitController) SetLookMode(mode LookMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if mode == LookZenith {
		c.state.LookTargetZ = c.settings.EarthRadius * c.settings.Ratio
		return
	}
	c.state.LookTargetZ = 0
}

// Pick casts a ray from the camera through the given pixel and returns the
// nearest globe intersection. ok is false when the ray misses.
func (c *OrbitController) Pick(screenX, screenY, viewportW, viewportH float64) (GeoPick, bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return GeoPick{}, false
	}

	c.mu.Lock()
	p := c.pose()
	cam := *c.camera
	spheres := c.pickables
	c.mu.Unlock()

	cam.SetPose(p)
	cam.Aspect = viewportW / viewportH

	ndc := picking.ScreenToNDC(screenX, screenY, viewportW, viewportH)
	ray := picking.RayFromNDC(ndc, p.Position, cam.ViewProjection().Inverse())

	hits := picking.Intersect(ray, spheres)
	if len(hits) == 0 {
		return GeoPick{}, false
	}

	ll := geo.FromCartesian(hits[0].Point)
	return GeoPick{
		Latitude:  ll.Lat,
		Longitude: ll.Lon,
		Distance:  hits[0].Distance / c.settings.Ratio,
	}, true
}

// PickCenter picks the centre of the current viewport.
func (c *OrbitController) PickCenter() (GeoPick, bool) {
	c.mu.Lock()
	w, h := c.viewportW, c.viewportH
	c.mu.Unlock()
	return c.Pick(w/2, h/2, w, h)
}

// ViewProjection returns the camera's current view-projection matrix.
func (c *OrbitController) ViewProjection() math.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.camera.ViewProjection()
}

// Viewport returns the last viewport size set with SetViewport.
func (c *OrbitController) Viewport() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.viewportW), int(c.viewportH)
}

// pose maps the orbit state to a camera pose. Caller holds mu.
func (c *OrbitController) pose() Pose {
	s := c.state
	r := (c.settings.EarthRadius + s.Height) * c.settings.Ratio
	cosPhi := gomath.Cos(s.Phi)
	return Pose{
		Position: math.Vec3{
			X: r * gomath.Cos(s.Theta) * cosPhi,
			Y: r * gomath.Sin(s.Theta) * cosPhi,
			Z: r * gomath.Sin(s.Phi),
		},
		Up:         math.UnitZ,
		LookTarget: math.Vec3{Z: s.LookTargetZ},
	}
}

// farPlane keeps the far side of the globe in view from MaxHeight, and is
// never nearer than ten Earth radii.
func farPlane(s Settings) float64 {
	if reach := 2 * (s.EarthRadius + s.MaxHeight); reach > 10*s.EarthRadius {
		return s.Ratio * reach
	}
	return s.Ratio * s.EarthRadius * 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
