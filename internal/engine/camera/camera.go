// Package camera provides the perspective camera and the orbit controller that
// flies it around the globe.
package camera

import (
	gomath "math"

	"github.com/Faultbox/globeview/pkg/math"
)

// Perspective is a perspective camera. Pose fields are written by the
// OrbitController every tick and read by the renderer.
type Perspective struct {
	Position math.Vec3
	Up       math.Vec3
	Target   math.Vec3

	FOVY   float64 // Vertical field of view in degrees
	Aspect float64 // Width / height
	Near   float64
	Far    float64
}

// NewPerspective creates a camera with the given vertical FOV and aspect ratio.
func NewPerspective(fovY, aspect, near, far float64) *Perspective {
	return &Perspective{
		Up:     math.UnitZ,
		FOVY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// SetPose copies a pose into the camera.
func (c *Perspective) SetPose(p Pose) {
	c.Position = p.Position
	c.Up = p.Up
	c.Target = p.LookTarget
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the projection matrix for this camera.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FOVY*gomath.Pi/180, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
