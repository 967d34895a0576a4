// Package picking provides ray casting against the pickable geometry of the globe.
package picking

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/globeview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToNDC converts pixel coordinates to normalized device coordinates
// (-1 to 1, Y up).
func ScreenToNDC(screenX, screenY, viewportW, viewportH float64) math.Vec2 {
	return math.Vec2{
		X: screenX/viewportW*2 - 1,
		Y: -(screenY/viewportH*2 - 1),
	}
}

// RayFromNDC builds a world-space ray starting at eye and passing through the
// given NDC point. invViewProj is the inverse of the view-projection matrix.
func RayFromNDC(ndc math.Vec2, eye math.Vec3, invViewProj math.Mat4) Ray {
	farWorld := invViewProj.MulVec4(math.Vec4{ndc.X, ndc.Y, 1.0, 1.0})

	// Perspective divide
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	far := math.Vec3{X: farWorld[0], Y: farWorld[1], Z: farWorld[2]}
	return Ray{Origin: eye, Direction: far.Sub(eye).Normalize()}
}

// Sphere is a pickable sphere.
type Sphere struct {
	Center math.Vec3
	Radius float64
}

// IntersectSphere returns the distance to the nearest intersection in front of
// the ray origin. If the origin is inside the sphere the exit distance is
// returned.
func (r Ray) IntersectSphere(s Sphere) (t float64, hit bool) {
	// |O + tD - C|^2 = R^2 with |D| = 1
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := gomath.Sqrt(disc)
	t0 := -b - sq
	t1 := -b + sq
	if t0 >= 0 {
		return t0, true
	}
	if t1 >= 0 {
		return t1, true
	}
	return 0, false // Sphere behind ray origin
}

// Hit is one ray intersection.
type Hit struct {
	Point    math.Vec3
	Distance float64
	Index    int // Position of the sphere in the registry
}

// Intersect casts r against every sphere and returns the hits ordered nearest
// first. A miss yields an empty slice.
func Intersect(r Ray, spheres []Sphere) []Hit {
	var hits []Hit
	for i, s := range spheres {
		t, ok := r.IntersectSphere(s)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Point: r.At(t), Distance: t, Index: i})
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})
	return hits
}
