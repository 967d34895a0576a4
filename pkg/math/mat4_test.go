package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}

	got := m.TransformVec3(Vec3{1, 2, 3})
	if got != (Vec3{6, 12, 18}) {
		t.Errorf("TransformVec3: got %v, want (6, 12, 18)", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(math.Pi/4, 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, -5, 0}
	m := LookAt(eye, Vec3{}, UnitZ)

	if got := m.TransformVec3(eye); !got.ApproxEqual(Vec3{}, 1e-12) {
		t.Errorf("LookAt(eye) = %v, want origin", got)
	}

	// The target must end up straight ahead on -Z in view space.
	got := m.TransformVec3(Vec3{})
	if !got.ApproxEqual(Vec3{0, 0, -5}, 1e-12) {
		t.Errorf("LookAt(target) = %v, want (0, 0, -5)", got)
	}
}

func TestInverse(t *testing.T) {
	view := LookAt(Vec3{3, -7, 2}, Vec3{0, 0, 1}, UnitZ)
	proj := Perspective(math.Pi/3, 1.5, 0.01, 1000)
	vp := proj.Mul(view)

	product := vp.Mul(vp.Inverse())
	id := Identity()
	for i := range product {
		if math.Abs(product[i]-id[i]) > 1e-9 {
			t.Fatalf("M * M^-1 element %d = %g, want %g", i, product[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("Inverse of a singular matrix should fall back to identity")
	}
}

func TestFloat32(t *testing.T) {
	m := Translate(1.5, -2.25, 3)
	f := m.Float32()
	if f[12] != 1.5 || f[13] != -2.25 || f[14] != 3 || f[15] != 1 {
		t.Errorf("Float32 translation = %v", f[12:])
	}
}
