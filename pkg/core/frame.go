package core

import "math"

// Frame is an orthonormal basis anchored at a shading point. Directions are
// expressed in local space as (x, y, z) coordinates along (Tangent, Bitangent,
// Normal). For curve shading the tangent axis runs along the fiber.
type Frame struct {
	Tangent   Vec3
	Bitangent Vec3
	Normal    Vec3
}

// NewFrame builds a local frame around a unit normal. The tangent direction is
// arbitrary but stable for a given normal.
func NewFrame(normal Vec3) Frame {
	// Find a vector perpendicular to normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return Frame{Tangent: tangent, Bitangent: bitangent, Normal: normal}
}

// NewFiberFrame builds a local frame for a curve point with the tangent axis
// along the fiber direction. The normal is re-orthogonalized against the
// tangent; if the two are parallel an arbitrary perpendicular is used instead.
func NewFiberFrame(tangent, normal Vec3) Frame {
	t := tangent.Normalize()
	if t.LengthSquared() == 0 {
		t = NewVec3(1, 0, 0)
	}

	// Gram-Schmidt the normal against the tangent
	n := normal.Subtract(t.Multiply(normal.Dot(t)))
	if n.LengthSquared() < 1e-12 {
		n = NewFrame(t).Tangent
	} else {
		n = n.Normalize()
	}

	bitangent := n.Cross(t)

	return Frame{Tangent: t, Bitangent: bitangent, Normal: n}
}

// ToLocal transforms a world-space direction into the frame.
// Inputs are assumed to be unit vectors; they are not re-validated.
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{
		X: v.Dot(f.Tangent),
		Y: v.Dot(f.Bitangent),
		Z: v.Dot(f.Normal),
	}
}

// ToWorld transforms a local direction back into world space.
// Inverse of ToLocal for any unit direction, up to floating-point tolerance.
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.Tangent.Multiply(v.X).
		Add(f.Bitangent.Multiply(v.Y)).
		Add(f.Normal.Multiply(v.Z))
}

// CosTheta returns the cosine of the angle between a local direction and the
// frame normal (just the z component).
func CosTheta(v Vec3) float64 {
	return v.Z
}

// AbsCosTheta returns |cos θ| of a local direction against the frame normal.
func AbsCosTheta(v Vec3) float64 {
	return math.Abs(v.Z)
}
