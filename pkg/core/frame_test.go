package core

import (
	"math"
	"math/rand"
	"testing"
)

func checkOrthonormal(t *testing.T, f Frame) {
	t.Helper()

	const tolerance = 1e-9
	if math.Abs(f.Tangent.Length()-1) > tolerance ||
		math.Abs(f.Bitangent.Length()-1) > tolerance ||
		math.Abs(f.Normal.Length()-1) > tolerance {
		t.Errorf("Frame axes not unit length: %v", f)
	}
	if math.Abs(f.Tangent.Dot(f.Bitangent)) > tolerance ||
		math.Abs(f.Tangent.Dot(f.Normal)) > tolerance ||
		math.Abs(f.Bitangent.Dot(f.Normal)) > tolerance {
		t.Errorf("Frame axes not orthogonal: %v", f)
	}
}

func TestFrame_Orthonormal(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, 0, -1),
		NewVec3(1, 0, 0),
		NewVec3(0, 1, 0),
		NewVec3(1, 1, 1).Normalize(),
		NewVec3(-0.3, 0.9, 0.2).Normalize(),
	}

	for _, n := range normals {
		checkOrthonormal(t, NewFrame(n))
	}
}

func TestFrame_RoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	frames := []Frame{
		NewFrame(NewVec3(0, 0, 1)),
		NewFrame(NewVec3(1, 2, -1).Normalize()),
		NewFiberFrame(NewVec3(1, 0, 0), NewVec3(0, 0, 1)),
		NewFiberFrame(NewVec3(1, 1, 0).Normalize(), NewVec3(0, 0.2, 1).Normalize()),
	}

	const tolerance = 1e-5
	for _, frame := range frames {
		for i := 0; i < 100; i++ {
			d := SampleUniformSphere(NewVec2(random.Float64(), random.Float64()))
			roundTrip := frame.ToWorld(frame.ToLocal(d))
			if roundTrip.Subtract(d).Length() > tolerance {
				t.Errorf("Round trip failed: %v -> %v", d, roundTrip)
			}
		}
	}
}

func TestNewFiberFrame_TangentAxis(t *testing.T) {
	tangent := NewVec3(0, 1, 0)
	frame := NewFiberFrame(tangent, NewVec3(0, 0, 1))

	checkOrthonormal(t, frame)

	const tolerance = 1e-9
	if frame.Tangent.Subtract(tangent).Length() > tolerance {
		t.Errorf("Fiber frame tangent should follow the curve, got %v", frame.Tangent)
	}

	// Local x of a direction along the tangent is 1
	local := frame.ToLocal(tangent)
	if math.Abs(local.X-1) > tolerance {
		t.Errorf("Tangent should map to local +x, got %v", local)
	}
}

func TestNewFiberFrame_DegenerateInputs(t *testing.T) {
	// Tangent parallel to normal still yields a valid basis
	frame := NewFiberFrame(NewVec3(0, 0, 1), NewVec3(0, 0, 1))
	checkOrthonormal(t, frame)

	// Zero tangent falls back to an arbitrary axis
	frame = NewFiberFrame(Vec3{}, NewVec3(0, 0, 1))
	checkOrthonormal(t, frame)
}
