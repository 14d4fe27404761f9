package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{
			name:     "Add",
			result:   NewVec3(1, 2, 3).Add(NewVec3(4, 5, 6)),
			expected: NewVec3(5, 7, 9),
		},
		{
			name:     "Subtract",
			result:   NewVec3(4, 5, 6).Subtract(NewVec3(1, 2, 3)),
			expected: NewVec3(3, 3, 3),
		},
		{
			name:     "Multiply",
			result:   NewVec3(1, -2, 3).Multiply(2),
			expected: NewVec3(2, -4, 6),
		},
		{
			name:     "MultiplyVec",
			result:   NewVec3(1, 2, 3).MultiplyVec(NewVec3(2, 3, 4)),
			expected: NewVec3(2, 6, 12),
		},
		{
			name:     "Cross of x and y is z",
			result:   NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "Negate",
			result:   NewVec3(1, -2, 3).Negate(),
			expected: NewVec3(-1, 2, -3),
		},
		{
			name:     "Clamp",
			result:   NewVec3(-1, 0.5, 2).Clamp(0, 1),
			expected: NewVec3(0, 0.5, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(3, 4, 0)

	if got := v.Dot(NewVec3(1, 0, 0)); got != 3 {
		t.Errorf("Dot: expected 3, got %f", got)
	}
	if got := v.Length(); got != 5 {
		t.Errorf("Length: expected 5, got %f", got)
	}
	if got := v.LengthSquared(); got != 25 {
		t.Errorf("LengthSquared: expected 25, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(2, -3, 6).Normalize()

	const tolerance = 1e-12
	if math.Abs(v.Length()-1) > tolerance {
		t.Errorf("Normalized vector should have unit length, got %f", v.Length())
	}

	// Zero vector stays zero
	zero := NewVec3(0, 0, 0).Normalize()
	if zero.Length() != 0 {
		t.Errorf("Normalizing zero vector should return zero, got %v", zero)
	}
}

func TestVec3_Luminance(t *testing.T) {
	// Luminance weights sum to one, so a gray color keeps its value
	gray := NewVec3(0.5, 0.5, 0.5)
	const tolerance = 1e-12
	if math.Abs(gray.Luminance()-0.5) > tolerance {
		t.Errorf("Expected luminance 0.5, got %f", gray.Luminance())
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Finite vector reported as non-finite")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf vector reported as finite")
	}
}
