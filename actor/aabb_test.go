package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// AABB Utility Function Tests
// =============================================================================

func TestAABB_CenterSizeExtents(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{-1, 2, 0}, Max: mgl64.Vec3{3, 4, 6}}

	if !vec3Equal(aabb.Center(), mgl64.Vec3{1, 3, 3}, 1e-12) {
		t.Errorf("Center = %v", aabb.Center())
	}
	if !vec3Equal(aabb.Size(), mgl64.Vec3{4, 2, 6}, 1e-12) {
		t.Errorf("Size = %v", aabb.Size())
	}
	if !vec3Equal(aabb.Extents(), mgl64.Vec3{2, 1, 3}, 1e-12) {
		t.Errorf("Extents = %v", aabb.Extents())
	}
}

func TestNewAABBFromCenter(t *testing.T) {
	aabb := NewAABBFromCenter(mgl64.Vec3{5, 0, -5}, mgl64.Vec3{1, 1, 1})

	if !vec3Equal(aabb.Min, mgl64.Vec3{4.5, -0.5, -5.5}, 1e-12) {
		t.Errorf("Min = %v", aabb.Min)
	}
	if !vec3Equal(aabb.Max, mgl64.Vec3{5.5, 0.5, -4.5}, 1e-12) {
		t.Errorf("Max = %v", aabb.Max)
	}
}

func TestAABB_Encapsulate(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{-2, 0.5, 0.5}, Max: mgl64.Vec3{0.5, 3, 0.5}}

	merged := a.Encapsulate(b)
	if !vec3Equal(merged.Min, mgl64.Vec3{-2, 0, 0}, 1e-12) || !vec3Equal(merged.Max, mgl64.Vec3{1, 3, 1}, 1e-12) {
		t.Errorf("Encapsulate = %v", merged)
	}

	// Encapsulate is commutative
	other := b.Encapsulate(a)
	if !vec3Equal(merged.Min, other.Min, 1e-12) || !vec3Equal(merged.Max, other.Max, 1e-12) {
		t.Errorf("Encapsulate not commutative: %v vs %v", merged, other)
	}
}

func TestAABB_Transform(t *testing.T) {
	unit := AABB{Min: mgl64.Vec3{-0.5, -0.5, -0.5}, Max: mgl64.Vec3{0.5, 0.5, 0.5}}

	t.Run("translation and scale", func(t *testing.T) {
		tr := NewTransform()
		tr.Position = mgl64.Vec3{10, 0, 0}
		tr.Scale = mgl64.Vec3{2, 4, 6}

		out := unit.Transform(tr.Matrix())
		if !vec3Equal(out.Min, mgl64.Vec3{9, -2, -3}, 1e-9) || !vec3Equal(out.Max, mgl64.Vec3{11, 2, 3}, 1e-9) {
			t.Errorf("Transform = %v", out)
		}
	})

	t.Run("45 degree rotation grows the box", func(t *testing.T) {
		tr := NewTransform()
		tr.Rotation = mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})

		out := unit.Transform(tr.Matrix())
		half := math.Sqrt2 / 2
		if !floatEqual(out.Max.X(), half, 1e-9) || !floatEqual(out.Max.Z(), half, 1e-9) {
			t.Errorf("Max = %v, expected X=Z=%v", out.Max, half)
		}
		if !floatEqual(out.Max.Y(), 0.5, 1e-9) {
			t.Errorf("Max.Y = %v, expected 0.5", out.Max.Y())
		}
	})
}
