package actor

import "github.com/go-gl/mathgl/mgl64"

// Axes of the scene: forward is +Z, up is +Y and right is +X.
var (
	AxisForward = mgl64.Vec3{0, 0, 1}
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisRight   = mgl64.Vec3{1, 0, 0}
)

// Transform represents a position, rotation and scale in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Matrix returns the TRS matrix (scale first, then rotation, then translation)
func (t Transform) Matrix() mgl64.Mat4 {
	translation := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translation.Mul4(t.Rotation.Normalize().Mat4()).Mul4(scale)
}

// TransformPoint maps a point from this transform's space to its parent space
func (t Transform) TransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	scaled := mgl64.Vec3{point.X() * t.Scale.X(), point.Y() * t.Scale.Y(), point.Z() * t.Scale.Z()}

	return t.Rotation.Rotate(scaled).Add(t.Position)
}

// InverseTransformPoint maps a point from the parent space back to this transform's space.
// Zero scale axes are left untouched.
func (t Transform) InverseTransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	local := t.Rotation.Inverse().Rotate(point.Sub(t.Position))

	return DivideScale(local, t.Scale)
}

// MultiplyScale multiplies a and b component-wise
func MultiplyScale(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// DivideScale divides a by b component-wise, substituting 1 for any zero axis of b
func DivideScale(a, b mgl64.Vec3) mgl64.Vec3 {
	b = NonZeroScale(b)

	return mgl64.Vec3{a.X() / b.X(), a.Y() / b.Y(), a.Z() / b.Z()}
}

// NonZeroScale replaces every exactly-zero axis by 1
func NonZeroScale(s mgl64.Vec3) mgl64.Vec3 {
	for i := range s {
		if s[i] == 0 {
			s[i] = 1
		}
	}

	return s
}

// AbsScale returns the component-wise absolute value of s
func AbsScale(s mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{mgl64.Abs(s.X()), mgl64.Abs(s.Y()), mgl64.Abs(s.Z())}
}
