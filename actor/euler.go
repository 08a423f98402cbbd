package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EulerToQuat builds a rotation from Euler angles in degrees.
// The rotation applies Z first, then X, then Y (q = qY * qX * qZ).
func EulerToQuat(degrees mgl64.Vec3) mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(degrees.Y()),
		mgl64.DegToRad(degrees.X()),
		mgl64.DegToRad(degrees.Z()),
		mgl64.YXZ,
	)
}

// QuatToEuler is the inverse of EulerToQuat. Angles are returned in degrees within [0, 360).
func QuatToEuler(q mgl64.Quat) mgl64.Vec3 {
	m := q.Normalize().Mat4().Mat3()

	// R = Ry * Rx * Rz, so R[1][2] = -sin(x)
	sinX := mgl64.Clamp(-m.At(1, 2), -1, 1)
	x := math.Asin(sinX)

	var y, z float64
	if math.Abs(sinX) < 1-1e-9 {
		y = math.Atan2(m.At(0, 2), m.At(2, 2))
		z = math.Atan2(m.At(1, 0), m.At(1, 1))
	} else {
		// gimbal lock: roll folds into yaw
		y = math.Atan2(-m.At(2, 0), m.At(0, 0))
		z = 0
	}

	return mgl64.Vec3{
		wrapDegrees(mgl64.RadToDeg(x)),
		wrapDegrees(mgl64.RadToDeg(y)),
		wrapDegrees(mgl64.RadToDeg(z)),
	}
}

// LookRotation returns the rotation whose forward axis is forward and whose up axis
// is as close as possible to up. A zero forward yields the identity.
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	if forward.LenSqr() < 1e-12 {
		return mgl64.QuatIdent()
	}
	z := forward.Normalize()
	x := up.Cross(z)
	if x.LenSqr() < 1e-12 {
		// forward is parallel to up, no unique roll
		return mgl64.QuatBetweenVectors(AxisForward, z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(x, y, z).Mat4()).Normalize()
}

func wrapDegrees(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	// avoid returning 360 after rounding
	if angle >= 360 {
		angle -= 360
	}

	return angle
}
