package camera

import (
	"math"

	"github.com/akmonengine/scenerig/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const nearPlane = 1e-3

// DesiredRotation is the pivot orientation for the current yaw and pitch, without roll
func (r *Rig) DesiredRotation() mgl64.Quat {
	return actor.EulerToQuat(mgl64.Vec3{r.pitch, r.yaw, 0})
}

// ResolvePose moves the pivot and the camera toward the desired state.
// Every interpolation uses the frame rate independent factor 1 - exp(-k*dt).
func (r *Rig) ResolvePose(dt float64) {
	dt = max(0, dt)
	rotation := r.DesiredRotation()

	switch r.smoothing {
	case SmoothCamera:
		r.pivot.SetPosition(r.desiredPivot)
		r.pivot.SetRotation(rotation)

		goal := r.desiredPivot.Sub(r.pivot.Forward().Mul(r.desiredDistance))
		t := damp(r.cameraDamping, dt)
		r.camera.SetPosition(lerp(r.camera.Position(), goal, t))
		r.camera.SetRotation(mgl64.QuatSlerp(r.camera.Rotation(), rotation, t).Normalize())
	default:
		r.pivot.SetPosition(lerp(r.pivot.Position(), r.desiredPivot, damp(r.panDamping, dt)))
		r.pivot.SetRotation(mgl64.QuatSlerp(r.pivot.Rotation(), rotation, damp(r.orbitDamping, dt)).Normalize())

		center := r.pivot.Position()
		current := r.camera.Position().Sub(center).Len()
		distance := current + (r.desiredDistance-current)*damp(r.zoomDamping, dt)

		r.camera.SetPosition(center.Sub(r.pivot.Forward().Mul(distance)))
		// the pivot up keeps the view stable when an unclamped pitch goes over the poles
		r.camera.LookAt(center, r.pivot.Up())
	}
}

// WorldToScreen projects a world point to viewport pixels (origin top left, Y down).
// It reports false for points behind the camera or without a usable viewport.
func (r *Rig) WorldToScreen(point mgl64.Vec3) (mgl64.Vec2, bool) {
	width, height := r.lens.ViewportWidth, r.lens.ViewportHeight
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}, false
	}

	local := r.camera.Rotation().Inverse().Rotate(point.Sub(r.camera.Position()))
	if local.Z() <= nearPlane {
		return mgl64.Vec2{}, false
	}

	tanHalf := math.Tan(r.halfFieldOfView())
	aspect := width / height
	ndcX := local.X() / (local.Z() * tanHalf * aspect)
	ndcY := local.Y() / (local.Z() * tanHalf)

	return mgl64.Vec2{(ndcX + 1) / 2 * width, (1 - ndcY) / 2 * height}, true
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
