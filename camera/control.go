package camera

import (
	"math"

	"github.com/akmonengine/scenerig/input"
	"github.com/go-gl/mathgl/mgl64"
)

// UpdateOrbit rotates the desired yaw and pitch while the orbit button is held.
// delta is the pointer movement in pixels, Y up.
func (r *Rig) UpdateOrbit(delta mgl64.Vec2, held bool, dt float64) {
	if !held {
		return
	}

	signX, signY := 1.0, 1.0
	if r.invertX {
		signX = -1
	}
	if r.invertY {
		signY = -1
	}

	r.yaw += delta.X() * signX * r.orbitSpeed * dt
	r.pitch -= delta.Y() * signY * r.orbitSpeed * dt
	r.clampPitch()
}

// orbitTouch orbits with a single moving finger, the touch delta is already per frame
func (r *Rig) orbitTouch(touch input.Touch) {
	if touch.Phase != input.TouchMoved {
		return
	}

	r.yaw += touch.Delta.X() * r.touchOrbit
	r.pitch -= touch.Delta.Y() * r.touchOrbit
	r.clampPitch()
}

// UpdateZoom changes the desired distance from a scroll delta, positive zooms in
func (r *Rig) UpdateZoom(scroll float64) {
	if math.Abs(scroll) <= scrollDeadZone {
		return
	}

	r.zoom(scroll * r.zoomSpeed)
}

// UpdatePinch zooms with two fingers: spreading them apart zooms in
func (r *Rig) UpdatePinch(t0, t1 input.Touch) {
	previous := t0.PreviousPosition().Sub(t1.PreviousPosition()).Len()
	current := t0.Position.Sub(t1.Position).Len()

	diff := current - previous
	if diff == 0 {
		return
	}

	r.zoom(diff * r.pinchSpeed)
}

func (r *Rig) zoom(amount float64) {
	switch r.zoomPolicy {
	case ZoomExponential:
		r.desiredDistance *= math.Exp(-amount)
	default:
		r.desiredDistance -= amount
	}

	r.desiredDistance = r.clampDistance(r.desiredDistance)
}

// UpdatePan slides the desired pivot in the camera plane while the pan button is held.
// The scene follows the pointer: dragging right moves the pivot left.
func (r *Rig) UpdatePan(delta mgl64.Vec2, held bool, dt float64) {
	if !held {
		return
	}

	var scale float64
	switch r.panPolicy {
	case PanFieldOfView:
		worldPerPixel, ok := r.WorldPerPixel(r.desiredDistance)
		if !ok {
			return
		}
		scale = worldPerPixel * r.panSpeed
	default:
		scale = r.desiredDistance * r.panSpeed * dt
	}

	right := r.camera.Right().Mul(delta.X() * scale)
	up := r.camera.Up().Mul(delta.Y() * scale)
	r.desiredPivot = r.desiredPivot.Sub(right.Add(up))
}

// WorldPerPixel is the world size of one viewport pixel at distance from the camera.
// It reports false without a usable viewport height.
func (r *Rig) WorldPerPixel(distance float64) (float64, bool) {
	if r.lens.ViewportHeight <= 0 {
		return 0, false
	}

	return 2 * math.Tan(r.halfFieldOfView()) * distance / r.lens.ViewportHeight, true
}

// FrameTarget centres the desired pivot on the target and picks the distance that
// fits its bounding sphere in the vertical field of view.
func (r *Rig) FrameTarget() {
	if r.target == nil {
		r.logger.Debug("camera: frame skipped, no target")
		return
	}

	bounds, ok := r.target.RenderBounds()
	if !ok {
		r.logger.Debug("camera: target has no geometry, framing a unit box", "target", r.target.Name)
		bounds = r.target.Bounds()
	}

	r.desiredPivot = bounds.Center()
	r.desiredDistance = r.clampDistance(r.FramingDistance(bounds.Extents().Len()))
}

// FramingDistance is the unclamped distance fitting a sphere of radius in view,
// including FrameMargin. The radius is floored at MinFrameRadius.
func (r *Rig) FramingDistance(radius float64) float64 {
	radius = max(radius, MinFrameRadius)
	half := r.halfFieldOfView()

	switch r.framing {
	case FramingTangent:
		return radius / math.Tan(half) * FrameMargin
	default:
		return radius / math.Sin(half) * FrameMargin
	}
}
