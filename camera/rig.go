// Package camera implements an orbit, pan and zoom camera rig around a pivot.
//
// The rig keeps desired values (yaw, pitch, distance, pivot position) that input
// handlers modify during the update phase, and converges the actual pivot and
// camera nodes toward them in ResolvePose during the late phase.
package camera

import (
	"errors"
	"log/slog"
	"math"

	"github.com/akmonengine/scenerig/actor"
	"github.com/akmonengine/scenerig/input"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNoCamera = errors.New("camera: camera node is required")
	ErrNoPivot  = errors.New("camera: pivot node is required")
)

type Rig struct {
	settings

	camera *actor.Node
	pivot  *actor.Node
	lens   Lens

	yaw             float64
	pitch           float64
	desiredDistance float64
	desiredPivot    mgl64.Vec3
}

// New creates a rig moving cam around pivot. The initial yaw, pitch and distance are
// derived from the current camera placement, see Reset.
func New(cam, pivot *actor.Node, lens Lens, opts ...Option) (*Rig, error) {
	if cam == nil {
		return nil, ErrNoCamera
	}
	if pivot == nil {
		return nil, ErrNoPivot
	}

	r := &Rig{
		settings: defaultSettings(),
		camera:   cam,
		pivot:    pivot,
		lens:     lens,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.minDistance = max(0, r.minDistance)
	r.maxDistance = max(r.minDistance, r.maxDistance)

	r.Reset()

	return r, nil
}

// Reset moves the pivot onto the target bounds centre (if any), then derives yaw and
// pitch from the camera to pivot direction and the desired distance from their gap.
func (r *Rig) Reset() {
	if r.target != nil {
		r.pivot.SetPosition(r.target.Bounds().Center())
	}
	r.desiredPivot = r.pivot.Position()

	offset := r.desiredPivot.Sub(r.camera.Position())
	forward := r.pivot.Forward()
	if offset.Len() > 1e-9 {
		forward = offset.Normalize()
	}
	r.yaw = mgl64.RadToDeg(math.Atan2(forward.X(), forward.Z()))
	r.pitch = mgl64.RadToDeg(-math.Asin(mgl64.Clamp(forward.Y(), -1, 1)))
	r.clampPitch()

	r.desiredDistance = r.clampDistance(offset.Len())
}

func (r *Rig) Camera() *actor.Node {
	return r.camera
}

func (r *Rig) Pivot() *actor.Node {
	return r.pivot
}

func (r *Rig) Target() *actor.Node {
	return r.target
}

// SetTarget changes the framed object, nil disables framing
func (r *Rig) SetTarget(target *actor.Node) {
	r.target = target
}

func (r *Rig) Lens() Lens {
	return r.lens
}

// SetViewport updates the viewport size in pixels, when the host window is resized
func (r *Rig) SetViewport(width, height float64) {
	r.lens.ViewportWidth = width
	r.lens.ViewportHeight = height
}

// Yaw in degrees
func (r *Rig) Yaw() float64 {
	return r.yaw
}

// Pitch in degrees
func (r *Rig) Pitch() float64 {
	return r.pitch
}

func (r *Rig) DesiredDistance() float64 {
	return r.desiredDistance
}

func (r *Rig) DesiredPivot() mgl64.Vec3 {
	return r.desiredPivot
}

// DistanceRange returns the configured [min, max] distance
func (r *Rig) DistanceRange() (float64, float64) {
	return r.minDistance, r.maxDistance
}

// Update consumes the input of one frame: focus key, orbit, zoom, pinch and pan.
// One touch orbits, two touches pinch, the left button orbits and the right button pans.
func (r *Rig) Update(dt float64, in input.State) {
	if in.KeyPressed(r.focusKey) {
		r.FrameTarget()
	}

	r.UpdateOrbit(in.PointerDelta, in.ButtonHeld(input.MouseButtonLeft), dt)
	if in.TouchCount() == 1 {
		r.orbitTouch(in.Touches[0])
	}

	r.UpdateZoom(in.Scroll)
	if in.TouchCount() == 2 {
		r.UpdatePinch(in.Touches[0], in.Touches[1])
	}

	r.UpdatePan(in.PointerDelta, in.ButtonHeld(input.MouseButtonRight), dt)
}

// LateUpdate resolves the pose, after every other behaviour moved the scene
func (r *Rig) LateUpdate(dt float64) {
	r.ResolvePose(dt)
}

func (r *Rig) clampPitch() {
	if r.pitchClamp.Enabled {
		r.pitch = mgl64.Clamp(r.pitch, r.pitchClamp.Min, r.pitchClamp.Max)
	}
}

func (r *Rig) clampDistance(d float64) float64 {
	return mgl64.Clamp(d, r.minDistance, r.maxDistance)
}

// halfFieldOfView returns half the vertical field of view in radians,
// with the lens angle clamped into the open interval (0, 180) degrees.
func (r *Rig) halfFieldOfView() float64 {
	fov := r.lens.FieldOfView
	if math.IsNaN(fov) {
		fov = DefaultLens().FieldOfView
	}

	return mgl64.DegToRad(mgl64.Clamp(fov, minFieldOfView, maxFieldOfView)) / 2
}

// damp returns the interpolation factor 1 - exp(-k*dt), rates <= 0 snap instantly
func damp(k, dt float64) float64 {
	if k <= 0 {
		return 1
	}

	return 1 - math.Exp(-k*max(0, dt))
}
