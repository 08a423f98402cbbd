package camera

import (
	"log/slog"

	"github.com/akmonengine/scenerig/actor"
	"github.com/akmonengine/scenerig/input"
)

// ZoomPolicy selects how a zoom amount changes the desired distance
type ZoomPolicy int

const (
	// ZoomLinear subtracts the amount from the distance
	ZoomLinear ZoomPolicy = iota
	// ZoomExponential scales the distance by exp(-amount)
	ZoomExponential
)

// PanPolicy selects how a pointer drag is converted to a pivot translation
type PanPolicy int

const (
	// PanDistance scales the drag by distance * speed * dt
	PanDistance PanPolicy = iota
	// PanFieldOfView converts pixels to world units at the pivot distance
	PanFieldOfView
)

// FramingPolicy selects the distance formula used to fit a bounding sphere in view
type FramingPolicy int

const (
	// FramingSine uses radius / sin(fov/2), an approximation
	FramingSine FramingPolicy = iota
	// FramingTangent uses radius / tan(fov/2)
	FramingTangent
)

// SmoothingPolicy selects what ResolvePose interpolates
type SmoothingPolicy int

const (
	// SmoothPivot damps the pivot position, the pivot rotation and the distance independently
	SmoothPivot SmoothingPolicy = iota
	// SmoothCamera snaps the pivot and only glides the camera itself
	SmoothCamera
)

// PitchClamp bounds the pitch in degrees when Enabled
type PitchClamp struct {
	Enabled  bool
	Min, Max float64
}

// Framing constants
const (
	FrameMargin    = 1.2
	MinFrameRadius = 0.5
)

const (
	minFieldOfView = 0.01
	maxFieldOfView = 179.0
	scrollDeadZone = 0.0001
)

// Lens describes the camera projection. FieldOfView is vertical, in degrees.
type Lens struct {
	FieldOfView    float64
	ViewportWidth  float64
	ViewportHeight float64
}

// DefaultLens is a 60 degrees lens on a 1280x720 viewport
func DefaultLens() Lens {
	return Lens{FieldOfView: 60, ViewportWidth: 1280, ViewportHeight: 720}
}

type settings struct {
	orbitSpeed    float64 // degrees per pixel per second
	invertX       bool
	invertY       bool
	pitchClamp    PitchClamp
	touchOrbit    float64 // degrees per pixel
	zoomPolicy    ZoomPolicy
	zoomSpeed     float64
	pinchSpeed    float64
	minDistance   float64
	maxDistance   float64
	panPolicy     PanPolicy
	panSpeed      float64
	framing       FramingPolicy
	smoothing     SmoothingPolicy
	orbitDamping  float64
	panDamping    float64
	zoomDamping   float64
	cameraDamping float64
	focusKey      input.Key
	target        *actor.Node
	logger        *slog.Logger
}

func defaultSettings() settings {
	return settings{
		orbitSpeed:    216,
		touchOrbit:    0.6,
		zoomPolicy:    ZoomLinear,
		zoomSpeed:     10,
		pinchSpeed:    0.03,
		minDistance:   1,
		maxDistance:   30,
		panPolicy:     PanDistance,
		panSpeed:      2.1,
		framing:       FramingSine,
		smoothing:     SmoothPivot,
		orbitDamping:  12,
		panDamping:    10,
		zoomDamping:   10,
		cameraDamping: 12,
		focusKey:      input.KeyF,
	}
}

// Option configures a Rig
type Option func(r *Rig)

// Damped is the free orbit preset: unbounded pitch, linear zoom, distance scaled pan,
// sine framing, pivot position, rotation and distance all damped.
func Damped() Option {
	return func(r *Rig) {
		r.pitchClamp = PitchClamp{}
		r.zoomPolicy = ZoomLinear
		r.zoomSpeed = 10
		r.pinchSpeed = 0.03
		r.panPolicy = PanDistance
		r.panSpeed = 2.1
		r.framing = FramingSine
		r.smoothing = SmoothPivot
	}
}

// Smoothed is the constrained preset: pitch clamped to [-89, 89], exponential zoom,
// pixel exact pan, tangent framing, instant pivot with a gliding camera.
func Smoothed() Option {
	return func(r *Rig) {
		r.pitchClamp = PitchClamp{Enabled: true, Min: -89, Max: 89}
		r.zoomPolicy = ZoomExponential
		r.zoomSpeed = 0.15
		r.pinchSpeed = 0.005
		r.panPolicy = PanFieldOfView
		r.panSpeed = 1
		r.framing = FramingTangent
		r.smoothing = SmoothCamera
	}
}

// WithTarget sets the object framed by the focus key and used as initial pivot
func WithTarget(target *actor.Node) Option {
	return func(r *Rig) {
		r.target = target
	}
}

// WithOrbitSpeed sets the mouse orbit speed (degrees per pixel per second)
func WithOrbitSpeed(speed float64) Option {
	return func(r *Rig) {
		r.orbitSpeed = speed
	}
}

func WithInvert(x, y bool) Option {
	return func(r *Rig) {
		r.invertX = x
		r.invertY = y
	}
}

// WithPitchClamp bounds the pitch to [min, max] degrees
func WithPitchClamp(min, max float64) Option {
	if min > max {
		min, max = max, min
	}

	return func(r *Rig) {
		r.pitchClamp = PitchClamp{Enabled: true, Min: min, Max: max}
	}
}

// WithZoom sets the zoom policy and its speed (linear) or strength (exponential)
func WithZoom(policy ZoomPolicy, speed float64) Option {
	return func(r *Rig) {
		r.zoomPolicy = policy
		r.zoomSpeed = speed
	}
}

// WithDistanceRange bounds the desired distance
func WithDistanceRange(min, max float64) Option {
	if min > max {
		min, max = max, min
	}

	return func(r *Rig) {
		r.minDistance = min
		r.maxDistance = max
	}
}

func WithPan(policy PanPolicy, speed float64) Option {
	return func(r *Rig) {
		r.panPolicy = policy
		r.panSpeed = speed
	}
}

func WithFraming(policy FramingPolicy) Option {
	return func(r *Rig) {
		r.framing = policy
	}
}

func WithSmoothing(policy SmoothingPolicy) Option {
	return func(r *Rig) {
		r.smoothing = policy
	}
}

// WithDamping sets the damping rates (per second). A rate <= 0 snaps instantly.
func WithDamping(orbit, pan, zoom, camera float64) Option {
	return func(r *Rig) {
		r.orbitDamping = orbit
		r.panDamping = pan
		r.zoomDamping = zoom
		r.cameraDamping = camera
	}
}

// WithTouch sets the one finger orbit speed (degrees per pixel) and the pinch sensitivity
func WithTouch(orbitSpeed, pinchSpeed float64) Option {
	return func(r *Rig) {
		r.touchOrbit = orbitSpeed
		r.pinchSpeed = pinchSpeed
	}
}

// WithFocusKey sets the key that frames the target
func WithFocusKey(key input.Key) Option {
	return func(r *Rig) {
		r.focusKey = key
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Rig) {
		r.logger = logger
	}
}
