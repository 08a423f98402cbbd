// Package config reads the viewer settings file and watches it for changes.
//
// The file is YAML. Every section is optional: missing values keep their defaults,
// and optional camera overrides are applied on top of the selected camera preset.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/akmonengine/scenerig/actor"
	"github.com/akmonengine/scenerig/camera"
	"github.com/akmonengine/scenerig/marker"
	"github.com/akmonengine/scenerig/shaper"
	"github.com/barkimedes/go-deepcopy"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

var (
	cameraPresets = map[string]func() camera.Option{
		"damped":   camera.Damped,
		"smoothed": camera.Smoothed,
	}
	zoomPolicies = map[string]camera.ZoomPolicy{
		"linear":      camera.ZoomLinear,
		"exponential": camera.ZoomExponential,
	}
	panPolicies = map[string]camera.PanPolicy{
		"distance":    camera.PanDistance,
		"fieldOfView": camera.PanFieldOfView,
	}
	framingPolicies = map[string]camera.FramingPolicy{
		"sine":    camera.FramingSine,
		"tangent": camera.FramingTangent,
	}
	coordSpaces = map[string]marker.CoordSpace{
		"world": marker.CoordSpaceWorld,
		"local": marker.CoordSpaceLocal,
	}
	parentModes = map[string]marker.ParentMode{
		"object": marker.ParentThisObject,
		"root":   marker.ParentWorldRoot,
		"custom": marker.ParentCustom,
	}
	rotationModes = map[string]marker.RotationMode{
		"copyTarget":       marker.RotationCopyTarget,
		"targetPlusPreset": marker.RotationTargetPlusPreset,
		"alignTargetAxis":  marker.RotationAlignTargetAxis,
	}
	targetAxes = map[string]marker.TargetAxis{
		"forward": marker.TargetForward,
		"up":      marker.TargetUp,
		"right":   marker.TargetRight,
	}
)

type File struct {
	Camera  Camera  `yaml:"camera"`
	Markers Markers `yaml:"markers"`
	Shapes  Shapes  `yaml:"shapes"`
}

type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type Policy struct {
	Policy string  `yaml:"policy"`
	Speed  float64 `yaml:"speed"`
}

type Damping struct {
	Orbit  float64 `yaml:"orbit"`
	Pan    float64 `yaml:"pan"`
	Zoom   float64 `yaml:"zoom"`
	Camera float64 `yaml:"camera"`
}

type Touch struct {
	Orbit float64 `yaml:"orbit"`
	Pinch float64 `yaml:"pinch"`
}

// Camera holds the rig preset and its overrides, nil or empty values keep the preset
type Camera struct {
	Preset      string   `yaml:"preset"`
	FieldOfView float64  `yaml:"fieldOfView"`
	OrbitSpeed  *float64 `yaml:"orbitSpeed,omitempty"`
	InvertX     bool     `yaml:"invertX"`
	InvertY     bool     `yaml:"invertY"`
	PitchClamp  *Range   `yaml:"pitchClamp,omitempty"`
	Distance    *Range   `yaml:"distance,omitempty"`
	Zoom        *Policy  `yaml:"zoom,omitempty"`
	Pan         *Policy  `yaml:"pan,omitempty"`
	Framing     string   `yaml:"framing,omitempty"`
	Damping     *Damping `yaml:"damping,omitempty"`
	Touch       *Touch   `yaml:"touch,omitempty"`
}

type Markers struct {
	Material     string `yaml:"material"`
	CoordSpace   string `yaml:"coordSpace"`
	ParentMode   string `yaml:"parentMode"`
	CustomParent string `yaml:"customParent,omitempty"`

	StartHidden bool  `yaml:"startHidden"`
	StartActive []int `yaml:"startActive,flow"`

	LockEveryFrame    bool `yaml:"lockEveryFrame"`
	IgnoreParentScale bool `yaml:"ignoreParentScale"`

	RelativeToTarget bool   `yaml:"relativeToTarget"`
	ScaleWithTarget  bool   `yaml:"scaleWithTarget"`
	RotationMode     string `yaml:"rotationMode"`
	AlignAxis        string `yaml:"alignAxis"`

	Presets []marker.CutPreset `yaml:"presets"`
}

// Shapes overrides the scaler parameters
type Shapes struct {
	CubeWidth      *float64 `yaml:"cubeWidth,omitempty"`
	CubeHeight     *float64 `yaml:"cubeHeight,omitempty"`
	CylinderRadius *float64 `yaml:"cylinderRadius,omitempty"`
	CylinderHeight *float64 `yaml:"cylinderHeight,omitempty"`
}

// Default mirrors camera.Damped and marker.DefaultConfig
func Default() File {
	m := marker.DefaultConfig()

	return File{
		Camera: Camera{
			Preset:      "damped",
			FieldOfView: camera.DefaultLens().FieldOfView,
		},
		Markers: Markers{
			CoordSpace:        "world",
			ParentMode:        "root",
			StartHidden:       m.StartHidden,
			LockEveryFrame:    m.LockEveryFrame,
			IgnoreParentScale: m.IgnoreParentScale,
			RelativeToTarget:  m.RelativeToTarget,
			ScaleWithTarget:   m.ScaleWithTarget,
			RotationMode:      "targetPlusPreset",
			AlignAxis:         "forward",
			Presets:           m.Presets,
		},
	}
}

// Load reads and validates the file at path
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	file, err := Decode(f)
	if err != nil {
		return File{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return file, nil
}

// Decode reads a YAML document on top of Default, then validates it.
// An empty document yields Default. Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	file := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decode: %w", err)
	}

	if err := file.Validate(); err != nil {
		return File{}, err
	}

	return file, nil
}

// Encode writes the file as YAML
func (f File) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	return encoder.Close()
}

// Clone returns a deep copy
func (f File) Clone() File {
	return deepcopy.MustAnything(f).(File)
}

// Validate reports every problem of the file, each wrapping ErrInvalid
func (f File) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	c := f.Camera
	if _, ok := cameraPresets[c.Preset]; !ok {
		invalid("camera.preset %q", c.Preset)
	}
	if !(c.FieldOfView > 0 && c.FieldOfView < 180) {
		invalid("camera.fieldOfView %v is outside (0, 180)", c.FieldOfView)
	}
	if c.OrbitSpeed != nil && !finite(*c.OrbitSpeed) {
		invalid("camera.orbitSpeed %v", *c.OrbitSpeed)
	}
	if c.PitchClamp != nil && c.PitchClamp.Min > c.PitchClamp.Max {
		invalid("camera.pitchClamp min %v > max %v", c.PitchClamp.Min, c.PitchClamp.Max)
	}
	if c.Distance != nil && (c.Distance.Min < 0 || c.Distance.Min > c.Distance.Max) {
		invalid("camera.distance [%v, %v]", c.Distance.Min, c.Distance.Max)
	}
	if c.Zoom != nil {
		if _, ok := zoomPolicies[c.Zoom.Policy]; !ok {
			invalid("camera.zoom.policy %q", c.Zoom.Policy)
		}
	}
	if c.Pan != nil {
		if _, ok := panPolicies[c.Pan.Policy]; !ok {
			invalid("camera.pan.policy %q", c.Pan.Policy)
		}
	}
	if _, ok := framingPolicies[c.Framing]; c.Framing != "" && !ok {
		invalid("camera.framing %q", c.Framing)
	}

	m := f.Markers
	if _, ok := coordSpaces[m.CoordSpace]; !ok {
		invalid("markers.coordSpace %q", m.CoordSpace)
	}
	if _, ok := parentModes[m.ParentMode]; !ok {
		invalid("markers.parentMode %q", m.ParentMode)
	}
	if _, ok := rotationModes[m.RotationMode]; !ok {
		invalid("markers.rotationMode %q", m.RotationMode)
	}
	if _, ok := targetAxes[m.AlignAxis]; !ok {
		invalid("markers.alignAxis %q", m.AlignAxis)
	}
	for i, preset := range m.Presets {
		if preset.Scale.X() == 0 || preset.Scale.Y() == 0 || preset.Scale.Z() == 0 {
			invalid("markers.presets[%d].scale %v has a zero axis", i, preset.Scale)
		}
	}
	for _, i := range m.StartActive {
		if i < 0 || i >= len(m.Presets) {
			invalid("markers.startActive index %d out of %d presets", i, len(m.Presets))
		}
	}

	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Lens returns the camera lens for a viewport
func (c Camera) Lens(width, height float64) camera.Lens {
	return camera.Lens{FieldOfView: c.FieldOfView, ViewportWidth: width, ViewportHeight: height}
}

// Options returns the preset option followed by the overrides
func (c Camera) Options() []camera.Option {
	var opts []camera.Option
	if preset, ok := cameraPresets[c.Preset]; ok {
		opts = append(opts, preset())
	}

	opts = append(opts, camera.WithInvert(c.InvertX, c.InvertY))
	if c.OrbitSpeed != nil {
		opts = append(opts, camera.WithOrbitSpeed(*c.OrbitSpeed))
	}
	if c.PitchClamp != nil {
		opts = append(opts, camera.WithPitchClamp(c.PitchClamp.Min, c.PitchClamp.Max))
	}
	if c.Distance != nil {
		opts = append(opts, camera.WithDistanceRange(c.Distance.Min, c.Distance.Max))
	}
	if c.Zoom != nil {
		opts = append(opts, camera.WithZoom(zoomPolicies[c.Zoom.Policy], c.Zoom.Speed))
	}
	if c.Pan != nil {
		opts = append(opts, camera.WithPan(panPolicies[c.Pan.Policy], c.Pan.Speed))
	}
	if framing, ok := framingPolicies[c.Framing]; ok {
		opts = append(opts, camera.WithFraming(framing))
	}
	if c.Damping != nil {
		opts = append(opts, camera.WithDamping(c.Damping.Orbit, c.Damping.Pan, c.Damping.Zoom, c.Damping.Camera))
	}
	if c.Touch != nil {
		opts = append(opts, camera.WithTouch(c.Touch.Orbit, c.Touch.Pinch))
	}

	return opts
}

// Apply returns base with the file settings. The follow target of base is kept,
// the custom parent is resolved by name with find.
func (m Markers) Apply(base marker.Config, find func(name string) *actor.Node) marker.Config {
	base.Material = m.Material
	base.Presets = slices.Clone(m.Presets)
	base.CoordSpace = coordSpaces[m.CoordSpace]
	base.ParentMode = parentModes[m.ParentMode]
	base.CustomParent = nil
	if m.CustomParent != "" && find != nil {
		base.CustomParent = find(m.CustomParent)
	}
	base.StartHidden = m.StartHidden
	base.StartActive = slices.Clone(m.StartActive)
	base.LockEveryFrame = m.LockEveryFrame
	base.IgnoreParentScale = m.IgnoreParentScale
	base.RelativeToTarget = m.RelativeToTarget
	base.ScaleWithTarget = m.ScaleWithTarget
	base.RotationMode = rotationModes[m.RotationMode]
	base.AlignAxis = targetAxes[m.AlignAxis]

	return base
}

// Apply writes the set parameters into s
func (sh Shapes) Apply(s *shaper.Scaler) {
	if sh.CubeWidth != nil {
		s.CubeWidth = *sh.CubeWidth
	}
	if sh.CubeHeight != nil {
		s.CubeHeight = *sh.CubeHeight
	}
	if sh.CylinderRadius != nil {
		s.CylinderRadius = *sh.CylinderRadius
	}
	if sh.CylinderHeight != nil {
		s.CylinderHeight = *sh.CylinderHeight
	}
}
