package marker

import (
	"fmt"

	"github.com/akmonengine/scenerig/actor"
	"github.com/barkimedes/go-deepcopy"
	"github.com/go-gl/mathgl/mgl64"
)

// CoordSpace selects how preset values are applied when no target is followed
type CoordSpace int

const (
	CoordSpaceWorld CoordSpace = iota
	CoordSpaceLocal
)

// ParentMode selects the node markers are attached to
type ParentMode int

const (
	ParentThisObject ParentMode = iota
	ParentWorldRoot
	ParentCustom
)

// RotationMode selects how a followed target rotation is combined with the preset
type RotationMode int

const (
	// RotationCopyTarget uses the target rotation, the preset rotation is ignored
	RotationCopyTarget RotationMode = iota
	// RotationTargetPlusPreset composes the target rotation with the preset rotation
	RotationTargetPlusPreset
	// RotationAlignTargetAxis looks along a target axis, then applies the preset rotation
	RotationAlignTargetAxis
)

// TargetAxis is the target local axis used by RotationAlignTargetAxis
type TargetAxis int

const (
	TargetForward TargetAxis = iota
	TargetUp
	TargetRight
)

// DefaultPresetCount is the number of presets of DefaultConfig
const DefaultPresetCount = 4

// CutPreset is a stored marker pose. Rotation holds Euler angles in degrees.
// The meaning of the values depends on the placement configuration.
type CutPreset struct {
	Label    string     `yaml:"label"`
	Position mgl64.Vec3 `yaml:"position,flow"`
	Rotation mgl64.Vec3 `yaml:"rotation,flow"`
	Scale    mgl64.Vec3 `yaml:"scale,flow"`
}

// NewCutPreset returns a preset at the origin with a unit scale
func NewCutPreset(label string) CutPreset {
	return CutPreset{Label: label, Scale: mgl64.Vec3{1, 1, 1}}
}

type Config struct {
	// Material given to new markers, empty keeps the factory material
	Material string
	Presets  []CutPreset

	CoordSpace   CoordSpace
	ParentMode   ParentMode
	CustomParent *actor.Node

	// StartHidden hides every marker at creation, otherwise StartActive are shown
	StartHidden bool
	StartActive []int

	// LockEveryFrame pushes presets onto visible markers each frame,
	// otherwise visible marker poses are captured back into the presets
	LockEveryFrame    bool
	IgnoreParentScale bool

	FollowTarget     *actor.Node
	RelativeToTarget bool
	ScaleWithTarget  bool
	RotationMode     RotationMode
	AlignAxis        TargetAxis
}

func DefaultConfig() Config {
	presets := make([]CutPreset, DefaultPresetCount)
	for i := range presets {
		presets[i] = NewCutPreset(fmt.Sprintf("Cut %d", i+1))
	}

	return Config{
		Presets:           presets,
		CoordSpace:        CoordSpaceWorld,
		ParentMode:        ParentWorldRoot,
		StartHidden:       true,
		LockEveryFrame:    true,
		IgnoreParentScale: true,
		RelativeToTarget:  true,
		ScaleWithTarget:   true,
		RotationMode:      RotationTargetPlusPreset,
		AlignAxis:         TargetForward,
	}
}

// clone copies the value slices, nodes are shared
func (c Config) clone() Config {
	c.Presets = clonePresets(c.Presets)
	c.StartActive = append([]int(nil), c.StartActive...)

	return c
}

func clonePresets(presets []CutPreset) []CutPreset {
	if presets == nil {
		return []CutPreset{}
	}

	return deepcopy.MustAnything(presets).([]CutPreset)
}
