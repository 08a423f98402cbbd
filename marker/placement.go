// Package marker places section-plane markers from stored presets.
//
// Each preset index owns one quad marker. In lock mode the presets drive the
// visible markers every frame; otherwise the markers are the source of truth and
// their poses are captured back into the presets.
package marker

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/akmonengine/scenerig/actor"
	"github.com/akmonengine/scenerig/input"
)

// toggleKeys is the number of markers reachable with the digit keys 1..n
const toggleKeys = 6

// Factory builds the node of a new marker
type Factory func(name string) *actor.Node

// DefaultFactory creates a unit quad primitive
func DefaultFactory(name string) *actor.Node {
	return actor.NewPrimitive(name, actor.NewQuad())
}

type Option func(p *Placement)

func WithFactory(factory Factory) Option {
	return func(p *Placement) {
		p.factory = factory
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Placement) {
		p.logger = logger
	}
}

type Placement struct {
	owner   *actor.Node
	cfg     Config
	markers []*actor.Node

	factory Factory
	logger  *slog.Logger
}

// New builds the markers of cfg and applies the start visibility.
// owner is the parent used with ParentThisObject.
func New(owner *actor.Node, cfg Config, opts ...Option) *Placement {
	p := &Placement{
		owner:   owner,
		cfg:     cfg.clone(),
		factory: DefaultFactory,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	p.rebuild()
	p.ResetVisibility()

	return p
}

// rebuild resynchronizes the markers with the configuration
func (p *Placement) rebuild() {
	p.resizeMarkers(len(p.cfg.Presets))
	p.EnsureMarkersExist()
	p.ApplyAllPresetsToMarkers()
}

// ResetVisibility hides every marker, or shows only StartActive when StartHidden is off
func (p *Placement) ResetVisibility() {
	if p.cfg.StartHidden {
		p.HideAll()
		return
	}
	p.ShowOnly(p.cfg.StartActive...)
}

// Resize sets the number of presets to n, growing with unit presets.
// Markers are kept by index, the ones past n are hidden and detached.
func (p *Placement) Resize(n int) {
	n = max(0, n)

	for i := len(p.cfg.Presets); i < n; i++ {
		p.cfg.Presets = append(p.cfg.Presets, NewCutPreset(fmt.Sprintf("Cut %d", i+1)))
	}
	p.cfg.Presets = p.cfg.Presets[:n]

	p.resizeMarkers(n)
}

func (p *Placement) resizeMarkers(n int) {
	for i := n; i < len(p.markers); i++ {
		if m := p.markers[i]; m != nil {
			m.SetActive(false)
			m.SetParent(nil, true)
		}
	}

	if n <= len(p.markers) {
		p.markers = slices.Clip(p.markers[:n])
		return
	}
	p.markers = append(p.markers, make([]*actor.Node, n-len(p.markers))...)
}

// EnsureMarkersExist creates the missing markers, hidden, and moves existing ones
// under the parent selected by the parent mode.
func (p *Placement) EnsureMarkersExist() {
	parent := p.markerParent()

	for i, m := range p.markers {
		if m != nil {
			if m.Parent() != parent && !m.SetParent(parent, true) {
				p.logger.Warn("marker: parent would create a cycle", "marker", m.Name)
			}
			continue
		}

		m = p.factory(fmt.Sprintf("CutPlane_%d", i+1))
		m.Collider = false
		if p.cfg.Material != "" {
			m.Material = p.cfg.Material
		} else {
			p.logger.Debug("marker: no material configured", "marker", m.Name)
		}
		if !m.SetParent(parent, true) {
			p.logger.Warn("marker: parent would create a cycle", "marker", m.Name)
		}
		m.SetActive(false)

		p.markers[i] = m
	}
}

func (p *Placement) markerParent() *actor.Node {
	switch p.cfg.ParentMode {
	case ParentWorldRoot:
		return nil
	case ParentCustom:
		return p.cfg.CustomParent
	default:
		return p.owner
	}
}

// valid reports whether index addresses both a preset and an existing marker
func (p *Placement) valid(index int) bool {
	return index >= 0 && index < len(p.markers) && index < len(p.cfg.Presets) && p.markers[index] != nil
}

// Show activates marker i at its preset pose
func (p *Placement) Show(index int) {
	if !p.valid(index) {
		return
	}
	p.markers[index].SetActive(true)
	p.ApplyPresetToMarker(index)
}

func (p *Placement) Hide(index int) {
	if !p.valid(index) {
		return
	}
	p.markers[index].SetActive(false)
}

// Toggle flips marker i, a marker turned on is moved to its preset pose
func (p *Placement) Toggle(index int) {
	if !p.valid(index) {
		return
	}
	m := p.markers[index]
	m.SetActive(!m.ActiveSelf())
	if m.ActiveSelf() {
		p.ApplyPresetToMarker(index)
	}
}

// ShowOnly activates the listed markers and hides all the others
func (p *Placement) ShowOnly(indices ...int) {
	for i, m := range p.markers {
		if m == nil {
			continue
		}
		on := slices.Contains(indices, i)
		m.SetActive(on)
		if on {
			p.ApplyPresetToMarker(i)
		}
	}
}

func (p *Placement) HideAll() {
	for _, m := range p.markers {
		if m != nil {
			m.SetActive(false)
		}
	}
}

// Update runs the lock or capture pass over the visible markers,
// then handles the digit keys: 1 to 6 toggle a marker, 0 hides them all.
func (p *Placement) Update(dt float64, in input.State) {
	for i, m := range p.markers {
		if m == nil || !m.ActiveSelf() {
			continue
		}
		if p.cfg.LockEveryFrame {
			p.ApplyPresetToMarker(i)
		} else {
			p.CaptureMarkerToPreset(i)
		}
	}

	for d := 1; d <= toggleKeys; d++ {
		if in.KeyPressed(input.DigitKey(d)) {
			p.Toggle(d - 1)
		}
	}
	if in.KeyPressed(input.Key0) {
		p.HideAll()
	}
}

// Marker returns marker i, nil when out of range
func (p *Placement) Marker(index int) *actor.Node {
	if index < 0 || index >= len(p.markers) {
		return nil
	}

	return p.markers[index]
}

// Markers returns a copy of the marker list
func (p *Placement) Markers() []*actor.Node {
	return slices.Clone(p.markers)
}

// Presets returns a snapshot of the presets
func (p *Placement) Presets() []CutPreset {
	return clonePresets(p.cfg.Presets)
}

// Config returns a copy of the configuration
func (p *Placement) Config() Config {
	return p.cfg.clone()
}

// SetConfig replaces the whole configuration and rebuilds the markers
func (p *Placement) SetConfig(cfg Config) {
	p.cfg = cfg.clone()
	p.rebuild()
}

func (p *Placement) SetPresets(presets []CutPreset) {
	p.cfg.Presets = clonePresets(presets)
	p.rebuild()
}

// SetPreset replaces preset i, out of range indices are ignored
func (p *Placement) SetPreset(index int, preset CutPreset) {
	if index < 0 || index >= len(p.cfg.Presets) {
		return
	}
	p.cfg.Presets[index] = preset
	p.rebuild()
}

// SetFollowTarget changes the followed target, nil falls back to the coordinate space
func (p *Placement) SetFollowTarget(target *actor.Node) {
	p.cfg.FollowTarget = target
	p.rebuild()
}

func (p *Placement) SetCoordSpace(space CoordSpace) {
	p.cfg.CoordSpace = space
	p.rebuild()
}

// SetParentMode changes where markers live, custom is only used with ParentCustom
func (p *Placement) SetParentMode(mode ParentMode, custom *actor.Node) {
	p.cfg.ParentMode = mode
	p.cfg.CustomParent = custom
	p.rebuild()
}

func (p *Placement) SetLockEveryFrame(lock bool) {
	p.cfg.LockEveryFrame = lock
	p.rebuild()
}
