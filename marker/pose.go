package marker

import (
	"github.com/akmonengine/scenerig/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ApplyAllPresetsToMarkers pushes every preset onto its marker
func (p *Placement) ApplyAllPresetsToMarkers() {
	for i := range p.markers {
		p.ApplyPresetToMarker(i)
	}
}

// ApplyPresetToMarker resolves preset i into the transform of marker i.
// A followed target takes precedence over the coordinate space.
func (p *Placement) ApplyPresetToMarker(index int) {
	if !p.valid(index) {
		return
	}
	m, preset := p.markers[index], p.cfg.Presets[index]

	if target := p.relativeTarget(); target != nil {
		scale := preset.Scale
		if p.cfg.ScaleWithTarget {
			scale = actor.MultiplyScale(scale, actor.AbsScale(target.LossyScale()))
		}

		m.SetPosition(target.TransformPoint(preset.Position))
		m.SetRotation(p.followRotation(target, preset.Rotation))
		m.Local.Scale = p.worldToLocalScale(scale, m.Parent())
		return
	}

	switch p.cfg.CoordSpace {
	case CoordSpaceLocal:
		m.Local.Position = preset.Position
		m.Local.Rotation = actor.EulerToQuat(preset.Rotation)
		m.Local.Scale = preset.Scale
	default:
		m.SetPosition(preset.Position)
		m.SetRotation(actor.EulerToQuat(preset.Rotation))
		m.Local.Scale = p.worldToLocalScale(preset.Scale, m.Parent())
	}
}

// CaptureAllMarkersToPresets pulls every marker pose into its preset
func (p *Placement) CaptureAllMarkersToPresets() {
	for i := range p.markers {
		p.CaptureMarkerToPreset(i)
	}
}

// CaptureMarkerToPreset stores the pose of marker i into preset i, the inverse of ApplyPresetToMarker.
// With RotationCopyTarget the stored rotation is kept, it has no effect on the marker.
func (p *Placement) CaptureMarkerToPreset(index int) {
	if !p.valid(index) {
		return
	}
	m, preset := p.markers[index], &p.cfg.Presets[index]

	if target := p.relativeTarget(); target != nil {
		preset.Position = target.InverseTransformPoint(m.Position())

		switch p.cfg.RotationMode {
		case RotationCopyTarget:
			// the marker carries no preset rotation
		case RotationAlignTargetAxis:
			preset.Rotation = actor.QuatToEuler(p.alignRotation(target).Inverse().Mul(m.Rotation()))
		default:
			preset.Rotation = actor.QuatToEuler(target.Rotation().Inverse().Mul(m.Rotation()))
		}

		scale := p.localToWorldScale(m.Local.Scale, m.Parent())
		if p.cfg.ScaleWithTarget {
			scale = actor.DivideScale(scale, actor.AbsScale(target.LossyScale()))
		}
		preset.Scale = scale
		return
	}

	switch p.cfg.CoordSpace {
	case CoordSpaceLocal:
		preset.Position = m.Local.Position
		preset.Rotation = actor.QuatToEuler(m.Local.Rotation)
		preset.Scale = m.Local.Scale
	default:
		preset.Position = m.Position()
		preset.Rotation = actor.QuatToEuler(m.Rotation())
		preset.Scale = p.localToWorldScale(m.Local.Scale, m.Parent())
	}
}

func (p *Placement) relativeTarget() *actor.Node {
	if !p.cfg.RelativeToTarget {
		return nil
	}

	return p.cfg.FollowTarget
}

func (p *Placement) followRotation(target *actor.Node, euler mgl64.Vec3) mgl64.Quat {
	switch p.cfg.RotationMode {
	case RotationCopyTarget:
		return target.Rotation()
	case RotationAlignTargetAxis:
		return p.alignRotation(target).Mul(actor.EulerToQuat(euler))
	default:
		return target.Rotation().Mul(actor.EulerToQuat(euler))
	}
}

// alignRotation looks along the configured target axis, keeping world up
func (p *Placement) alignRotation(target *actor.Node) mgl64.Quat {
	var normal mgl64.Vec3
	switch p.cfg.AlignAxis {
	case TargetUp:
		normal = target.Up()
	case TargetRight:
		normal = target.Right()
	default:
		normal = target.Forward()
	}

	return actor.LookRotation(normal, actor.AxisUp)
}

// worldToLocalScale divides out the absolute parent scale, zero axes count as 1
func (p *Placement) worldToLocalScale(scale mgl64.Vec3, parent *actor.Node) mgl64.Vec3 {
	if !p.cfg.IgnoreParentScale || parent == nil {
		return scale
	}

	return actor.DivideScale(scale, actor.AbsScale(parent.LossyScale()))
}

func (p *Placement) localToWorldScale(scale mgl64.Vec3, parent *actor.Node) mgl64.Vec3 {
	if !p.cfg.IgnoreParentScale || parent == nil {
		return scale
	}

	return actor.MultiplyScale(scale, actor.NonZeroScale(actor.AbsScale(parent.LossyScale())))
}
