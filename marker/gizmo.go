package marker

import (
	"github.com/akmonengine/scenerig/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// GizmoLength is the world length of the axis lines drawn on a marker
const GizmoLength = 0.2

// GizmoLine is one axis line of a marker, from its position along Axis
type GizmoLine struct {
	Axis     TargetAxis
	From, To mgl64.Vec3
}

// Gizmos returns the right, up and forward lines of every marker, shown or not
func (p *Placement) Gizmos() []GizmoLine {
	lines := make([]GizmoLine, 0, 3*len(p.markers))
	for _, m := range p.markers {
		if m == nil {
			continue
		}
		lines = append(lines, axisLines(m)...)
	}

	return lines
}

func axisLines(m *actor.Node) []GizmoLine {
	from := m.Position()

	return []GizmoLine{
		{Axis: TargetRight, From: from, To: from.Add(m.Right().Mul(GizmoLength))},
		{Axis: TargetUp, From: from, To: from.Add(m.Up().Mul(GizmoLength))},
		{Axis: TargetForward, From: from, To: from.Add(m.Forward().Mul(GizmoLength))},
	}
}
