// Package shaper drives primitive sizes from plain shape parameters.
package shaper

import (
	"github.com/akmonengine/scenerig/actor"
	"github.com/akmonengine/scenerig/input"
)

// Scaler writes a cube width/height and a shared cylinder radius/height onto node scales.
// Sizes are in world units for the unit primitives of the actor package:
// a cube of scale 1 is 1 wide, a cylinder of scale 1 has a radius of 0.5 and a height of 2.
type Scaler struct {
	CubeWidth      float64
	CubeHeight     float64
	CylinderRadius float64
	CylinderHeight float64

	cube      *actor.Node
	cylinders []*actor.Node
}

// New reads the initial parameters from the current scales of cube and of the first cylinder.
// Nil nodes are skipped.
func New(cube *actor.Node, cylinders ...*actor.Node) *Scaler {
	s := &Scaler{
		CubeWidth:      1,
		CubeHeight:     1,
		CylinderRadius: 0.5,
		CylinderHeight: 2,
		cube:           cube,
	}
	for _, c := range cylinders {
		if c != nil {
			s.cylinders = append(s.cylinders, c)
		}
	}

	if cube != nil {
		s.CubeWidth = cube.Local.Scale.X()
		s.CubeHeight = cube.Local.Scale.Y()
	}
	if len(s.cylinders) > 0 {
		scale := s.cylinders[0].Local.Scale
		s.CylinderRadius = scale.X() / 2
		s.CylinderHeight = scale.Y() * 2
	}

	return s
}

// Update applies the parameters, the depth of the cube is left untouched
func (s *Scaler) Update(dt float64, in input.State) {
	if s.cube != nil {
		s.cube.Local.Scale[0] = s.CubeWidth
		s.cube.Local.Scale[1] = s.CubeHeight
	}

	for _, c := range s.cylinders {
		c.Local.Scale[0] = s.CylinderRadius * 2
		c.Local.Scale[1] = s.CylinderHeight / 2
		c.Local.Scale[2] = s.CylinderRadius * 2
	}
}
