package shaper

import (
	"testing"

	"github.com/akmonengine/scenerig/actor"
	"github.com/akmonengine/scenerig/input"
	"github.com/go-gl/mathgl/mgl64"
)

func TestNew_ReadsScales(t *testing.T) {
	cube := actor.NewPrimitive("cube", actor.NewCube())
	cube.Local.Scale = mgl64.Vec3{2, 3, 4}
	cylinder := actor.NewPrimitive("cylinder", actor.NewCylinder())
	cylinder.Local.Scale = mgl64.Vec3{1.5, 0.75, 1.5}

	s := New(cube, cylinder)

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"cube width", s.CubeWidth, 2},
		{"cube height", s.CubeHeight, 3},
		{"cylinder radius", s.CylinderRadius, 0.75},
		{"cylinder height", s.CylinderHeight, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestUpdate_AppliesParameters(t *testing.T) {
	cube := actor.NewPrimitive("cube", actor.NewCube())
	cube.Local.Scale = mgl64.Vec3{1, 1, 5}
	c1 := actor.NewPrimitive("c1", actor.NewCylinder())
	c2 := actor.NewPrimitive("c2", actor.NewCylinder())
	c2.Local.Scale = mgl64.Vec3{9, 9, 9}

	s := New(cube, c1, c2)
	s.CubeWidth = 2.5
	s.CubeHeight = 0.5
	s.CylinderRadius = 1
	s.CylinderHeight = 6
	s.Update(1.0/60, input.State{})

	if cube.Local.Scale != (mgl64.Vec3{2.5, 0.5, 5}) {
		t.Errorf("cube scale = %v, expected [2.5 0.5 5]", cube.Local.Scale)
	}
	for _, c := range []*actor.Node{c1, c2} {
		if c.Local.Scale != (mgl64.Vec3{2, 3, 2}) {
			t.Errorf("%s scale = %v, expected [2 3 2]", c.Name, c.Local.Scale)
		}
	}

	// world size of the cylinder matches the parameters
	bounds := actor.WorldBounds(c1.Shape, c1.WorldMatrix())
	if size := bounds.Size(); size != (mgl64.Vec3{2, 6, 2}) {
		t.Errorf("cylinder size = %v, expected [2 6 2]", size)
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	cube := actor.NewPrimitive("cube", actor.NewCube())
	cube.Local.Scale = mgl64.Vec3{2, 3, 4}
	cylinder := actor.NewPrimitive("cylinder", actor.NewCylinder())
	cylinder.Local.Scale = mgl64.Vec3{1.5, 0.75, 1.5}

	s := New(cube, cylinder)
	s.Update(1.0/60, input.State{})

	if cube.Local.Scale != (mgl64.Vec3{2, 3, 4}) {
		t.Errorf("cube scale changed: %v", cube.Local.Scale)
	}
	if cylinder.Local.Scale != (mgl64.Vec3{1.5, 0.75, 1.5}) {
		t.Errorf("cylinder scale changed: %v", cylinder.Local.Scale)
	}
}

func TestNilNodes(t *testing.T) {
	s := New(nil, nil)

	if s.CubeWidth != 1 || s.CylinderRadius != 0.5 || s.CylinderHeight != 2 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	s.Update(1.0/60, input.State{})
}
