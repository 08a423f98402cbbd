package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of renderable primitive
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeBox
	ShapeTypeCylinder
	ShapeTypeQuad
)

// Shape is the interface that all renderable primitives must implement
type Shape interface {
	Type() ShapeType
	// LocalBounds is the box enclosing the primitive in its node's local space
	LocalBounds() AABB
}

// Box represents a box primitive
// The box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b *Box) Type() ShapeType {
	return ShapeTypeBox
}

func (b *Box) LocalBounds() AABB {
	return AABB{Min: b.HalfExtents.Mul(-1), Max: b.HalfExtents}
}

// Sphere represents a spherical primitive
type Sphere struct {
	Radius float64
}

func (s *Sphere) Type() ShapeType {
	return ShapeTypeSphere
}

func (s *Sphere) LocalBounds() AABB {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}

	return AABB{Min: r.Mul(-1), Max: r}
}

// Cylinder is a Y-aligned cylinder centered on the origin
type Cylinder struct {
	Radius     float64
	HalfHeight float64
}

func (c *Cylinder) Type() ShapeType {
	return ShapeTypeCylinder
}

func (c *Cylinder) LocalBounds() AABB {
	e := mgl64.Vec3{c.Radius, c.HalfHeight, c.Radius}

	return AABB{Min: e.Mul(-1), Max: e}
}

// Quad is a flat rectangle in the local XY plane, facing -Z
type Quad struct {
	HalfSize mgl64.Vec2
}

func (q *Quad) Type() ShapeType {
	return ShapeTypeQuad
}

func (q *Quad) LocalBounds() AABB {
	e := mgl64.Vec3{q.HalfSize.X(), q.HalfSize.Y(), 0}

	return AABB{Min: e.Mul(-1), Max: e}
}

// Vertices returns the quad corners in local space, counter-clockwise
func (q *Quad) Vertices() [4]mgl64.Vec3 {
	hx, hy := q.HalfSize.X(), q.HalfSize.Y()

	return [4]mgl64.Vec3{
		{-hx, -hy, 0},
		{+hx, -hy, 0},
		{+hx, +hy, 0},
		{-hx, +hy, 0},
	}
}

// Primitive constructors use the engine unit sizes: a 1x1x1 cube, a sphere of diameter 1,
// a cylinder of diameter 1 and height 2, a 1x1 quad.

func NewCube() *Box {
	return &Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}}
}

func NewSphere() *Sphere {
	return &Sphere{Radius: 0.5}
}

func NewCylinder() *Cylinder {
	return &Cylinder{Radius: 0.5, HalfHeight: 1}
}

func NewQuad() *Quad {
	return &Quad{HalfSize: mgl64.Vec2{0.5, 0.5}}
}

// WorldBounds computes the axis-aligned box of shape once transformed by the world matrix m
func WorldBounds(shape Shape, m mgl64.Mat4) AABB {
	return shape.LocalBounds().Transform(m)
}
