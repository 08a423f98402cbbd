package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABBFromCenter builds a box from its center and full size
func NewAABBFromCenter(center, size mgl64.Vec3) AABB {
	half := size.Mul(0.5)

	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the middle point of the box
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size returns the full dimensions of the box
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// Extents returns the half dimensions of the box
func (a AABB) Extents() mgl64.Vec3 {
	return a.Size().Mul(0.5)
}

// EncapsulatePoint grows the box to contain point
func (a AABB) EncapsulatePoint(point mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		a.Min[i] = math.Min(a.Min[i], point[i])
		a.Max[i] = math.Max(a.Max[i], point[i])
	}

	return a
}

// Encapsulate grows the box to contain other
func (a AABB) Encapsulate(other AABB) AABB {
	return a.EncapsulatePoint(other.Min).EncapsulatePoint(other.Max)
}

// Corners returns the 8 corners of the box
func (a AABB) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{a.Min.X(), a.Min.Y(), a.Min.Z()},
		{a.Max.X(), a.Min.Y(), a.Min.Z()},
		{a.Min.X(), a.Max.Y(), a.Min.Z()},
		{a.Max.X(), a.Max.Y(), a.Min.Z()},
		{a.Min.X(), a.Min.Y(), a.Max.Z()},
		{a.Max.X(), a.Min.Y(), a.Max.Z()},
		{a.Min.X(), a.Max.Y(), a.Max.Z()},
		{a.Max.X(), a.Max.Y(), a.Max.Z()},
	}
}

// Transform returns the AABB enclosing this box once mapped by m
func (a AABB) Transform(m mgl64.Mat4) AABB {
	corners := a.Corners()

	first := mgl64.TransformCoordinate(corners[0], m)
	out := AABB{Min: first, Max: first}
	for i := 1; i < 8; i++ {
		out = out.EncapsulatePoint(mgl64.TransformCoordinate(corners[i], m))
	}

	return out
}
