package core

import "math"

// AABB is an axis-aligned box, inclusive of its faces
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a box from its corners
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints returns the smallest box containing every point
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = minVec(box.Min, p)
		box.Max = maxVec(box.Max, p)
	}
	return box
}

func minVec(a, b Vec3) Vec3 {
	return Vec3{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxVec(a, b Vec3) Vec3 {
	return Vec3{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// IsValid reports whether the corners are ordered and free of NaNs
func (b AABB) IsValid() bool {
	for axis := 0; axis < 3; axis++ {
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
			return false
		}
	}
	return true
}

// Hit reports whether the box overlaps the ray segment [NearT, FarT]
func (b AABB) Hit(ray Ray) bool {
	near, far := ray.NearT, ray.FarT
	for axis := 0; axis < 3; axis++ {
		o, d := ray.Origin.Axis(axis), ray.Direction.Axis(axis)
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)

		if math.Abs(d) < 1e-8 {
			if o < lo || o > hi {
				return false
			}
			continue
		}

		t0, t1 := (lo-o)/d, (hi-o)/d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		near = math.Max(near, t0)
		far = math.Min(far, t1)
		if near > far {
			return false
		}
	}
	return true
}

// Union returns the smallest box containing both boxes
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: minVec(b.Min, other.Min), Max: maxVec(b.Max, other.Max)}
}

// Center returns the midpoint of the box
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// LongestAxis returns 0, 1 or 2 for the axis with the largest extent
func (b AABB) LongestAxis() int {
	extent := b.Max.Subtract(b.Min)
	axis := 0
	for i := 1; i < 3; i++ {
		if extent.Axis(i) > extent.Axis(axis) {
			axis = i
		}
	}
	return axis
}

// Expand pads the box by amount on every side
func (b AABB) Expand(amount float64) AABB {
	pad := Splat(amount)
	return AABB{Min: b.Min.Subtract(pad), Max: b.Max.Add(pad)}
}
