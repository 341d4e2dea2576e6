package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// ColorSource is a reflectance that may vary over a surface. Surface
// patterns read uv; solid patterns read the world-space point.
type ColorSource interface {
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor is the same everywhere
type SolidColor core.Vec3

// NewSolidColor wraps a constant albedo
func NewSolidColor(color core.Vec3) SolidColor {
	return SolidColor(color)
}

func (s SolidColor) Evaluate(core.Vec2, core.Vec3) core.Vec3 {
	return core.Vec3(s)
}

// Checker alternates two colors on a 3D grid of cubes of edge Scale
type Checker struct {
	Even  core.Vec3
	Odd   core.Vec3
	Scale float64
}

// NewChecker creates a solid checkerboard. Non-positive scales become 1.
func NewChecker(even, odd core.Vec3, scale float64) *Checker {
	if scale <= 0 {
		scale = 1
	}
	return &Checker{Even: even, Odd: odd, Scale: scale}
}

func (c *Checker) Evaluate(_ core.Vec2, point core.Vec3) core.Vec3 {
	cell := math.Floor(point.X/c.Scale) + math.Floor(point.Y/c.Scale) + math.Floor(point.Z/c.Scale)
	if math.Mod(cell, 2) == 0 {
		return c.Even
	}
	return c.Odd
}
