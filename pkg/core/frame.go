package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TangentFrame is an orthonormal shading basis. Local space has the normal
// along +Z, the tangent along +X and the bitangent along +Y.
type TangentFrame struct {
	Normal    Vec3
	Tangent   Vec3
	Bitangent Vec3
}

// NewTangentFrame builds an arbitrary orthonormal frame around normal
func NewTangentFrame(normal Vec3) TangentFrame {
	// Find a vector perpendicular to normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)
	return TangentFrame{Normal: normal, Tangent: tangent, Bitangent: bitangent}
}

// NewTangentFrameFromTangent builds a frame from a normal and a preferred
// tangent direction, re-orthogonalizing the tangent against the normal.
func NewTangentFrameFromTangent(normal, tangent Vec3) TangentFrame {
	t := tangent.Subtract(normal.Multiply(normal.Dot(tangent))).Normalize()
	if t.IsZero() {
		return NewTangentFrame(normal)
	}
	return TangentFrame{Normal: normal, Tangent: t, Bitangent: normal.Cross(t)}
}

// basis returns the matrix whose columns are tangent, bitangent and normal
func (f TangentFrame) basis() mgl64.Mat3 {
	return mgl64.Mat3FromCols(toMgl(f.Tangent), toMgl(f.Bitangent), toMgl(f.Normal))
}

// ToLocal transforms a world-space direction into the frame
func (f TangentFrame) ToLocal(w Vec3) Vec3 {
	return fromMgl(f.basis().Transpose().Mul3x1(toMgl(w)))
}

// ToGlobal transforms a frame-local direction into world space
func (f TangentFrame) ToGlobal(w Vec3) Vec3 {
	return fromMgl(f.basis().Mul3x1(toMgl(w)))
}

// Flipped returns the frame with normal and tangent negated, which mirrors
// the shading hemisphere onto the other side of the surface.
func (f TangentFrame) Flipped() TangentFrame {
	return TangentFrame{
		Normal:    f.Normal.Negate(),
		Tangent:   f.Tangent.Negate(),
		Bitangent: f.Bitangent,
	}
}

func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}
