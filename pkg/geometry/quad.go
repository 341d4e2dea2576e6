package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner  core.Vec3 // One corner of the quad
	U       core.Vec3 // First edge vector
	V       core.Vec3 // Second edge vector
	Normal  core.Vec3 // Normal vector (computed from U × V)
	BSDF    transport.BSDF
	Emitted core.Vec3 // radiance leaving the front face
	D       float64   // Plane equation constant: ax + by + cz = d
	W       core.Vec3 // Cached cross product for barycentric coordinates
	Area    float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, bsdf transport.BSDF) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		BSDF:   bsdf,
		D:      normal.Dot(corner),
		W:      normal.Multiply(1.0 / normal.Dot(cross)),
		Area:   cross.Length(),
	}
}

// Intersect tests if a ray intersects with the quad inside [NearT, FarT]
func (q *Quad) Intersect(ray *core.Ray, hit *transport.HitRecord) bool {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray is parallel to the quad
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t <= ray.NearT || t >= ray.FarT {
		return false
	}

	alpha, beta := q.barycentric(ray.At(t))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	ray.FarT = t
	hit.Primitive = q
	hit.BSDF = q.BSDF
	hit.Backside = denominator > 0
	hit.UV = core.NewVec2(alpha, beta)
	return true
}

func (q *Quad) barycentric(p core.Vec3) (float64, float64) {
	hitVector := p.Subtract(q.Corner)
	return q.W.Dot(hitVector.Cross(q.V)), q.W.Dot(q.U.Cross(hitVector))
}

// IntersectionInfo fills the hit record. UV was cached by Intersect.
func (q *Quad) IntersectionInfo(ray core.Ray, hit *transport.HitRecord) {
	hit.T = ray.FarT
	hit.Point = ray.Hitpoint()
	hit.W = ray.Direction
	hit.Ng = q.Normal
	hit.Ns = q.Normal

	extent := math.Max(q.U.Length(), q.V.Length())
	hit.Epsilon = 1e-4 * math.Max(1, math.Max(extent, math.Abs(q.D)))
}

func (q *Quad) TangentFrame(hit *transport.HitRecord) core.TangentFrame {
	return core.NewTangentFrameFromTangent(hit.Ns, q.U)
}

func (q *Quad) HitBackside(hit *transport.HitRecord) bool { return hit.Backside }
func (q *Quad) IsSamplable() bool                         { return false }

// Emission is one-sided: only the face the normal points out of emits
func (q *Quad) Emission(hit *transport.HitRecord) core.Vec3 {
	if hit.Backside {
		return core.Vec3{}
	}
	return q.Emitted
}

// Bounds returns the bounding box of the four corners, padded for quads
// lying in an axis plane
func (q *Quad) Bounds() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(1e-4)
}
