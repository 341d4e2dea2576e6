package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center  core.Vec3
	Radius  float64
	BSDF    transport.BSDF
	Emitted core.Vec3 // radiance leaving the outside face
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, bsdf transport.BSDF) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		BSDF:   bsdf,
	}
}

// Intersect tests if a ray intersects with the sphere inside [NearT, FarT]
func (s *Sphere) Intersect(ray *core.Ray, hit *transport.HitRecord) bool {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	backside := false
	if root <= ray.NearT || root >= ray.FarT {
		root = (-halfB + sqrtD) / a
		backside = true
		if root <= ray.NearT || root >= ray.FarT {
			return false
		}
	}

	ray.FarT = root
	hit.Primitive = s
	hit.BSDF = s.BSDF
	hit.Backside = backside
	return true
}

// IntersectionInfo fills the hit record for the point at ray.FarT. The
// geometric normal always points out of the sphere.
func (s *Sphere) IntersectionInfo(ray core.Ray, hit *transport.HitRecord) {
	hit.T = ray.FarT
	hit.Point = ray.Hitpoint()
	hit.W = ray.Direction

	outward := hit.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hit.Ng = outward
	hit.Ns = outward

	// Spherical coordinates with the pole on +Y
	phi := math.Atan2(-outward.Z, outward.X) + math.Pi
	theta := math.Acos(math.Max(-1, math.Min(1, -outward.Y)))
	hit.UV = core.NewVec2(phi/(2*math.Pi), theta/math.Pi)

	hit.Epsilon = 1e-4 * math.Max(1, s.Radius)
}

func (s *Sphere) TangentFrame(hit *transport.HitRecord) core.TangentFrame {
	return core.NewTangentFrame(hit.Ns)
}

func (s *Sphere) HitBackside(hit *transport.HitRecord) bool { return hit.Backside }
func (s *Sphere) IsSamplable() bool                         { return false }

// Emission is one-sided: the inside face does not emit
func (s *Sphere) Emission(hit *transport.HitRecord) core.Vec3 {
	if hit.Backside {
		return core.Vec3{}
	}
	return s.Emitted
}

// Bounds returns the axis-aligned bounding box for this sphere
func (s *Sphere) Bounds() core.AABB {
	radius := core.Splat(s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
