package lights

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/transport"
)

// SphereLight represents a spherical area light emitting uniform radiance
// from its outside face
type SphereLight struct {
	*geometry.Sphere // Embed sphere for hit testing
}

// NewSphereLight creates a new spherical light. bsdf shades the light's
// surface when it is hit by other paths.
func NewSphereLight(center core.Vec3, radius float64, radiance core.Vec3, bsdf transport.BSDF) *SphereLight {
	sphere := geometry.NewSphere(center, radius, bsdf)
	sphere.Emitted = radiance
	return &SphereLight{Sphere: sphere}
}

// Intersect tags the hit with the light rather than the embedded sphere
func (sl *SphereLight) Intersect(ray *core.Ray, hit *transport.HitRecord) bool {
	if !sl.Sphere.Intersect(ray, hit) {
		return false
	}
	hit.Primitive = sl
	return true
}

func (sl *SphereLight) IsSamplable() bool { return true }
func (sl *SphereLight) IsDirac() bool     { return false }
func (sl *SphereLight) MakeSamplable(int) {}

// cosThetaMax is the cosine of the half-angle of the cone subtended by the
// sphere from a point at distance dc from its center
func (sl *SphereLight) cosThetaMax(dc float64) float64 {
	sinThetaMax := sl.Radius / dc
	return math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))
}

// SampleInboundDirection samples the cone of directions subtended by the
// sphere. From inside, a point is sampled uniformly on the surface instead.
func (sl *SphereLight) SampleInboundDirection(worker int, sample *transport.LightSample) bool {
	toCenter := sl.Center.Subtract(sample.P)
	dc := toCenter.Length()
	if dc <= sl.Radius {
		return sl.sampleUniform(sample)
	}

	cosMax := sl.cosThetaMax(dc)
	u := sample.Sampler.Get2D()
	cosTheta := 1.0 - u.X*(1.0-cosMax)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * u.Y

	frame := core.NewTangentFrame(toCenter.Multiply(1.0 / dc))
	sample.D = frame.ToGlobal(core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta))

	// Distance to the near intersection, clamped for grazing samples
	sample.Dist = dc*cosTheta - math.Sqrt(math.Max(0, sl.Radius*sl.Radius-dc*dc*sinTheta*sinTheta))
	sample.Pdf = core.UniformConePDF(cosMax)
	return true
}

// sampleUniform samples uniformly on the entire sphere surface
func (sl *SphereLight) sampleUniform(sample *transport.LightSample) bool {
	normal := core.SampleOnUnitSphere(sample.Sampler.Get2D())
	point := sl.Center.Add(normal.Multiply(sl.Radius))

	toPoint := point.Subtract(sample.P)
	dist := toPoint.Length()
	if dist == 0 {
		return false
	}
	sample.D = toPoint.Multiply(1.0 / dist)
	sample.Dist = dist

	cos := math.Abs(normal.Dot(sample.D))
	if cos < 1e-8 {
		return false
	}
	sample.Pdf = dist * dist / (cos * sl.area())
	return true
}

func (sl *SphereLight) area() float64 {
	return 4.0 * math.Pi * sl.Radius * sl.Radius
}

// InboundPdf matches SampleInboundDirection for a direction that hits the
// light at hit
func (sl *SphereLight) InboundPdf(worker int, hit *transport.HitRecord, p, d core.Vec3) float64 {
	dc := sl.Center.Subtract(p).Length()
	if dc > sl.Radius {
		return core.UniformConePDF(sl.cosThetaMax(dc))
	}

	cos := math.Abs(hit.Ng.Dot(d))
	if cos < 1e-8 {
		return 0
	}
	return hit.T * hit.T / (cos * sl.area())
}

// ApproximateRadiance is the emitted radiance times the subtended solid
// angle, exact for an unoccluded light seen head-on
func (sl *SphereLight) ApproximateRadiance(worker int, p core.Vec3) (float64, bool) {
	dc := sl.Center.Subtract(p).Length()
	if dc <= sl.Radius {
		return 0, true
	}
	return sl.Emitted.Avg() * 2.0 * math.Pi * (1.0 - sl.cosThetaMax(dc)), true
}

// Power is the total emitted flux
func (sl *SphereLight) Power() float64 {
	return math.Pi * sl.area() * sl.Emitted.Avg()
}
