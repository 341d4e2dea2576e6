package lights

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/transport"
)

// QuadLight represents a rectangular area light emitting from the face its
// normal points out of
type QuadLight struct {
	*geometry.Quad // Embed quad for hit testing
}

// NewQuadLight creates a new quad light
func NewQuadLight(corner, u, v, radiance core.Vec3, bsdf transport.BSDF) *QuadLight {
	quad := geometry.NewQuad(corner, u, v, bsdf)
	quad.Emitted = radiance
	return &QuadLight{Quad: quad}
}

// Intersect tags the hit with the light rather than the embedded quad
func (ql *QuadLight) Intersect(ray *core.Ray, hit *transport.HitRecord) bool {
	if !ql.Quad.Intersect(ray, hit) {
		return false
	}
	hit.Primitive = ql
	return true
}

func (ql *QuadLight) IsSamplable() bool { return true }
func (ql *QuadLight) IsDirac() bool     { return false }
func (ql *QuadLight) MakeSamplable(int) {}

// SampleInboundDirection samples uniformly on the quad surface and converts
// the area density to solid angle
func (ql *QuadLight) SampleInboundDirection(worker int, sample *transport.LightSample) bool {
	u := sample.Sampler.Get2D()
	point := ql.Corner.Add(ql.U.Multiply(u.X)).Add(ql.V.Multiply(u.Y))

	toLight := point.Subtract(sample.P)
	dist := toLight.Length()
	if dist == 0 {
		return false
	}
	sample.D = toLight.Multiply(1.0 / dist)
	sample.Dist = dist

	// Light is edge-on, no contribution
	cosTheta := math.Abs(ql.Normal.Dot(sample.D))
	if cosTheta < 1e-8 {
		return false
	}

	// PDF_solid_angle = PDF_area * distance² / |cos(θ)|
	sample.Pdf = dist * dist / (cosTheta * ql.Area)
	return true
}

func (ql *QuadLight) InboundPdf(worker int, hit *transport.HitRecord, p, d core.Vec3) float64 {
	cosTheta := math.Abs(ql.Normal.Dot(d))
	if cosTheta < 1e-8 {
		return 0
	}
	return hit.T * hit.T / (cosTheta * ql.Area)
}

// ApproximateRadiance uses the solid angle of the quad as seen from its
// center. Points behind the emitting face receive nothing.
func (ql *QuadLight) ApproximateRadiance(worker int, p core.Vec3) (float64, bool) {
	center := ql.Corner.Add(ql.U.Multiply(0.5)).Add(ql.V.Multiply(0.5))
	toPoint := p.Subtract(center)
	d2 := toPoint.LengthSquared()
	if d2 == 0 {
		return 0, false
	}

	cosTheta := ql.Normal.Dot(toPoint) / math.Sqrt(d2)
	if cosTheta <= 0 {
		return 0, true
	}
	solidAngle := math.Min(2*math.Pi, ql.Area*cosTheta/d2)
	return ql.Emitted.Avg() * solidAngle, true
}

// Power is the total emitted flux
func (ql *QuadLight) Power() float64 {
	return math.Pi * ql.Area * ql.Emitted.Avg()
}
